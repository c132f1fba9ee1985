package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/style"
)

// Field is one registered setting: its key, factory default and help text.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Current returns the effective value, which may come from the config
// file, the environment or a bound flag.
func (f Field) Current() any {
	return viper.Get(f.Key)
}

// TypeName returns the Go type name of the field's default value.
func (f Field) TypeName() string {
	return reflect.TypeOf(f.Value).String()
}

// Env returns the environment variable that overrides this field.
func (f Field) Env() string {
	return strings.ToUpper(constant.Zapp + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Pretty renders the field for the config info listing.
func (f Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// MarshalJSON includes the effective value next to the default.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       f.Current(),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
	})
}

// Default holds every setting the application knows, by key.
var Default = make(map[string]Field)

func register(k string, v any, desc string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}

	Default[k] = Field{Key: k, Value: v, Description: desc}
}

func init() {
	register(key.PlaybackQuality, "medium", "Default quality tier for live streams.\nAvailable options are: low, medium, high\nOn-demand shows always pick the lowest available tier unless overridden")
	register(key.PlaybackResume, true, "Resume shows from the last saved position")
	register(key.ChannelsRankRecent, true, "Order the channel picker by watch frequency")
	register(key.PlayerPath, "mpv", "Path to the mpv binary used as the media engine")
	register(key.PlayerArgs, []string{}, "Extra arguments passed to the media engine process")
	register(key.HistorySavePosition, true, "Persist the playback position of shows on teardown")
	register(key.HistoryCompletionPercentage, 95, "Positions beyond this percentage are treated as finished and not persisted (1-100)")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIStatusView, true, "Show the interactive status view during playback")
	register(key.MPRISEnable, true, "Export the desktop now-playing surface (MPRIS over D-Bus)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"blue":   style.Fg(color.Blue),
	"purple": style.Fg(color.Purple),
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl .Current }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ .TypeName }}`))
