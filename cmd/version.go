// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
	versionCmd.SetOut(os.Stdout)
}

// versionTemplate renders the long form of the version command.
var versionTemplate = template.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Git Commit" }}  {{ bold .Revision }}
  {{ faint "Build Date" }}  {{ bold .BuiltAt }}
  {{ faint "Built By" }}    {{ bold .BuiltBy }}
  {{ faint "Platform" }}    {{ bold .OS }}/{{ bold .Arch }}
`))

// buildInfo collects the linker-provided build metadata for display.
func buildInfo() map[string]string {
	return map[string]string{
		"App":      constant.Zapp,
		"Version":  constant.Version,
		"OS":       runtime.GOOS,
		"Arch":     runtime.GOARCH,
		"BuiltAt":  strings.TrimSpace(constant.BuiltAt),
		"BuiltBy":  constant.BuiltBy,
		"Revision": constant.Revision,
	}
}

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display exhaustive version and build metadata",
	Long:  "Display the current application version, build revision, platform architecture, and related metadata.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), buildInfo()))
	},
}
