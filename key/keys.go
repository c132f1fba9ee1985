// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 15

// Playback Behavior - these keys govern stream selection and session startup.
const (
	PlaybackQuality = "playback.quality"
	PlaybackResume  = "playback.resume"
)

// Channel Picker - these keys configure channel ordering and suggestions.
const (
	ChannelsRankRecent = "channels.rank_recent"
)

// Media Engine - these keys configure the external player process.
const (
	PlayerPath = "player.path"
	PlayerArgs = "player.args"
)

// Position History - these keys configure the persistence of playback positions.
const (
	HistorySavePosition         = "history.save_position"
	HistoryCompletionPercentage = "history.completion_percentage"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Status View - these keys configure the interactive playback status display.
const (
	TUIStatusView = "tui.status_view"
)

// Media Remote - these keys govern the desktop now-playing integration.
const (
	MPRISEnable = "mpris.enable"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern general CLI behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
