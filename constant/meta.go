// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

import _ "embed"

const (
	// Zapp is the canonical application identifier used for filesystem paths and CLI branding.
	Zapp = "zapp"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for network requests to broadcaster CDNs.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// BusName is the well-known D-Bus name under which the media remote surface is exported.
	BusName = "org.mpris.MediaPlayer2.zapp"
)

// Build metadata, overridden by the release pipeline via -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// GOOS values the code branches on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// Banner is the ASCII wordmark printed by the root command.
//
//go:embed ascii.txt
var Banner string
