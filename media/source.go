package media

import "github.com/samber/mo"

// Source identifies what a playback session plays.
// It is a closed union: a session source is exactly one of Live, OnDemand or Direct,
// fixed for the lifetime of the session.
type Source interface {
	// Title returns the human-readable title used for display and the media remote.
	Title() string
	// IsLocal reports whether playback reads from a local file rather than the network.
	// Local playback is exempt from network failure handling.
	IsLocal() bool

	isSource()
}

// Live plays the continuous live stream of a channel.
type Live struct {
	Channel *Channel
}

func (Live) isSource() {}

// Title returns the channel name.
func (l Live) Title() string {
	return l.Channel.Name
}

// IsLocal always reports false: live streams are network streams by definition.
func (Live) IsLocal() bool {
	return false
}

// OnDemand plays an archived show, either remote or from a downloaded file.
type OnDemand struct {
	Show *Show
	// Path of the downloaded media file; empty for remote playback.
	LocalPath string
}

func (OnDemand) isSource() {}

// Title returns the show title.
func (o OnDemand) Title() string {
	return o.Show.Title
}

// IsLocal reports whether the session reads from a downloaded file.
func (o OnDemand) IsLocal() bool {
	return o.LocalPath != ""
}

// Direct plays a raw URL that does not map onto a known channel stream or show encoding.
// Attached metadata is carried for display purposes only.
type Direct struct {
	URL     string
	Show    mo.Option[*Show]
	Channel mo.Option[*Channel]
}

func (Direct) isSource() {}

// Title prefers attached show metadata, then channel metadata, then the raw URL.
func (d Direct) Title() string {
	if show, ok := d.Show.Get(); ok {
		return show.Title
	}
	if channel, ok := d.Channel.Get(); ok {
		return channel.Name
	}
	return d.URL
}

// IsLocal always reports false: direct sources address network streams.
func (Direct) IsLocal() bool {
	return false
}
