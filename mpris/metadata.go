package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/playback"
)

const trackPath = dbus.ObjectPath("/org/zapp/track/current")

// skipOffset is the jump of the Next/Previous media keys. The app has
// no playlist, so they double as quarter-minute skips.
const skipOffset = 15 * time.Second

// status maps the published state onto the MPRIS PlaybackStatus enum.
func status(st playback.State) string {
	switch {
	case st.Source == nil || st.Err.IsPresent():
		return "Stopped"
	case st.IsPlaying:
		return "Playing"
	default:
		return "Paused"
	}
}

// metadata builds the MPRIS metadata map of the current source.
func metadata(st playback.State) map[string]dbus.Variant {
	meta := map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(trackPath),
	}

	if st.Source == nil {
		return meta
	}

	meta["xesam:title"] = dbus.MakeVariant(st.Source.Title())

	switch src := st.Source.(type) {
	case media.Live:
		meta["xesam:artist"] = dbus.MakeVariant([]string{src.Channel.Name})
		meta["xesam:url"] = dbus.MakeVariant(src.Channel.StreamURL)
	case media.OnDemand:
		if channel, ok := src.Show.Channel.Get(); ok {
			meta["xesam:artist"] = dbus.MakeVariant([]string{channel.Name})
		}
		if src.Show.Topic != "" {
			meta["xesam:album"] = dbus.MakeVariant(src.Show.Topic)
		}
	case media.Direct:
		meta["xesam:url"] = dbus.MakeVariant(src.URL)
	}

	if st.Duration > 0 {
		meta["mpris:length"] = dbus.MakeVariant(int64(st.Duration / time.Microsecond))
	}

	return meta
}

// clampSkip moves position by offset, clamped to the known media
// bounds. An unknown duration only clamps at zero.
func clampSkip(position, offset, duration time.Duration) time.Duration {
	target := position + offset

	if target < 0 {
		return 0
	}
	if duration > 0 && target > duration {
		return duration
	}

	return target
}
