// Package mpris exposes the playback controller as an MPRIS
// MediaPlayer2 service on the session bus, so playerctl and desktop
// shells can read what plays and drive it with the media keys.
package mpris

import (
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/playback"
)

const (
	objectPath  = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	rootIface   = "org.mpris.MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"
)

// Enabled reports whether the bridge should be started at all.
func Enabled() bool {
	return viper.GetBool(key.MPRISEnable)
}

// Bridge owns the bus name and mirrors controller state onto the
// player properties. It satisfies the controller's Transport seam.
type Bridge struct {
	conn  *dbus.Conn
	props *prop.Properties

	updates  chan playback.State
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewBridge connects to the session bus, exports the MediaPlayer2
// objects, and claims the zapp bus name.
func NewBridge(ctrl Controller) (*Bridge, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	b := &Bridge{
		conn:    conn,
		updates: make(chan playback.State, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if err = conn.Export(&player{ctrl: ctrl, emitSeeked: b.emitSeeked}, objectPath, playerIface); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("export player: %w", err)
	}
	if err = conn.Export(&root{}, objectPath, rootIface); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("export root: %w", err)
	}

	b.props, err = prop.Export(conn, objectPath, propSpec())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("export properties: %w", err)
	}

	reply, err := conn.RequestName(constant.BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		_ = conn.Close()
		return nil, fmt.Errorf("bus name %s is already taken", constant.BusName)
	}

	go b.run()
	return b, nil
}

func propSpec() prop.Map {
	return prop.Map{
		rootIface: {
			"CanQuit":             {Value: false, Emit: prop.EmitFalse},
			"CanRaise":            {Value: false, Emit: prop.EmitFalse},
			"HasTrackList":        {Value: false, Emit: prop.EmitFalse},
			"Identity":            {Value: constant.Zapp, Emit: prop.EmitFalse},
			"SupportedUriSchemes": {Value: []string{"http", "https", "file"}, Emit: prop.EmitFalse},
			"SupportedMimeTypes":  {Value: []string{"application/x-mpegurl", "video/mp4"}, Emit: prop.EmitFalse},
		},
		playerIface: {
			"PlaybackStatus": {Value: "Stopped", Emit: prop.EmitTrue},
			"Rate":           {Value: 1.0, Emit: prop.EmitFalse},
			"MinimumRate":    {Value: 1.0, Emit: prop.EmitFalse},
			"MaximumRate":    {Value: 1.0, Emit: prop.EmitFalse},
			"Volume":         {Value: 1.0, Emit: prop.EmitFalse},
			"Metadata":       {Value: map[string]dbus.Variant{}, Emit: prop.EmitTrue},
			"Position":       {Value: int64(0), Emit: prop.EmitFalse},
			"CanGoNext":      {Value: true, Emit: prop.EmitFalse},
			"CanGoPrevious":  {Value: true, Emit: prop.EmitFalse},
			"CanPlay":        {Value: true, Emit: prop.EmitFalse},
			"CanPause":       {Value: true, Emit: prop.EmitFalse},
			"CanSeek":        {Value: false, Emit: prop.EmitTrue},
			"CanControl":     {Value: true, Emit: prop.EmitFalse},
		},
	}
}

// Update receives a state snapshot from the controller. Only the
// latest snapshot is kept; applying it happens on the bridge goroutine
// so the controller never waits on the bus.
func (b *Bridge) Update(st playback.State) {
	for {
		select {
		case b.updates <- st:
			return
		default:
			select {
			case <-b.updates:
			default:
			}
		}
	}
}

func (b *Bridge) run() {
	defer close(b.done)

	for {
		select {
		case <-b.stop:
			return
		case st := <-b.updates:
			b.apply(st)
		}
	}
}

func (b *Bridge) apply(st playback.State) {
	b.props.SetMust(playerIface, "PlaybackStatus", status(st))
	b.props.SetMust(playerIface, "Metadata", metadata(st))
	b.props.SetMust(playerIface, "Position", int64(st.Position/time.Microsecond))
	b.props.SetMust(playerIface, "CanSeek", st.Seekable.IsPresent())
}

func (b *Bridge) emitSeeked(position time.Duration) {
	_ = b.conn.Emit(objectPath, playerIface+".Seeked", int64(position/time.Microsecond))
}

// Close gives the bus name back and disconnects.
func (b *Bridge) Close() {
	b.stopOnce.Do(func() {
		close(b.stop)
		<-b.done

		_, _ = b.conn.ReleaseName(constant.BusName)
		_ = b.conn.Close()
	})
}
