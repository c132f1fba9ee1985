package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/playback"
)

// Controller is the slice of the playback controller the bridge drives.
type Controller interface {
	Play()
	Pause()
	TogglePlayPause()
	Cleanup()
	Seek(position time.Duration)
	State() playback.State
	LoadVideo(url string, show *media.Show, channel *media.Channel, startAt time.Duration) error
}

// player implements org.mpris.MediaPlayer2.Player. Desktop controls
// call these from bus worker goroutines; the controller serializes.
type player struct {
	ctrl       Controller
	emitSeeked func(position time.Duration)
}

func (p *player) Play() *dbus.Error {
	p.ctrl.Play()
	return nil
}

func (p *player) Pause() *dbus.Error {
	p.ctrl.Pause()
	return nil
}

func (p *player) PlayPause() *dbus.Error {
	p.ctrl.TogglePlayPause()
	return nil
}

func (p *player) Stop() *dbus.Error {
	p.ctrl.Cleanup()
	return nil
}

func (p *player) Next() *dbus.Error {
	p.skip(skipOffset)
	return nil
}

func (p *player) Previous() *dbus.Error {
	p.skip(-skipOffset)
	return nil
}

// Seek jumps relative to the current position, offset in microseconds.
func (p *player) Seek(offset int64) *dbus.Error {
	p.skip(time.Duration(offset) * time.Microsecond)
	return nil
}

// SetPosition jumps to an absolute position in microseconds.
func (p *player) SetPosition(trackID dbus.ObjectPath, position int64) *dbus.Error {
	st := p.ctrl.State()
	target := clampSkip(0, time.Duration(position)*time.Microsecond, st.Duration)

	p.ctrl.Seek(target)
	p.seeked(target)
	return nil
}

// OpenUri loads the given target as a direct source.
func (p *player) OpenUri(uri string) *dbus.Error {
	if err := p.ctrl.LoadVideo(uri, nil, nil, 0); err != nil {
		return dbus.MakeFailedError(err)
	}

	return nil
}

func (p *player) skip(offset time.Duration) {
	st := p.ctrl.State()
	target := clampSkip(st.Position, offset, st.Duration)

	p.ctrl.Seek(target)
	p.seeked(target)
}

func (p *player) seeked(position time.Duration) {
	if p.emitSeeked != nil {
		p.emitSeeked(position)
	}
}

// root implements org.mpris.MediaPlayer2.
type root struct{}

func (r *root) Raise() *dbus.Error {
	return nil
}

func (r *root) Quit() *dbus.Error {
	return nil
}
