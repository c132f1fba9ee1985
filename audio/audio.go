// Package audio connects the playback controller to the platform audio
// and power events: a logind monitor that turns suspend/resume into
// playback interruptions, and an inhibitor lock that keeps the machine
// from idling into suspend while a session is active.
package audio

import (
	"github.com/zapp-cli/zapp/playback"
)

// Handler receives the classified system events. *playback.Controller
// satisfies it.
type Handler interface {
	HandleInterruption(ev playback.Interruption)
	HandleRouteChange(change playback.RouteChange)
}

const (
	logindService   = "org.freedesktop.login1"
	logindPath      = "/org/freedesktop/login1"
	logindInterface = "org.freedesktop.login1.Manager"

	prepareForSleep = logindInterface + ".PrepareForSleep"
)
