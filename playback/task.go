package playback

import "time"

// task is a single-slot cancellable timer. Arming replaces any pending
// run. It is only touched on the controller goroutine; the armed func
// fires elsewhere and must re-enter the controller through post.
type task struct {
	timer *time.Timer
}

func (t *task) arm(d time.Duration, fn func()) {
	t.cancel()
	t.timer = time.AfterFunc(d, fn)
}

func (t *task) cancel() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
