package playback

import (
	"time"

	"github.com/samber/mo"

	"github.com/zapp-cli/zapp/log"
)

// StartSleepTimer starts (or restarts) a countdown after which playback
// pauses. The countdown survives load operations and is cancelled by
// Cleanup. A non-positive duration cancels the timer.
func (c *Controller) StartSleepTimer(d time.Duration) {
	c.do(func() {
		c.stopSleepTimer()

		if d <= 0 {
			c.st.SleepRemaining = mo.None[time.Duration]()
			c.publish()
			return
		}

		c.st.SleepRemaining = mo.Some(d)

		stop := make(chan struct{})
		c.sleepStop = stop
		go c.runSleepTicker(stop)

		log.Infof("sleep timer set to %s", d)
		c.publish()
	})
}

// CancelSleepTimer stops the countdown without touching playback.
func (c *Controller) CancelSleepTimer() {
	c.do(func() {
		c.stopSleepTimer()
		c.st.SleepRemaining = mo.None[time.Duration]()
		c.publish()
	})
}

func (c *Controller) stopSleepTimer() {
	if c.sleepStop != nil {
		close(c.sleepStop)
		c.sleepStop = nil
	}
}

func (c *Controller) runSleepTicker(stop chan struct{}) {
	ticker := time.NewTicker(sleepTickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.post(func() {
				c.sleepTick(stop)
			})
		}
	}
}

// sleepTick accounts one second of countdown. A tick with one second or
// less remaining pauses playback and clears the timer.
func (c *Controller) sleepTick(stop chan struct{}) {
	if c.sleepStop != stop {
		return
	}

	remaining, ok := c.st.SleepRemaining.Get()
	if !ok {
		return
	}

	if remaining <= time.Second {
		log.Infof("sleep timer elapsed, pausing playback")
		c.stopSleepTimer()
		c.st.SleepRemaining = mo.None[time.Duration]()
		c.pause()
		return
	}

	c.st.SleepRemaining = mo.Some(remaining - time.Second)
	c.publish()
}
