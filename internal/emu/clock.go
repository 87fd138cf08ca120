package emu

import (
	"time"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/ppu"
)

const (
	frameTicks = ppu.TicksPerFrame
	// frame work (pacing, limits, input) happens this many ticks into a frame
	frameOffset = 20

	frameDuration = time.Second / 60
)

// Clock paces emulation to 60 frames per second and enforces the frame
// and wall-clock budgets.
type Clock struct {
	cycle uint64
	frame int

	frames  int
	profile time.Duration
	turbo   bool
	paced   bool

	joypad     *Joypad
	start      time.Time
	frameStart time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewClock returns a clock that stops after frames frames or profileSeconds
// seconds, whichever is set, pacing to real time unless turbo is on.
func NewClock(j *Joypad, frames, profileSeconds int, turbo bool) *Clock {
	c := &Clock{
		frames:  frames,
		profile: time.Duration(profileSeconds) * time.Second,
		turbo:   turbo,
		paced:   true,
		joypad:  j,
		now:     time.Now,
		sleep:   time.Sleep,
	}
	c.start = c.now()
	c.frameStart = c.start
	return c
}

// Frame returns the number of completed frame boundaries.
func (c *Clock) Frame() int { return c.frame }

// SetPaced enables or disables sleeping between frames. A host that already
// runs at display rate turns it off.
func (c *Clock) SetPaced(on bool) { c.paced = on }

func (c *Clock) Tick() error {
	c.cycle++
	if c.cycle%frameTicks != frameOffset {
		return nil
	}

	spent := c.now().Sub(c.frameStart)
	if left := frameDuration - spent; left > 0 && c.paced && !c.turbo && !c.joypad.Keys().Turbo {
		c.sleep(left)
	}
	c.frameStart = c.now()

	elapsed := c.frameStart.Sub(c.start)
	if (c.frames != 0 && c.frame >= c.frames) || (c.profile != 0 && elapsed >= c.profile) {
		return exit.Timeout(c.frame, elapsed)
	}
	c.frame++
	return nil
}
