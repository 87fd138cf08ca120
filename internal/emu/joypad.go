package emu

import (
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/cpu"
)

// P1 select lines and the bit each key drives when its line is selected.
const (
	joypSelectButtons = 1 << 5
	joypSelectDpad    = 1 << 4

	joypDown  = 1 << 3
	joypUp    = 1 << 2
	joypLeft  = 1 << 1
	joypRight = 1 << 0

	joypStart  = 1 << 3
	joypSelect = 1 << 2
	joypB      = 1 << 1
	joypA      = 1 << 0
)

// Buttons is the host side key state. Turbo is not a Game Boy key: it
// disables frame pacing while held.
type Buttons struct {
	A, B, Start, Select   bool
	Up, Down, Left, Right bool
	Turbo                 bool
}

// pressedSince reports whether a key is down now that was up in prev.
func (b Buttons) pressedSince(prev Buttons) bool {
	return (b.A && !prev.A) || (b.B && !prev.B) ||
		(b.Start && !prev.Start) || (b.Select && !prev.Select) ||
		(b.Up && !prev.Up) || (b.Down && !prev.Down) ||
		(b.Left && !prev.Left) || (b.Right && !prev.Right)
}

// Joypad folds the key state into P1 every tick and, once per frame,
// wakes a stopped CPU and requests the joypad interrupt on a new press.
type Joypad struct {
	bus   *bus.Bus
	cpu   *cpu.CPU
	cycle uint64

	keys Buttons
	last Buttons
}

// NewJoypad creates the input unit writing to b and waking c.
func NewJoypad(b *bus.Bus, c *cpu.CPU) *Joypad {
	return &Joypad{bus: b, cpu: c}
}

// Set replaces the current key state.
func (j *Joypad) Set(keys Buttons) { j.keys = keys }

// Keys returns the current key state.
func (j *Joypad) Keys() Buttons { return j.keys }

func (j *Joypad) Tick() error {
	j.cycle++
	j.fold()
	if j.cycle%frameTicks == frameOffset {
		if j.keys.pressedSince(j.last) {
			j.cpu.SetStop(false)
			j.cpu.RaiseInterrupt(cpu.IntJoypad)
		}
		j.last = j.keys
	}
	return nil
}

// fold writes the active-low P1 value for the lines the guest selected.
func (j *Joypad) fold() {
	joyp := ^j.bus.Read(bus.P1) & 0x30
	if joyp&joypSelectDpad != 0 {
		joyp |= bit(j.keys.Up, joypUp) | bit(j.keys.Down, joypDown) |
			bit(j.keys.Left, joypLeft) | bit(j.keys.Right, joypRight)
	}
	if joyp&joypSelectButtons != 0 {
		joyp |= bit(j.keys.B, joypB) | bit(j.keys.A, joypA) |
			bit(j.keys.Start, joypStart) | bit(j.keys.Select, joypSelect)
	}
	j.bus.Write(bus.P1, ^joyp&0x3F)
}

func bit(on bool, mask byte) byte {
	if on {
		return mask
	}
	return 0
}
