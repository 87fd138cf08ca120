// Package ppu implements the LCD unit. It drives LY, the STAT mode and
// coincidence bits and the VBlank and STAT interrupts on the same tick
// cadence as the processor, and renders each visible line into a
// framebuffer when the line enters HBlank.
package ppu

import (
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/cpu"
)

// Timing in 1MHz ticks.
const (
	TicksPerLine  = 114
	Lines         = 154
	VisibleLines  = 144
	TicksPerFrame = TicksPerLine * Lines

	drawingStart = 20
	hblankStart  = 63
)

// LCDC and STAT bits.
const (
	lcdcEnabled = 1 << 7

	modeHBlank  = 0
	modeVBlank  = 1
	modeOAM     = 2
	modeDrawing = 3
	modeBits    = 0x03

	statLYCEqual  = 1 << 2
	statHBlankInt = 1 << 3
	statVBlankInt = 1 << 4
	statOAMInt    = 1 << 5
	statLYCInt    = 1 << 6
)

// Processor is the part of the CPU the LCD unit needs.
type Processor interface {
	Stopped() bool
	RaiseInterrupt(line cpu.Interrupt)
}

// LCD advances the display state machine once per tick.
type LCD struct {
	bus    *bus.Bus
	cpu    Processor
	screen *screen
	cycle  uint64
	frames int
	off    bool
}

// New creates the LCD unit for b, raising interrupts through c.
func New(b *bus.Bus, c Processor) *LCD {
	return &LCD{bus: b, cpu: c, screen: newScreen()}
}

// Framebuffer returns the ScreenWidth by ScreenHeight RGBA image rendered so
// far. Callers must treat the slice as read-only.
func (l *LCD) Framebuffer() []byte { return l.screen.fb }

// Frames returns the number of VBlank periods entered.
func (l *LCD) Frames() int { return l.frames }

// Tick advances the unit by one tick. It never fails.
func (l *LCD) Tick() error {
	l.cycle++

	// STOP halts all LCD activity until a button is pressed
	if l.cpu.Stopped() {
		return nil
	}

	if l.bus.Read(bus.LCDC)&lcdcEnabled == 0 {
		l.bus.Write(bus.LY, 0)
		if !l.off {
			l.screen.clear()
			l.off = true
		}
		return nil
	}
	l.off = false

	lx := l.cycle % TicksPerLine
	ly := byte((l.cycle / TicksPerLine) % Lines)
	l.bus.Write(bus.LY, ly)

	stat := l.bus.Read(bus.STAT) &^ (modeBits | statLYCEqual)

	if ly == l.bus.Read(bus.LYC) {
		stat |= statLYCEqual
		if lx == 0 && stat&statLYCInt != 0 {
			l.cpu.RaiseInterrupt(cpu.IntStat)
		}
	}

	var mode byte
	switch {
	case ly >= VisibleLines:
		mode = modeVBlank
		if ly == VisibleLines && lx == 0 {
			if stat&statVBlankInt != 0 {
				l.cpu.RaiseInterrupt(cpu.IntStat)
			}
			l.cpu.RaiseInterrupt(cpu.IntVBlank)
			l.screen.startFrame()
			l.frames++
		}
	case lx < drawingStart:
		mode = modeOAM
		if lx == 0 && stat&statOAMInt != 0 {
			l.cpu.RaiseInterrupt(cpu.IntStat)
		}
	case lx < hblankStart:
		mode = modeDrawing
	default:
		mode = modeHBlank
		if lx == hblankStart {
			l.screen.drawLine(l.bus, ly)
			if stat&statHBlankInt != 0 {
				l.cpu.RaiseInterrupt(cpu.IntStat)
			}
		}
	}

	l.bus.Write(bus.STAT, stat|mode)
	return nil
}
