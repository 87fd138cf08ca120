// Package emu wires the cartridge, bus, processor and peripheral units into
// a machine and drives them one tick at a time.
package emu

import (
	"io"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/ppu"
	"github.com/cespare/xxhash"
	"github.com/retroenv/retrogolib/log"
)

// Unit is a peripheral advanced once per tick after the processor.
type Unit interface {
	Tick() error
}

// Machine is the whole console.
type Machine struct {
	cfg    Config
	logger *log.Logger

	cart   *cart.Image
	bus    *bus.Bus
	cpu    *cpu.CPU
	lcd    *ppu.LCD
	joypad *Joypad
	clock  *Clock

	units []Unit
	quit  bool
}

// New builds a machine for the raw ROM image rom.
func New(cfg Config, rom []byte, logger *log.Logger) (*Machine, error) {
	if logger == nil {
		logger = CreateLogger(false, false)
	}
	img, err := cart.New(rom, logger)
	if err != nil {
		return nil, err
	}

	b := bus.New(img, logger)
	b.SetDebug(cfg.DebugRAM)
	if len(cfg.BootROM) > 0 {
		if len(cfg.BootROM) < bus.BootSize {
			logger.Warn("Boot image too short, using built-in",
				log.Int("size", len(cfg.BootROM)))
		} else {
			b.SetBootROM(cfg.BootROM)
		}
	}

	c := cpu.New(b, logger)
	c.SetDebug(cfg.DebugCPU)
	c.SetTrace(cfg.Trace)
	if cfg.NoBoot {
		c.ResetNoBoot()
	}

	m := &Machine{
		cfg:    cfg,
		logger: logger,
		cart:   img,
		bus:    b,
		cpu:    c,
		lcd:    ppu.New(b, c),
	}
	m.joypad = NewJoypad(b, c)
	m.clock = NewClock(m.joypad, cfg.Frames, cfg.Profile, cfg.Turbo)
	m.units = []Unit{m.lcd, m.joypad, m.clock}
	return m, nil
}

func (m *Machine) Config() Config { return m.cfg }
func (m *Machine) Name() string { return m.cart.Name }
func (m *Machine) CPU() *cpu.CPU { return m.cpu }
func (m *Machine) Bus() *bus.Bus { return m.bus }
func (m *Machine) LCD() *ppu.LCD { return m.lcd }
func (m *Machine) Cart() *cart.Image { return m.cart }

// Frame returns the number of frames the clock has counted.
func (m *Machine) Frame() int { return m.clock.Frame() }

// SetButtons replaces the host key state seen by the joypad unit.
func (m *Machine) SetButtons(b Buttons) { m.joypad.Set(b) }

// SetSerialWriter receives every byte the guest shifts out of the link port.
func (m *Machine) SetSerialWriter(w io.Writer) { m.bus.SetSerialWriter(w) }

// SetPaced toggles the clock's frame sleeping.
func (m *Machine) SetPaced(on bool) { m.clock.SetPaced(on) }

// RequestQuit makes the next tick end the session with a quit.
func (m *Machine) RequestQuit() { m.quit = true }

// Tick advances every component by one tick: processor first, then the
// LCD, joypad and clock units. A non-nil error ends the session.
func (m *Machine) Tick() error {
	if m.quit {
		return exit.Quit()
	}
	if err := m.cpu.Step(); err != nil {
		return err
	}
	for _, u := range m.units {
		if err := u.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// RunFrame runs one frame's worth of ticks.
func (m *Machine) RunFrame() error {
	for i := 0; i < ppu.TicksPerFrame; i++ {
		if err := m.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Run ticks until the session ends and returns the reason. It never
// returns nil.
func (m *Machine) Run() error {
	for {
		if err := m.Tick(); err != nil {
			m.report(err)
			return err
		}
	}
}

func (m *Machine) report(err error) {
	class, ok := exit.ClassOf(err)
	if !ok {
		m.logger.Error("Emulation aborted", log.Err(err))
		return
	}
	m.logger.Debug("Emulation ended",
		log.String("class", class.String()),
		log.Int("status", exit.StatusOf(err)),
		log.Int("frames", m.clock.Frame()))
}

// Framebuffer returns the last rendered screen as RGBA pixels.
func (m *Machine) Framebuffer() []byte { return m.lcd.Framebuffer() }

// Digest hashes the framebuffer, giving a stable fingerprint of what is on
// screen.
func (m *Machine) Digest() uint64 {
	return xxhash.Sum64(m.lcd.Framebuffer())
}
