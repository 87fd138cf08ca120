package emu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newMachine places code at the cartridge entry point and skips the boot image.
func newMachine(t *testing.T, cfg Config, code ...byte) *Machine {
	t.Helper()
	return newMachineWithLogger(t, log.NewTestLogger(t), cfg, code...)
}

// newQuietLogger drops everything below fatal, for runs that end in a
// bank controller fault logged at error level.
func newQuietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.FatalLevel
	return log.NewWithConfig(cfg)
}

func newMachineWithLogger(t *testing.T, logger *log.Logger, cfg Config, code ...byte) *Machine {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], code)
	cfg.NoBoot = true
	cfg.Turbo = true
	m, err := New(cfg, rom, logger)
	assert.NoError(t, err)
	return m
}

func TestMachine_FrameBudget(t *testing.T) {
	// LD A,1; loop: INC A; JP loop
	m := newMachine(t, Config{Frames: 2}, 0x3E, 0x01, 0x3C, 0xC3, 0x02, 0x01)

	err := m.Run()
	assert.Error(t, err)
	class, ok := exit.ClassOf(err)
	assert.True(t, ok)
	assert.Equal(t, exit.Controlled, class)
	assert.Equal(t, exit.StatusOK, exit.StatusOf(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Emulated     2 frames"))
	assert.Equal(t, 2, m.Frame())
}

func TestMachine_InvalidOpcode(t *testing.T) {
	m := newMachine(t, Config{}, 0x00, 0xD3)

	err := m.Run()
	class, ok := exit.ClassOf(err)
	assert.True(t, ok)
	assert.Equal(t, exit.Guest, class)
	assert.Equal(t, exit.StatusGuest, exit.StatusOf(err))
	assert.Equal(t, "Invalid opcode: 0xD3 at 0x0101", err.Error())
}

func TestMachine_TestOpcodes(t *testing.T) {
	m := newMachine(t, Config{}, 0xFD)
	assert.Equal(t, exit.StatusTestFailed, exit.StatusOf(m.Run()))

	m = newMachine(t, Config{}, 0xFC)
	assert.Equal(t, exit.StatusOK, exit.StatusOf(m.Run()))
}

func TestMachine_Quit(t *testing.T) {
	m := newMachine(t, Config{}, 0x18, 0xFE) // JR -2
	assert.NoError(t, m.RunFrame())

	m.RequestQuit()
	err := m.Tick()
	assert.Equal(t, exit.StatusOK, exit.StatusOf(err))
	assert.Equal(t, "User exited the emulator", err.Error())
}

func TestMachine_BankOverflowIsHostError(t *testing.T) {
	// LD A,$10; LD ($2000),A on a 32KiB cartridge
	m := newMachineWithLogger(t, newQuietLogger(), Config{}, 0x3E, 0x10, 0xEA, 0x00, 0x20, 0x18, 0xFE)

	err := m.Run()
	class, ok := exit.ClassOf(err)
	assert.True(t, ok)
	assert.Equal(t, exit.Host, class)
	assert.Equal(t, exit.StatusHost, exit.StatusOf(err))
}

func TestMachine_BootImage(t *testing.T) {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], []byte{0x18, 0xFE})
	m, err := New(Config{Turbo: true}, rom, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.True(t, m.Bus().BootActive())

	for i := 0; i < 1000 && m.Bus().BootActive(); i++ {
		assert.NoError(t, m.Tick())
	}
	assert.False(t, m.Bus().BootActive())
	assert.Equal(t, uint16(0x01B0), m.CPU().Regs().AF())
	assert.Equal(t, byte(0x91), m.Bus().Read(bus.LCDC))
}

func TestMachine_ShortBootImageIgnored(t *testing.T) {
	rom := make([]byte, 0x8000)
	m, err := New(Config{BootROM: []byte{0x76}}, rom, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.Equal(t, bus.DefaultBoot()[0], m.Bus().Read(0x0000))
}

func TestMachine_SerialOutput(t *testing.T) {
	// LD A,'K'; LDH (SB),A; LD A,$81; LDH (SC),A; JR -2
	m := newMachine(t, Config{}, 0x3E, 'K', 0xE0, 0x01, 0x3E, 0x81, 0xE0, 0x02, 0x18, 0xFE)
	var out bytes.Buffer
	m.SetSerialWriter(&out)

	assert.NoError(t, m.RunFrame())
	assert.Equal(t, "K", out.String())
}

func TestMachine_Digest(t *testing.T) {
	m := newMachine(t, Config{}, 0x18, 0xFE)
	blank := m.Digest()
	assert.Equal(t, blank, m.Digest())

	// tile 0 row 0 solid color 3; every map entry names tile 0
	m.Bus().Write(bus.VRAMStart, 0xFF)
	m.Bus().Write(bus.VRAMStart+1, 0xFF)
	assert.Equal(t, blank, m.Digest())

	assert.NoError(t, m.RunFrame())
	drawn := m.Digest()
	assert.True(t, drawn != blank)
	assert.Equal(t, byte(0x00), m.Framebuffer()[0])

	// an unchanged picture hashes the same
	assert.NoError(t, m.RunFrame())
	assert.Equal(t, drawn, m.Digest())
}

func TestMachine_LoopAtZeroHitsBudget(t *testing.T) {
	rom := []byte{0x3E, 0x01, 0x3C, 0xC3, 0x02, 0x00}
	m, err := New(Config{Frames: 1, Turbo: true}, rom, log.NewTestLogger(t))
	assert.NoError(t, err)
	m.Bus().SkipBoot()
	m.CPU().Regs().PC = 0

	err = m.Run()
	class, ok := exit.ClassOf(err)
	assert.True(t, ok)
	assert.Equal(t, exit.Controlled, class)
	assert.Equal(t, exit.StatusOK, exit.StatusOf(err))
}
