package bus

import (
	"bytes"
	"testing"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newBus builds a bus over a ROM of romSize bytes whose every bank is filled
// with its bank number, declaring the given header size codes.
func newBus(t *testing.T, romSize int, romCode, ramCode byte) *Bus {
	t.Helper()
	return newBusWithLogger(t, log.NewTestLogger(t), romSize, romCode, ramCode)
}

// newQuietLogger drops everything below fatal, for tests that expect the
// bus to report a fault at error level.
func newQuietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.FatalLevel
	return log.NewWithConfig(cfg)
}

func newBusWithLogger(t *testing.T, logger *log.Logger, romSize int, romCode, ramCode byte) *Bus {
	t.Helper()
	rom := make([]byte, romSize)
	for i := range rom {
		rom[i] = byte(i / 0x4000)
	}
	rom[0x0148] = romCode
	rom[0x0149] = ramCode
	img, err := cart.New(rom, log.NewTestLogger(t))
	assert.NoError(t, err)
	b := New(img, logger)
	b.SkipBoot()
	return b
}

func hostClass(t *testing.T, err error) {
	t.Helper()
	c, ok := exit.ClassOf(err)
	assert.True(t, ok)
	assert.Equal(t, exit.Host, c)
}

func TestBootOverlay(t *testing.T) {
	img, err := cart.New([]byte{0xAA, 0xBB}, log.NewTestLogger(t))
	assert.NoError(t, err)
	b := New(img, log.NewTestLogger(t))

	assert.True(t, b.BootActive())
	assert.Equal(t, byte(0x31), b.Read(0x0000))
	assert.Equal(t, byte(0x50), b.Read(0x00FF))
	assert.Equal(t, byte(0x00), b.Read(0x0100))

	b.Write(BOOT, 1)
	assert.False(t, b.BootActive())
	assert.Equal(t, byte(0xAA), b.Read(0x0000))
	assert.Equal(t, byte(0xBB), b.Read(0x0001))
}

func TestCustomBootROM(t *testing.T) {
	img, err := cart.New(nil, log.NewTestLogger(t))
	assert.NoError(t, err)
	b := New(img, log.NewTestLogger(t))
	b.SetBootROM([]byte{0x18, 0xFE})
	assert.Equal(t, byte(0x18), b.Read(0x0000))
	assert.Equal(t, byte(0x00), b.Read(0x0050))
}

func TestROMBankSwitching(t *testing.T) {
	b := newBus(t, 128*1024, 0x02, 0x00) // 8 banks

	assert.Equal(t, byte(1), b.Read(0x4000))
	b.Write(0x2000, 5)
	assert.Equal(t, 5, b.ROMBank())
	assert.Equal(t, byte(5), b.Read(0x4000))
	assert.Equal(t, byte(5), b.Read(0x7FFF))
	assert.Equal(t, byte(0), b.Read(0x3FFF))

	b.Write(0x2000, 0) // bank 0 selects 1
	assert.Equal(t, 1, b.ROMBank())
	assert.NoError(t, b.Err())
}

func TestBankSelectIdempotent(t *testing.T) {
	b := newBus(t, 128*1024, 0x02, 0x00)
	b.Write(0x2100, 3)
	first := b.ROMBank()
	b.Write(0x2100, 3)
	assert.Equal(t, first, b.ROMBank())
	assert.Equal(t, 3, b.ROMBank())
}

func TestROMBankHighBits(t *testing.T) {
	b := newBus(t, 2*1024*1024, 0x06, 0x00) // 128 banks
	b.Write(0x2000, 0x02)
	b.Write(0x4000, 0x01)
	assert.Equal(t, 0x22, b.ROMBank())
	assert.Equal(t, byte(0x22), b.Read(0x4000))
	assert.NoError(t, b.Err())
}

func TestROMBankOverflowIsFatal(t *testing.T) {
	b := newBusWithLogger(t, newQuietLogger(), 0x8000, 0x00, 0x00)
	b.Write(0x2000, 4)
	err := b.Err()
	assert.Error(t, err)
	hostClass(t, err)
	assert.Equal(t, exit.StatusHost, exit.StatusOf(err))
	// the bad selection is not applied
	assert.Equal(t, 1, b.ROMBank())
}

func TestROMBankAtExactSizeAllowed(t *testing.T) {
	b := newBus(t, 0x8000, 0x00, 0x00)
	b.Write(0x2000, 2) // 2*0x4000 == 0x8000, not beyond
	assert.NoError(t, b.Err())
	assert.Equal(t, byte(0xFF), b.Read(0x4000))
}

func TestExternalRAM(t *testing.T) {
	b := newBus(t, 0x8000, 0x00, 0x03) // 32KiB RAM

	// disabled: writes dropped, reads return the sentinel
	b.Write(0xA000, 0x42)
	assert.Equal(t, byte(0), b.Read(0xA000))

	b.Write(0x0000, 0x0A)
	assert.True(t, b.RAMEnabled())
	b.Write(0xA000, 0x42)
	assert.Equal(t, byte(0x42), b.Read(0xA000))

	b.Write(0x6000, 1)
	b.Write(0x4000, 2)
	assert.Equal(t, 2, b.RAMBank())
	assert.Equal(t, byte(0), b.Read(0xA000))
	b.Write(0xBFFF, 0x99)
	assert.Equal(t, byte(0x99), b.Read(0xBFFF))

	b.Write(0x4000, 0)
	assert.Equal(t, byte(0x42), b.Read(0xA000))

	b.Write(0x1000, 0)
	assert.False(t, b.RAMEnabled())
	assert.NoError(t, b.Err())
}

func TestRAMBankOverflowIsFatal(t *testing.T) {
	b := newBusWithLogger(t, newQuietLogger(), 0x8000, 0x00, 0x02) // 8KiB RAM
	b.Write(0x6000, 1)
	b.Write(0x4000, 1) // 0x2000 == size, allowed
	assert.NoError(t, b.Err())
	b.Write(0x4000, 2)
	hostClass(t, b.Err())
}

func TestRAMWriteOverflowIsFatal(t *testing.T) {
	b := newBusWithLogger(t, newQuietLogger(), 0x8000, 0x00, 0x02)
	b.Write(0x0000, 0x0A)
	b.Write(0x6000, 1)
	b.Write(0x4000, 1)
	b.Write(0xA000, 0x11)
	hostClass(t, b.Err())
}

func TestMirrorRoundTrip(t *testing.T) {
	b := newBus(t, 0x8000, 0x00, 0x00)
	b.Write(0xC005, 0x5A)
	assert.Equal(t, byte(0x5A), b.Read(0xE005))
	b.Write(0xE006, 0xA5)
	assert.Equal(t, byte(0xA5), b.Read(0xC006))
	b.Write(0xFDFF, 0x77)
	assert.Equal(t, byte(0x77), b.Read(0xDDFF))
}

func TestReadsAreStable(t *testing.T) {
	b := newBus(t, 0x8000, 0x00, 0x02)
	b.Write(0x0000, 0x0A)
	for _, addr := range []uint16{0x0000, 0x4000, 0x8000, 0xA000, 0xC000, 0xE000, 0xFE00, 0xFEA0, 0xFF00, 0xFF80, 0xFFFF} {
		assert.Equal(t, b.Read(addr), b.Read(addr))
	}
}

func TestUnusableRegion(t *testing.T) {
	b := newBus(t, 0x8000, 0x00, 0x00)
	b.Write(0xFEA0, 0x12)
	assert.Equal(t, byte(0xFF), b.Read(0xFEA0))
	assert.Equal(t, byte(0xFF), b.Read(0xFEFF))
	assert.NoError(t, b.Err())
}

func TestReadModifyWrite(t *testing.T) {
	b := newBus(t, 0x8000, 0x00, 0x00)
	b.Write(IF, 0x0F)
	b.And(IF, 0xFE)
	assert.Equal(t, byte(0x0E), b.Read(IF))
	b.Or(IF, 0x10)
	assert.Equal(t, byte(0x1E), b.Read(IF))
	b.Write(0xC000, 0xFF)
	b.Inc(0xC000)
	assert.Equal(t, byte(0x00), b.Read(0xC000))
}

func TestSerialTransfer(t *testing.T) {
	b := newBus(t, 0x8000, 0x00, 0x00)
	var out bytes.Buffer
	done := 0
	b.SetSerialWriter(&out)
	b.SetSerialHook(func() { done++ })

	b.Write(SB, 'O')
	b.Write(SC, 0x81)
	b.Write(SB, 'K')
	b.Write(SC, 0x01) // no start bit
	b.Write(SC, 0x81)

	assert.Equal(t, "OK", out.String())
	assert.Equal(t, 2, done)
	assert.Equal(t, byte(0x01), b.Read(SC))
}

func TestMetadata(t *testing.T) {
	b := newBus(t, 64*1024, 0x01, 0x02)
	assert.Equal(t, 64*1024, b.ROMSize())
	assert.Equal(t, 8*1024, b.RAMSize())
	assert.Equal(t, "", b.Name())
	assert.Equal(t, 0x2000, len(b.VRAM()))
	assert.Equal(t, 0xA0, len(b.OAM()))
}
