package cart

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew_PadsTinyImage(t *testing.T) {
	img, err := New([]byte{0x3E, 0x01, 0x3C, 0xC3, 0x02, 0x00}, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.Equal(t, MinROMSize, len(img.ROM))
	assert.Equal(t, MinROMSize, img.ROMSize)
	assert.Equal(t, 0, img.RAMSize)
	assert.Equal(t, 0, len(img.RAM))
	assert.Equal(t, byte(0x3C), img.ROM[2])
	assert.False(t, img.LogoValid)
}

func TestNew_DeclaredSizes(t *testing.T) {
	rom := buildROM("BANKS", 0x03, 0x02, 0x03, 128*1024)
	img, err := New(rom, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.Equal(t, "BANKS", img.Name)
	assert.Equal(t, 128*1024, img.ROMSize)
	assert.Equal(t, 32*1024, img.RAMSize)
	assert.Equal(t, 32*1024, len(img.RAM))
	assert.True(t, img.LogoValid)
	assert.True(t, img.ChecksumValid)
}

func TestNew_UnknownSizeCodeFallsBackToLength(t *testing.T) {
	rom := buildROM("ODD", 0x00, 0x77, 0x00, 48*1024)
	img, err := New(rom, nil)
	assert.NoError(t, err)
	assert.Equal(t, 48*1024, img.ROMSize)
}
