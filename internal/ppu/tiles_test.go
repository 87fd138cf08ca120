package ppu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTileRow(t *testing.T) {
	// lo=0b10101010 hi=0b11001100
	assert.Equal(t, [8]byte{3, 2, 1, 0, 3, 2, 1, 0}, TileRow(0xAA, 0xCC))
	assert.Equal(t, [8]byte{}, TileRow(0x00, 0x00))
}

func TestTileSheet(t *testing.T) {
	vram := make([]byte, 0x2000)
	// tile 1, row 0: leftmost pixel color 3, rest 0
	vram[16] = 0x80
	vram[17] = 0x80

	sheet := TileSheet(vram, 0xE4) // identity palette
	assert.Equal(t, TileSheetWidth*TileSheetHeight*4, len(sheet))

	px := func(x, y int) byte { return sheet[(y*TileSheetWidth+x)*4] }
	assert.Equal(t, byte(0x00), px(8, 0))
	assert.Equal(t, byte(0xFF), px(9, 0))
	assert.Equal(t, byte(0xFF), px(0, 0))
	assert.Equal(t, byte(0xFF), sheet[3])

	// palette remaps color 3 to the lightest shade
	sheet = TileSheet(vram, 0x24)
	assert.Equal(t, byte(0xFF), px(8, 0))
}
