package ppu

// Tile sheet geometry: 384 tiles of 8x8 pixels laid out 16 per row.
const (
	TileCount       = 384
	TilesPerRow     = 16
	TileSheetWidth  = TilesPerRow * 8
	TileSheetHeight = TileCount / TilesPerRow * 8
)

// shades are the four DMG grey levels, lightest first.
var shades = [4]byte{0xFF, 0xAA, 0x55, 0x00}

// shade maps color index ci through a BGP/OBP style palette byte.
func shade(pal, ci byte) byte {
	return shades[(pal>>(ci*2))&0x03]
}

// TileRow decodes the 8 color indices (0..3) of one tile row from its two
// bitplane bytes, leftmost pixel first.
func TileRow(lo, hi byte) [8]byte {
	var out [8]byte
	for px := 0; px < 8; px++ {
		bit := 7 - byte(px)
		out[px] = ((hi>>bit)&1)<<1 | (lo>>bit)&1
	}
	return out
}

// TileSheet renders every tile in vram (0x8000-0x97FF) as RGBA pixels using
// the palette byte pal (BGP layout). The result is TileSheetWidth by
// TileSheetHeight pixels, 4 bytes each.
func TileSheet(vram []byte, pal byte) []byte {
	out := make([]byte, TileSheetWidth*TileSheetHeight*4)
	for tile := 0; tile < TileCount; tile++ {
		tx := (tile % TilesPerRow) * 8
		ty := (tile / TilesPerRow) * 8
		for row := 0; row < 8; row++ {
			off := tile*16 + row*2
			if off+1 >= len(vram) {
				return out
			}
			px := TileRow(vram[off], vram[off+1])
			for x, ci := range px {
				v := shade(pal, ci)
				i := ((ty+row)*TileSheetWidth + tx + x) * 4
				out[i+0] = v
				out[i+1] = v
				out[i+2] = v
				out[i+3] = 0xFF
			}
		}
	}
	return out
}
