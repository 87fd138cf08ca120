package ppu

import "github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"

// MaxSpritesPerLine is the hardware limit of objects drawn on one line.
const MaxSpritesPerLine = 10

// OAM attribute bits.
const (
	attrBehindBG = 1 << 7
	attrYFlip    = 1 << 6
	attrXFlip    = 1 << 5
	attrPalette1 = 1 << 4
)

// Sprite is one OAM entry with X and Y already converted to screen space.
type Sprite struct {
	X, Y     int
	Tile     byte
	Attr     byte
	OAMIndex int
}

// spritesOnLine collects up to MaxSpritesPerLine sprites covering line ly in
// OAM order.
func spritesOnLine(oam []byte, ly int, tall bool) []Sprite {
	height := 8
	if tall {
		height = 16
	}
	sprites := make([]Sprite, 0, MaxSpritesPerLine)
	for i := 0; i < bus.OAMSize/4 && len(sprites) < MaxSpritesPerLine; i++ {
		e := oam[i*4 : i*4+4]
		sy := int(e[0]) - 16
		if sy <= ly && ly < sy+height {
			sprites = append(sprites, Sprite{X: int(e[1]) - 8, Y: sy, Tile: e[2], Attr: e[3], OAMIndex: i})
		}
	}
	return sprites
}

// composeSpriteLine returns the sprite color index and palette (0 for OBP0,
// 1 for OBP1) of every pixel on line ly. Index 0 means no sprite pixel.
// The sprite with the smaller X wins an overlap, ties go to the lower OAM
// index. Sprites flagged behind the background only show over BG index 0.
func composeSpriteLine(mem VRAMReader, sprites []Sprite, ly int, bgci [ScreenWidth]byte, tall bool) (ci, pal [ScreenWidth]byte) {
	var owner [ScreenWidth]int
	for i := range owner {
		owner[i] = -1
	}

	for si, s := range sprites {
		row := ly - s.Y
		if s.Attr&attrYFlip != 0 {
			if tall {
				row = 15 - row
			} else {
				row = 7 - row
			}
		}
		tile := s.Tile
		if tall {
			tile &= 0xFE
			if row >= 8 {
				tile++
			}
		}
		lo, hi := tileRowBytes(mem, tile, true, byte(row&7))
		px := TileRow(lo, hi)

		for col := 0; col < 8; col++ {
			x := s.X + col
			if x < 0 || x >= ScreenWidth {
				continue
			}
			c := px[col]
			if s.Attr&attrXFlip != 0 {
				c = px[7-col]
			}
			if c == 0 {
				continue
			}
			if o := owner[x]; o >= 0 && !spriteBefore(s, sprites[o]) {
				continue
			}
			owner[x] = si
			if s.Attr&attrBehindBG != 0 && bgci[x] != 0 {
				ci[x], pal[x] = 0, 0
				continue
			}
			ci[x] = c
			pal[x] = 0
			if s.Attr&attrPalette1 != 0 {
				pal[x] = 1
			}
		}
	}
	return ci, pal
}

// spriteBefore reports whether a has drawing priority over b.
func spriteBefore(a, b Sprite) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.OAMIndex < b.OAMIndex
}
