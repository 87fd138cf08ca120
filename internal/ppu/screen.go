package ppu

import "github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"

// LCDC bits read by the renderer.
const (
	lcdcWindowMap = 1 << 6
	lcdcWindowOn  = 1 << 5
	lcdcTileData  = 1 << 4
	lcdcBGMap     = 1 << 3
	lcdcObjTall   = 1 << 2
	lcdcObjOn     = 1 << 1
	lcdcBGOn      = 1 << 0

	tileMap0 = 0x9800
	tileMap1 = 0x9C00

	// WX values past this put the window off screen
	maxWindowX = 166
)

// screen renders one line at a time into an RGBA framebuffer.
type screen struct {
	fb      []byte
	winLine byte // window rows drawn so far this frame
}

func newScreen() *screen {
	s := &screen{fb: make([]byte, ScreenWidth*ScreenHeight*4)}
	s.clear()
	return s
}

// clear fills the framebuffer with the lightest shade.
func (s *screen) clear() {
	for i := 0; i < len(s.fb); i += 4 {
		s.fb[i], s.fb[i+1], s.fb[i+2], s.fb[i+3] = shades[0], shades[0], shades[0], 0xFF
	}
}

// startFrame resets the window line counter.
func (s *screen) startFrame() { s.winLine = 0 }

// drawLine renders line ly from the current register and memory state:
// background, then window, then sprites.
func (s *screen) drawLine(b *bus.Bus, ly byte) {
	lcdc := b.Read(bus.LCDC)
	tileData8000 := lcdc&lcdcTileData != 0

	var bgci [ScreenWidth]byte
	if lcdc&lcdcBGOn != 0 {
		bgMap := uint16(tileMap0)
		if lcdc&lcdcBGMap != 0 {
			bgMap = tileMap1
		}
		bgci = renderBGScanline(b, bgMap, tileData8000, b.Read(bus.SCX), b.Read(bus.SCY), ly)

		wy, wx := b.Read(bus.WY), b.Read(bus.WX)
		if lcdc&lcdcWindowOn != 0 && ly >= wy && wx <= maxWindowX {
			winMap := uint16(tileMap0)
			if lcdc&lcdcWindowMap != 0 {
				winMap = tileMap1
			}
			startX := int(wx) - 7
			win := renderWindowScanline(b, winMap, tileData8000, startX, s.winLine)
			copy(bgci[max(startX, 0):], win[max(startX, 0):])
			s.winLine++
		}
	}

	row := s.fb[int(ly)*ScreenWidth*4 : (int(ly)+1)*ScreenWidth*4]
	bgp := b.Read(bus.BGP)
	for x, ci := range bgci {
		v := shades[0]
		if lcdc&lcdcBGOn != 0 {
			v = shade(bgp, ci)
		}
		setPixel(row, x, v)
	}

	if lcdc&lcdcObjOn == 0 {
		return
	}
	tall := lcdc&lcdcObjTall != 0
	sprites := spritesOnLine(b.OAM(), int(ly), tall)
	if len(sprites) == 0 {
		return
	}
	ci, pal := composeSpriteLine(b, sprites, int(ly), bgci, tall)
	obp := [2]byte{b.Read(bus.OBP0), b.Read(bus.OBP1)}
	for x := range ci {
		if ci[x] != 0 {
			setPixel(row, x, shade(obp[pal[x]], ci[x]))
		}
	}
}

func setPixel(row []byte, x int, v byte) {
	i := x * 4
	row[i], row[i+1], row[i+2], row[i+3] = v, v, v, 0xFF
}
