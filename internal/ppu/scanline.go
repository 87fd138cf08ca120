package ppu

// ScreenWidth and ScreenHeight are the visible LCD size in pixels.
const (
	ScreenWidth  = 160
	ScreenHeight = VisibleLines
)

// renderBGScanline renders 160 background color indices for line ly.
// mapBase is 0x9800 or 0x9C00; tileData8000 selects unsigned 0x8000
// addressing over signed 0x8800 addressing.
func renderBGScanline(mem VRAMReader, mapBase uint16, tileData8000 bool, scx, scy, ly byte) [ScreenWidth]byte {
	var out [ScreenWidth]byte

	bgY := uint16(ly) + uint16(scy)
	fineY := byte(bgY & 7)
	mapY := (bgY >> 3) & 31

	tileX := (uint16(scx) >> 3) & 31
	fineX := int(scx & 7)

	var q fifo
	f := newTileFetcher(mem, &q)
	f.Configure(tileData8000, mapBase+mapY*32+tileX, fineY)
	f.Fetch()
	// discard the fine scroll pixels
	for i := 0; i < fineX; i++ {
		_, _ = q.Pop()
	}

	for x := 0; x < ScreenWidth; x++ {
		if q.Len() == 0 {
			tileX = (tileX + 1) & 31
			f.Configure(tileData8000, mapBase+mapY*32+tileX, fineY)
			f.Fetch()
		}
		out[x], _ = q.Pop()
	}
	return out
}

// renderWindowScanline renders window row winLine starting at screen column
// startX (WX-7). Columns left of startX stay 0.
func renderWindowScanline(mem VRAMReader, mapBase uint16, tileData8000 bool, startX int, winLine byte) [ScreenWidth]byte {
	var out [ScreenWidth]byte
	if startX >= ScreenWidth {
		return out
	}

	mapY := uint16(winLine>>3) & 31
	fineY := winLine & 7
	tileX := uint16(0)

	var q fifo
	f := newTileFetcher(mem, &q)
	f.Configure(tileData8000, mapBase+mapY*32, fineY)
	f.Fetch()
	// WX below 7 shifts the window left off screen
	for x := startX; x < 0; x++ {
		if q.Len() == 0 {
			tileX++
			f.Configure(tileData8000, mapBase+mapY*32+tileX, fineY)
			f.Fetch()
		}
		_, _ = q.Pop()
	}

	for x := max(startX, 0); x < ScreenWidth; x++ {
		if q.Len() == 0 {
			tileX = (tileX + 1) & 31
			f.Configure(tileData8000, mapBase+mapY*32+tileX, fineY)
			f.Fetch()
		}
		out[x], _ = q.Pop()
	}
	return out
}
