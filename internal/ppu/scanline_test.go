package ppu

import "testing"

func TestBGScanlineSCXOffsetAndTileWrap(t *testing.T) {
	// 32 map entries at 0x9800 naming tiles 0..31
	mapBase := uint16(0x9800)
	mem := mockVRAM{}
	for tile := 0; tile < 32; tile++ {
		mem[mapBase+uint16(tile)] = byte(tile)
		base := uint16(0x8000 + tile*16)
		mem[base] = byte(tile)
		mem[base+1] = ^byte(tile)
	}

	// scx=5 drops the first 5 pixels of tile 0
	out := renderBGScanline(mem, mapBase, true, 5, 0, 0)
	for i := 0; i < 3; i++ {
		if want := rowPixel(0, 0xFF, 5+i); out[i] != want {
			t.Fatalf("px %d got %d want %d", i, out[i], want)
		}
	}
	for i := 0; i < 8; i++ {
		if want := rowPixel(1, ^byte(1), i); out[3+i] != want {
			t.Fatalf("tile1 px %d got %d want %d", i, out[3+i], want)
		}
	}

	// scx=248 starts at tile 31 and wraps to tile 0
	out = renderBGScanline(mem, mapBase, true, 248, 0, 0)
	if want := rowPixel(31, ^byte(31), 0); out[0] != want {
		t.Fatalf("tile31 px 0 got %d want %d", out[0], want)
	}
	if want := rowPixel(0, 0xFF, 0); out[8] != want {
		t.Fatalf("wrapped px got %d want %d", out[8], want)
	}
}

func TestBGScanlineSCY(t *testing.T) {
	mem := mockVRAM{}
	// map row 1 names tile 2; row 3 of tile 2 is solid color 3
	mem[0x9800+32] = 2
	mem[0x8000+2*16+3*2] = 0xFF
	mem[0x8000+2*16+3*2+1] = 0xFF

	// ly 1 + scy 10 = bg row 11: tile row 1, fine row 3
	out := renderBGScanline(mem, 0x9800, true, 0, 10, 1)
	for x := 0; x < 8; x++ {
		if out[x] != 3 {
			t.Fatalf("px %d got %d want 3", x, out[x])
		}
	}
	if out[8] != 0 {
		t.Fatalf("px 8 got %d want 0", out[8])
	}
}

func TestWindowScanlineWXAndTiles(t *testing.T) {
	mem := mockVRAM{}
	mapBase := uint16(0x9800)
	mem[mapBase+0] = 0
	mem[mapBase+1] = 1
	fineY := byte(2)
	base0 := uint16(0x8000) + uint16(fineY)*2
	mem[base0] = 0xAA
	mem[base0+1] = 0x0F
	base1 := uint16(0x8000) + 16 + uint16(fineY)*2
	mem[base1] = 0x55
	mem[base1+1] = 0xF0

	// WX-7 = 20
	out := renderWindowScanline(mem, mapBase, true, 20, fineY)
	for x := 0; x < 20; x++ {
		if out[x] != 0 {
			t.Fatalf("pre-window px %d = %d, want 0", x, out[x])
		}
	}
	for i := 0; i < 8; i++ {
		if want := rowPixel(0xAA, 0x0F, i); out[20+i] != want {
			t.Fatalf("tile0 px %d got %d want %d", i, out[20+i], want)
		}
	}
	for i := 0; i < 8; i++ {
		if want := rowPixel(0x55, 0xF0, i); out[28+i] != want {
			t.Fatalf("tile1 px %d got %d want %d", i, out[28+i], want)
		}
	}
}

func TestWindowScanlineLeftOfScreen(t *testing.T) {
	mem := mockVRAM{}
	mem[0x8000] = 0x0F // row 0 of tile 0: pixels 4..7 color 1

	// WX=3 starts the window 4 pixels left of the screen
	out := renderWindowScanline(mem, 0x9800, true, -4, 0)
	for x := 0; x < 4; x++ {
		if out[x] != 1 {
			t.Fatalf("px %d got %d want 1", x, out[x])
		}
	}
	if out[4] != 0 {
		t.Fatalf("px 4 got %d want 0", out[4])
	}

	// WX past the right edge draws nothing
	out = renderWindowScanline(mem, 0x9800, true, ScreenWidth, 0)
	if out != [ScreenWidth]byte{} {
		t.Fatal("window drawn past the right edge")
	}
}
