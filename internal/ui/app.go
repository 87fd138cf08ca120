// Package ui hosts a Machine in an ebiten window. With ShowTiles the tile
// data in video memory is shown next to the screen.
package ui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/ppu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// framesWhileFast is how many frames one update runs while turbo is held.
const framesWhileFast = 5

type App struct {
	cfg Config
	m   *emu.Machine

	tex     *ebiten.Image
	tiles   *ebiten.Image
	overlay *ebiten.Image

	showMenu bool
	menuIdx  int
	status   string
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	w, h := layoutSize(cfg)
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)
	// ebiten already runs Update at 60Hz
	m.SetPaced(false)
	return &App{cfg: cfg, m: m}
}

// Run blocks until the window closes or the machine ends the session, and
// returns the reason as an *exit.Error.
func (a *App) Run() error {
	err := ebiten.RunGame(a)
	if err == nil {
		return exit.Quit()
	}
	return err
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return exit.Quit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.showMenu = !a.showMenu
		a.menuIdx = menuResume
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if err := a.saveScreenshot(); err != nil {
			a.status = err.Error()
		}
	}
	if a.showMenu {
		return a.updateMenu()
	}

	btn := a.buttons()
	a.m.SetButtons(btn)

	frames := 1
	if btn.Turbo {
		frames = framesWhileFast
	}
	for i := 0; i < frames; i++ {
		if err := a.m.RunFrame(); err != nil {
			return err
		}
	}
	return nil
}

// buttons maps the keyboard to Game Boy keys.
func (a *App) buttons() emu.Buttons {
	return emu.Buttons{
		Right:  ebiten.IsKeyPressed(ebiten.KeyRight),
		Left:   ebiten.IsKeyPressed(ebiten.KeyLeft),
		Up:     ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyDown),
		A:      ebiten.IsKeyPressed(ebiten.KeyZ),
		B:      ebiten.IsKeyPressed(ebiten.KeyX),
		Start:  ebiten.IsKeyPressed(ebiten.KeyEnter),
		Select: ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		Turbo:  ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyTab),
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight)
	}
	a.tex.WritePixels(a.m.LCD().Framebuffer())
	screen.DrawImage(a.tex, nil)

	if a.cfg.ShowTiles {
		if a.tiles == nil {
			a.tiles = ebiten.NewImage(ppu.TileSheetWidth, ppu.TileSheetHeight)
		}
		a.tiles.WritePixels(ppu.TileSheet(a.m.Bus().VRAM(), a.m.Bus().Read(bus.BGP)))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(ppu.ScreenWidth, 0)
		screen.DrawImage(a.tiles, op)
	}

	if a.showMenu {
		a.drawMenu(screen)
		return
	}
	if a.cfg.ShowTiles {
		a.drawInfo(screen)
	}
	if a.status != "" {
		ebitenutil.DebugPrintAt(screen, a.status, 2, ppu.ScreenHeight-16)
	}
}

func (a *App) drawInfo(screen *ebiten.Image) {
	r := a.m.CPU().Regs()
	b := a.m.Bus()
	text := fmt.Sprintf("F%d PC:%04X LY:%02X\nAF:%04X BC:%04X ROM:%d\nDE:%04X HL:%04X",
		a.m.Frame(), r.PC, b.Read(bus.LY), r.AF(), r.BC(), b.ROMBank(), r.DE(), r.HL())
	ebitenutil.DebugPrintAt(screen, text, 2, ppu.ScreenHeight)
}

func (a *App) Layout(outW, outH int) (int, int) {
	return layoutSize(a.cfg)
}

// layoutSize is the logical screen size: the LCD alone, or the LCD with the
// tile sheet to its right and room for the register text below.
func layoutSize(cfg Config) (int, int) {
	if !cfg.ShowTiles {
		return ppu.ScreenWidth, ppu.ScreenHeight
	}
	return ppu.ScreenWidth + ppu.TileSheetWidth, ppu.TileSheetHeight
}

func (a *App) saveScreenshot() error {
	fb := a.m.LCD().Framebuffer()
	img := &image.RGBA{
		Pix:    make([]byte, len(fb)),
		Stride: 4 * ppu.ScreenWidth,
		Rect:   image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight),
	}
	copy(img.Pix, fb)
	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	a.status = "saved " + name
	return nil
}
