package ui

import (
	"image/color"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	menuResume = iota
	menuStep
	menuScreenshot
	menuQuit
)

var menuItems = []string{
	"Resume",
	"Step frame",
	"Screenshot",
	"Quit",
}

// updateMenu handles navigation while the menu is open. A non-nil error
// ends the game loop.
func (a *App) updateMenu() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < len(menuItems)-1 {
		a.menuIdx++
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return nil
	}

	switch a.menuIdx {
	case menuResume:
		a.showMenu = false
	case menuStep:
		return a.m.RunFrame()
	case menuScreenshot:
		if err := a.saveScreenshot(); err != nil {
			a.status = err.Error()
		}
	case menuQuit:
		return exit.Quit()
	}
	return nil
}

func (a *App) drawMenu(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.overlay == nil {
		a.overlay = ebiten.NewImage(w, h)
		a.overlay.Fill(color.RGBA{0, 0, 0, 160})
	}
	screen.DrawImage(a.overlay, nil)

	ebitenutil.DebugPrintAt(screen, "Paused", 8, 8)
	for i, s := range menuItems {
		prefix := "  "
		if i == a.menuIdx {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+s, 8, 28+i*16)
	}
}
