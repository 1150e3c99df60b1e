// Package ui is an ebiten viewer for decoded memory snapshots. It cycles
// through loaded frames and shows the tile sheet, the background layer,
// or the sprite layer, with PNG screenshots on demand.
package ui

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/kernyan/pygb/internal/export"
	"github.com/kernyan/pygb/internal/render"
	"github.com/kernyan/pygb/internal/snapshot"
	"github.com/kernyan/pygb/internal/tile"
)

// View selects which raster the window shows.
type View int

const (
	ViewTiles View = iota
	ViewBackground
	ViewSprites
)

func (v View) String() string {
	switch v {
	case ViewBackground:
		return "bg"
	case ViewSprites:
		return "oam"
	default:
		return "tiles"
	}
}

// logical canvas: big enough for the 256x256 background plus a status line.
const (
	canvasW = 256
	canvasH = 256 + 16
)

type App struct {
	cfg    Config
	frames []*snapshot.Frame
	cur    int

	view    View
	mapBase uint16
	mode    tile.AddrMode
	tall    bool

	tex    *ebiten.Image
	dirty  bool
	status string
}

// NewApp builds a viewer over one or more loaded frames.
func NewApp(cfg Config, frames []*snapshot.Frame) (*App, error) {
	if len(frames) == 0 {
		return nil, errors.New("ui: no frames to show")
	}
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(canvasW*cfg.Scale, canvasH*cfg.Scale)
	return &App{
		cfg:     cfg,
		frames:  frames,
		mapBase: render.MapBase9800,
		dirty:   true,
	}, nil
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// View selection
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.view, a.dirty = ViewTiles, true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		a.view, a.dirty = ViewBackground, true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		a.view, a.dirty = ViewSprites, true
	}

	// Frame cycling
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) && a.cur+1 < len(a.frames) {
		a.cur, a.dirty = a.cur+1, true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) && a.cur > 0 {
		a.cur, a.dirty = a.cur-1, true
	}

	// Render options
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if a.mapBase == render.MapBase9800 {
			a.mapBase = render.MapBase9C00
		} else {
			a.mapBase = render.MapBase9800
		}
		a.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if a.mode == tile.Addr8000 {
			a.mode = tile.Addr8800
		} else {
			a.mode = tile.Addr8000
		}
		a.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.tall = !a.tall
		a.dirty = true
	}

	if a.dirty {
		a.refresh()
	}

	// Screenshot of the current raster
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.screenshot()
	}
	return nil
}

// currentRaster renders the active view of the active frame.
func (a *App) currentRaster() (*render.Raster, error) {
	fr := a.frames[a.cur]
	switch a.view {
	case ViewBackground:
		return render.Background(fr.VRAM, a.mapBase, a.mode)
	case ViewSprites:
		return render.Sprites(fr.VRAM, fr.OAM, render.SpriteConfig{TallSprites: a.tall})
	default:
		return render.TileSheet(fr.VRAM, render.DefaultTilesPerRow)
	}
}

func (a *App) refresh() {
	a.dirty = false
	r, err := a.currentRaster()
	if err != nil {
		a.status = fmt.Sprintf("render failed: %v", err)
		log.Printf("ui: %v", err)
		return
	}
	a.tex = ebiten.NewImageFromImage(export.GrayImage(r, export.IdentityPalette))
	a.status = fmt.Sprintf("[%s] frame %d/%d map=%#04x mode=%s tall=%v  (T/B/O views, arrows frames, M/A/G opts, S shot)",
		a.view, a.cur+1, len(a.frames), a.mapBase, a.mode, a.tall)
}

func (a *App) screenshot() {
	r, err := a.currentRaster()
	if err != nil {
		log.Printf("ui: screenshot render: %v", err)
		return
	}
	idx := a.frames[a.cur].Index
	if idx < 0 {
		idx = a.cur
	}
	path := filepath.Join(a.cfg.OutDir, fmt.Sprintf("%s_%d.png", a.view, idx))
	if err := export.WritePNG(path, r, export.IdentityPalette); err != nil {
		log.Printf("ui: write %s: %v", path, err)
		return
	}
	log.Printf("wrote %s", path)
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex != nil {
		var op ebiten.DrawImageOptions
		screen.DrawImage(a.tex, &op)
	}
	ebitenutil.DebugPrintAt(screen, a.status, 2, canvasH-14)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return canvasW, canvasH
}
