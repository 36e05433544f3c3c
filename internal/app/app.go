//go:build ebiten

package app

import (
	"time"

	"github.com/arabold/bff-computational-life/internal/engine"
	"github.com/arabold/bff-computational-life/internal/render"
	"github.com/arabold/bff-computational-life/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts an *engine.Engine to the ebiten.Game interface.
type Game struct {
	eng     *engine.Engine
	painter *render.GridPainter
	overlay *ui.Overlay

	scale         int
	stepsPerFrame uint32
	paused        bool
	tickOnce      bool
}

// New constructs a Game driving eng, scaled by scale pixels per tape byte,
// advancing stepsPerFrame interactions per unpaused frame.
func New(eng *engine.Engine, scale int, stepsPerFrame uint32) *Game {
	cfg := eng.Config()
	return &Game{
		eng:           eng,
		painter:       render.NewGridPainter(cfg.GridWidth*cfg.TapeSize, cfg.GridHeight),
		overlay:       ui.NewOverlay(),
		scale:         scale,
		stepsPerFrame: stepsPerFrame,
	}
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.eng.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		next := g.eng.Config()
		next.Seed = uint32(time.Now().UnixNano())
		if err := g.eng.UpdateConfig(next); err != nil {
			return err
		}
	}

	if g.overlay != nil {
		g.overlay.Update()
	}

	if (!g.paused) || g.tickOnce {
		g.eng.Step(g.stepsPerFrame)
		g.tickOnce = false
	}
	return nil
}

// Draw renders the grid and the stats overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.eng.Grid(), g.eng.PaletteRGBA(), g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen, g.eng.Stats())
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.painter.Size()
	return w * g.scale, h * g.scale
}
