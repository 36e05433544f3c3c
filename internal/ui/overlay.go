//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/arabold/bff-computational-life/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws a semi-transparent stats panel in the top-left corner,
// showing the current epoch, grid entropy, replication rate, and the
// dominant species from the most recent census.
type Overlay struct {
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// Update allows the overlay to react to input; the stats overlay has none.
func (o *Overlay) Update() {}

// Draw renders the stats panel onto screen using snap.
func (o *Overlay) Draw(screen *ebiten.Image, snap engine.StatsSnapshot) {
	face := basicfont.Face7x13
	lines := []string{
		fmt.Sprintf("epoch       %d", snap.Epoch),
		fmt.Sprintf("entropy     %.3f", snap.Entropy),
		fmt.Sprintf("zero_dens   %.3f", snap.ZeroDensity),
		fmt.Sprintf("repl_rate   %.3f", snap.ReplicationRate),
		fmt.Sprintf("eff_repl    %.3f", snap.EffectiveReplication),
	}
	if snap.Census != nil {
		lines = append(lines, fmt.Sprintf("species     %d", snap.Census.SpeciesCount))
		if len(snap.Census.TopSpecies) > 0 {
			top := snap.Census.TopSpecies[0]
			lines = append(lines, fmt.Sprintf("#1 dom      %.2f", top.Dominance))
		}
	}

	const (
		padding    = 8
		lineHeight = 16
		panelWidth = 190
	)
	panelHeight := padding*2 + lineHeight*len(lines)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(panelWidth, float64(panelHeight))
	op.GeoM.Translate(6, 6)
	op.ColorM.Scale(0, 0, 0, 0.55)
	screen.DrawImage(o.pixel, op)

	for i, line := range lines {
		y := 6 + padding + i*lineHeight + 10
		text.Draw(screen, line, face, 6+padding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
}
