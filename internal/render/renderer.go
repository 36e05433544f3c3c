//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter rasterizes the engine's raw W*H*T byte buffer into an image
// that is T bytes wide per cell column and H cells tall, so every tape byte
// occupies its own pixel and is colored by the fixed palette.
type GridPainter struct {
	w, h int // pixel dimensions: w = gridWidth*tapeSize, h = gridHeight
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a byte grid of pixel size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the raw grid bytes into the painter image, colored through
// palette, and draws the result onto dst scaled by scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, raw []byte, palette [256]color.RGBA, scale int) {
	if len(raw) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, raw, palette)
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the pixel dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
