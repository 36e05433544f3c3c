// Package render blits the engine's raw byte grid into an RGBA image using
// the fixed 256-entry palette, for consumption by the GUI driver.
package render

import "image/color"

// fillPaletteRGBA converts raw tape bytes into RGBA pixels in buf, one pixel
// per byte. palette is indexed directly by byte value: since a byte is
// always in [0,255] and palette always has exactly 256 entries (it comes
// from engine.PaletteRGBA, never hand-built), every index is in range by
// construction and there is nothing to clamp or special-case for an empty
// table.
func fillPaletteRGBA(buf []byte, bytes []byte, palette [256]color.RGBA) {
	for i, b := range bytes {
		col := palette[b]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
