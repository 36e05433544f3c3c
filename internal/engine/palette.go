package engine

import "image/color"

// Opcode alphabet (ASCII values), per the BFF instruction set.
const (
	opMoveReadLeft   = 60  // '<'
	opMoveReadRight  = 62  // '>'
	opMoveWriteLeft  = 123 // '{'
	opMoveWriteRight = 125 // '}'
	opDec            = 45  // '-'
	opInc            = 43  // '+'
	opCopyOut        = 46  // '.'
	opCopyIn         = 44  // ','
	opLoopOpen       = 91  // '['
	opLoopClose      = 93  // ']'
	opTerminator     = 0   // 0x00, terminator/null
)

// isOpcode reports whether b is one of the ten recognized opcodes. The
// terminator and all other bytes are inert data and never count toward
// complexity.
func isOpcode(b byte) bool {
	switch b {
	case opMoveReadLeft, opMoveReadRight, opMoveWriteLeft, opMoveWriteRight,
		opDec, opInc, opCopyOut, opCopyIn, opLoopOpen, opLoopClose:
		return true
	default:
		return false
	}
}

// palette is the fixed 256-entry RGBA color table consumed by the external
// rendering collaborator. Index i is the color assigned to byte value i.
var palette = buildPalette()

func buildPalette() [256]color.RGBA {
	var p [256]color.RGBA
	for i := range p {
		b := byte(i)
		switch b {
		case opMoveReadLeft, opMoveReadRight:
			p[i] = color.RGBA{255, 60, 60, 255}
		case opMoveWriteLeft, opMoveWriteRight:
			p[i] = color.RGBA{60, 120, 255, 255}
		case opDec, opInc:
			p[i] = color.RGBA{60, 255, 60, 255}
		case opCopyOut, opCopyIn:
			p[i] = color.RGBA{255, 140, 0, 255}
		case opLoopOpen, opLoopClose:
			p[i] = color.RGBA{180, 50, 255, 255}
		case opTerminator:
			p[i] = color.RGBA{0, 0, 0, 255}
		default:
			v := uint8(20 + int(b)%30)
			p[i] = color.RGBA{v, v, v, 255}
		}
	}
	return p
}

// Palette returns the fixed 256-entry RGBA table as a flat 1024-byte buffer
// (RGBA order, alpha always 255), per the renderer contract.
func Palette() [1024]byte {
	var out [1024]byte
	for i, c := range palette {
		base := i * 4
		out[base+0] = c.R
		out[base+1] = c.G
		out[base+2] = c.B
		out[base+3] = c.A
	}
	return out
}

// PaletteRGBA returns the palette as 256 color.RGBA entries, avoiding a
// second byte-unpacking pass for renderers that already work in color.RGBA
// (see internal/render.GridPainter). The fixed-size array, rather than a
// slice, is what lets that renderer index it directly by tape byte value
// with no bounds check: a byte is always in [0,255], which is exactly the
// array's domain.
func PaletteRGBA() [256]color.RGBA {
	return palette
}
