package engine

// grid is a flat W*H*T byte buffer with toroidal (x,y) cell addressing.
// Cell (x,y) occupies data[(y*W+x)*T : (y*W+x+1)*T].
type grid struct {
	w, h, t int
	data    []byte
}

func newGrid(w, h, t int) *grid {
	return &grid{w: w, h: h, t: t, data: make([]byte, w*h*t)}
}

// wrap normalizes coordinates onto the toroidal grid.
func (g *grid) wrap(x, y int) (int, int) {
	x = (x%g.w + g.w) % g.w
	y = (y%g.h + g.h) % g.h
	return x, y
}

// cellRange returns the byte offset and length of a cell after wrapping.
func (g *grid) cellRange(x, y int) (offset, length int) {
	x, y = g.wrap(x, y)
	idx := y*g.w + x
	return idx * g.t, g.t
}

// cellAt returns a defensive copy of a cell's bytes after wrapping.
func (g *grid) cellAt(x, y int) []byte {
	off, n := g.cellRange(x, y)
	out := make([]byte, n)
	copy(out, g.data[off:off+n])
	return out
}

func (g *grid) len() int { return len(g.data) }
