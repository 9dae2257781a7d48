package main

import "glyphfield/internal/vmath"

// A terminal cell covers cellWidth x cellHeight stage pixels and is drawn as
// two half blocks stacked vertically.
const (
	cellWidth  = 8
	cellHeight = 16
	halfHeight = cellHeight / 2
)

// stageSize returns the pixel stage backing a cols x rows terminal.
func stageSize(cols, rows int) (int, int) {
	return cols * cellWidth, rows * cellHeight
}

// stagePoint maps a terminal cell to the stage pixel at its centre.
func stagePoint(col, row int) vmath.Vec2 {
	return vmath.Vec2{
		X: float64(col*cellWidth + cellWidth/2),
		Y: float64(row*cellHeight + halfHeight),
	}
}

// halfGrid counts particles per half cell.
type halfGrid struct {
	cols, rows int
	counts     []uint16
}

func newHalfGrid(cols, rows int) *halfGrid {
	g := &halfGrid{}
	g.Resize(cols, rows)
	return g
}

// Resize sets the grid to cols x rows terminal cells and clears it.
func (g *halfGrid) Resize(cols, rows int) {
	g.cols, g.rows = cols, rows*2
	if n := g.cols * g.rows; cap(g.counts) >= n {
		g.counts = g.counts[:n]
	} else {
		g.counts = make([]uint16, n)
	}
	g.Clear()
}

func (g *halfGrid) Clear() {
	for i := range g.counts {
		g.counts[i] = 0
	}
}

// Plot adds every position that falls inside the grid.
func (g *halfGrid) Plot(positions []vmath.Vec2) {
	for _, p := range positions {
		if p.X < 0 || p.Y < 0 {
			continue
		}
		x, y := int(p.X)/cellWidth, int(p.Y)/halfHeight
		if x >= g.cols || y >= g.rows {
			continue
		}
		if i := y*g.cols + x; g.counts[i] < ^uint16(0) {
			g.counts[i]++
		}
	}
}

// Cell reports which halves of terminal cell (col, row) hold a particle.
func (g *halfGrid) Cell(col, row int) (top, bottom bool) {
	if col < 0 || row < 0 || col >= g.cols || row*2+1 >= g.rows {
		return false, false
	}
	return g.counts[row*2*g.cols+col] > 0, g.counts[(row*2+1)*g.cols+col] > 0
}

func blockRune(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}
