package game

import "math"

// Grid maps logical cells to pixels on a toroidal surface.
type Grid struct {
	Cols, Rows    int
	Width, Height int
	ScaleX        int // pixels per cell, horizontally
	ScaleY        int // pixels per cell, vertically
}

// MoveFunc advances a head position by one step.
type MoveFunc func(Point) Point

// NewGrid computes the cell scale once from the canvas size.
func NewGrid(cols, rows, width, height int) Grid {
	return Grid{
		Cols:   cols,
		Rows:   rows,
		Width:  width,
		Height: height,
		ScaleX: int(math.Round(float64(width) / float64(cols))),
		ScaleY: int(math.Round(float64(height) / float64(rows))),
	}
}

// ToPixelX converts a column index to a pixel x coordinate.
func (g Grid) ToPixelX(cell int) int {
	return cell * g.ScaleX
}

// ToPixelY converts a row index to a pixel y coordinate.
func (g Grid) ToPixelY(cell int) int {
	return cell * g.ScaleY
}

// ToPixel converts a cell to its pixel position.
func (g Grid) ToPixel(col, row int) Point {
	return Point{X: g.ToPixelX(col), Y: g.ToPixelY(row)}
}

// ToCell converts a pixel position back to cell indices.
func (g Grid) ToCell(p Point) (col, row int) {
	return p.X / g.ScaleX, p.Y / g.ScaleY
}

// Normalize wraps a position that left the canvas onto the opposite edge.
func (g Grid) Normalize(p Point) Point {
	return Point{
		X: wrap(p.X, g.Width, g.ScaleX),
		Y: wrap(p.Y, g.Height, g.ScaleY),
	}
}

func wrap(v, extent, cell int) int {
	switch {
	case v >= extent:
		return 0
	case v+cell <= 0:
		return extent - cell
	default:
		return v
	}
}

// Move returns a MoveFunc adding the scaled direction vector. The result is
// not normalized.
func (g Grid) Move(d Direction) MoveFunc {
	dx, dy := g.ToPixelX(d.X), g.ToPixelY(d.Y)
	return func(p Point) Point {
		return Point{X: p.X + dx, Y: p.Y + dy}
	}
}

// Config describes the grid for clients.
func (g Grid) Config() GameConfig {
	return GameConfig{
		Cols:       g.Cols,
		Rows:       g.Rows,
		Width:      g.Width,
		Height:     g.Height,
		CellWidth:  g.ScaleX,
		CellHeight: g.ScaleY,
	}
}
