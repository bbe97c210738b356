package overlay

import (
	"image"
	"math"

	"github.com/Garsondee/Region-Locker/internal/region"
)

// Grid is the set of region cells overlapping one frame, plus the mapping
// from region origins to screen rectangles.
//
// World Y grows up the map while screen Y grows down, so rows are flipped
// and every rectangle is lifted by one region's pixel height to anchor it
// at its top-left corner.
type Grid struct {
	Frame Frame

	WidthUnits  int // visible world units across, rounded up
	HeightUnits int // visible world units down, rounded up

	// Region-aligned enumeration bounds. Max is exclusive and carries one
	// region of slack so partially visible cells on the high side are drawn.
	XMin, XMax int
	YMin, YMax int

	// RegionPixelSize is the on-screen edge of one region, rounded up so
	// neighbouring cells overlap by at most a pixel instead of leaving gaps.
	RegionPixelSize int

	yTileMin int
}

// Cell is one enumerated region with its screen rectangle.
type Cell struct {
	X, Y int // world origin, multiples of region.Size
	ID   region.ID
	Rect image.Rectangle
}

// NewGrid computes the region grid for f.
func NewGrid(f Frame) (Grid, error) {
	if err := f.Validate(); err != nil {
		return Grid{}, err
	}
	g := Grid{Frame: f}
	g.WidthUnits, g.HeightUnits = f.VisibleUnits()
	halfW := g.WidthUnits / 2
	halfH := g.HeightUnits / 2

	g.yTileMin = f.Camera.Y - halfH
	g.XMin = region.Truncate(f.Camera.X - halfW)
	g.XMax = region.Truncate(f.Camera.X+halfW) + region.Size
	g.YMin = region.Truncate(g.yTileMin)
	g.YMax = region.Truncate(f.Camera.Y+halfH) + region.Size
	g.RegionPixelSize = int(math.Ceil(region.Size * f.PixelsPerUnit))
	return g, nil
}

// Columns returns the number of region columns.
func (g Grid) Columns() int { return (g.XMax - g.XMin) / region.Size }

// Rows returns the number of region rows.
func (g Grid) Rows() int { return (g.YMax - g.YMin) / region.Size }

// Len returns the number of cells Cells will produce.
func (g Grid) Len() int { return g.Columns() * g.Rows() }

// Cells enumerates every cell, x outer and y inner, both ascending.
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Len())
	for x := g.XMin; x < g.XMax; x += region.Size {
		for y := g.YMin; y < g.YMax; y += region.Size {
			cells = append(cells, Cell{X: x, Y: y, ID: region.IDOf(x, y), Rect: g.CellRect(x, y)})
		}
	}
	return cells
}

// CellRect maps the region at world origin (x, y) to screen pixels.
func (g Grid) CellRect(x, y int) image.Rectangle {
	f := g.Frame
	xTileOffset := x + g.WidthUnits/2 - f.Camera.X
	yTileOffset := y - g.yTileMin

	// int() truncates toward zero; the layout depends on that exact rounding.
	xPos := int(float64(xTileOffset)*f.PixelsPerUnit) + f.Screen.Min.X
	yPos := f.Screen.Dy() - int(float64(yTileOffset)*f.PixelsPerUnit) + f.Screen.Min.Y
	yPos -= g.RegionPixelSize

	return image.Rect(xPos, yPos, xPos+g.RegionPixelSize, yPos+g.RegionPixelSize)
}

// RegionAt returns the region whose rectangle contains p. Where rectangles
// overlap the last enumerated cell wins, matching the compositor.
func (g Grid) RegionAt(p image.Point) (region.ID, bool) {
	var (
		id    region.ID
		found bool
	)
	for x := g.XMin; x < g.XMax; x += region.Size {
		for y := g.YMin; y < g.YMax; y += region.Size {
			if p.In(g.CellRect(x, y)) {
				id, found = region.IDOf(x, y), true
			}
		}
	}
	return id, found
}

// WorldToScreen maps a world point to fractional screen pixels with the
// same transform CellRect uses, before any rounding. A region origin lands
// on the bottom-left corner of its cell.
func (g Grid) WorldToScreen(wx, wy float64) (sx, sy float64) {
	f := g.Frame
	sx = (wx+float64(g.WidthUnits/2-f.Camera.X))*f.PixelsPerUnit + float64(f.Screen.Min.X)
	sy = float64(f.Screen.Min.Y+f.Screen.Dy()) - (wy-float64(g.yTileMin))*f.PixelsPerUnit
	return sx, sy
}

// ScreenToWorld inverts WorldToScreen.
func (g Grid) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	f := g.Frame
	wx = (sx-float64(f.Screen.Min.X))/f.PixelsPerUnit - float64(g.WidthUnits/2-f.Camera.X)
	wy = (float64(f.Screen.Min.Y+f.Screen.Dy())-sy)/f.PixelsPerUnit + float64(g.yTileMin)
	return wx, wy
}
