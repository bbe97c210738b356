package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Region-Locker/internal/overlay"
)

const (
	minTerrainTile  = 2 // world units
	minTilePixels   = 8 // coarsen terrain sampling until tiles are at least this wide
	playerMarkerPx  = 4
	mapBackdropGray = 18
)

// terrainTileSize picks the sampling step, a power of two in world units,
// so a zoomed-out map stays cheap to paint.
func terrainTileSize(ppu float64) int {
	tile := minTerrainTile
	for float64(tile)*ppu < minTilePixels && tile < 1<<16 {
		tile *= 2
	}
	return tile
}

// drawWorld paints terrain and the player into the map rectangle. It shares
// the overlay grid's transform so terrain stays locked to region cells.
func (g *Game) drawWorld(screen *ebiten.Image) {
	f, ok := g.ViewportFrame()
	if !ok {
		return
	}
	grid, err := overlay.NewGrid(f)
	if err != nil {
		return
	}
	dst := screen.SubImage(f.Screen).(*ebiten.Image)
	dst.Fill(color.RGBA{R: mapBackdropGray, G: mapBackdropGray, B: mapBackdropGray, A: 255})

	tile := terrainTileSize(f.PixelsPerUnit)
	wx0, wy1 := grid.ScreenToWorld(float64(f.Screen.Min.X), float64(f.Screen.Min.Y))
	wx1, wy0 := grid.ScreenToWorld(float64(f.Screen.Max.X), float64(f.Screen.Max.Y))
	x0 := floorTo(wx0, tile)
	y0 := floorTo(wy0, tile)
	half := float64(tile) / 2

	for x := x0; float64(x) < wx1; x += tile {
		for y := y0; float64(y) < wy1; y += tile {
			ground := g.terrain.GroundAt(float64(x)+half, float64(y)+half)
			// World y grows upward, so the tile's top edge is y+tile.
			sx0, sy0 := grid.WorldToScreen(float64(x), float64(y+tile))
			sx1, sy1 := grid.WorldToScreen(float64(x+tile), float64(y))
			vector.FillRect(dst, float32(sx0), float32(sy0), float32(sx1-sx0), float32(sy1-sy0), ground.Color(), false)
		}
	}

	// Player marker at the centre of its tile.
	px, py := grid.WorldToScreen(float64(g.playerX)+0.5, float64(g.playerY)+0.5)
	vector.FillCircle(dst, float32(px), float32(py), playerMarkerPx, color.RGBA{R: 255, G: 240, B: 60, A: 255}, true)
	vector.StrokeCircle(dst, float32(px), float32(py), playerMarkerPx+1, 1, color.RGBA{A: 200}, true)
}

// floorTo rounds v down to a multiple of step.
func floorTo(v float64, step int) int {
	return int(math.Floor(v/float64(step))) * step
}
