package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Region-Locker/internal/overlay"
)

// Hover panel: rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 150
	inspBufH  = 92
	inspPad   = 4
	inspLineH = 14
)

// hoverLines describes the hovered region. Empty when nothing is hovered.
func (g *Game) hoverLines() []string {
	h := g.activeHover()
	if !h.OK {
		return nil
	}
	ox, oy := h.ID.Origin()
	lines := []string{
		fmt.Sprintf("region %s", h.ID),
		fmt.Sprintf("origin %d,%d", ox, oy),
		fmt.Sprintf("class  %s", g.store.Classify(h.ID)),
	}
	if ground, ok := g.groundUnderCursor(); ok {
		lines = append(lines, fmt.Sprintf("ground %s", ground))
	}
	if overlay.PlayerRegionID(g) == h.ID {
		lines = append(lines, "player is here")
	}
	return lines
}

// groundUnderCursor samples the terrain at the mouse, when it is over the map.
func (g *Game) groundUnderCursor() (Ground, bool) {
	f, ok := g.ViewportFrame()
	if !ok {
		return 0, false
	}
	c := g.CursorScreenPosition()
	if !c.In(f.Screen) {
		return 0, false
	}
	grid, err := overlay.NewGrid(f)
	if err != nil {
		return 0, false
	}
	wx, wy := grid.ScreenToWorld(float64(c.X), float64(c.Y))
	return g.terrain.GroundAt(wx, wy), true
}

// drawHoverPanel renders the hover panel into an offscreen buffer at 1x,
// then blits it bottom-right of the map at inspScale.
func (g *Game) drawHoverPanel(screen *ebiten.Image) {
	lines := g.hoverLines()
	if len(lines) == 0 {
		return
	}
	if g.inspBuf == nil {
		g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	}
	g.inspBuf.Clear()

	buf := g.inspBuf
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	// Swatch in the region's overlay colour, if it has one.
	if c, ok := g.classSwatch(); ok {
		vector.FillRect(buf, bw-14, inspPad, 10, 10, c, false)
		vector.StrokeRect(buf, bw-14, inspPad, 10, 10, 1.0, panelBorder, false)
	}

	for i, l := range lines {
		ebitenutil.DebugPrintAt(buf, l, inspPad, inspPad+i*inspLineH)
	}

	r := g.mapRect()
	px := r.Max.X - inspBufW*inspScale - 8
	py := r.Max.Y - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}

// classSwatch returns the fill colour the overlay uses for the hovered region.
func (g *Game) classSwatch() (color.NRGBA, bool) {
	h := g.activeHover()
	if !h.OK {
		return color.NRGBA{}, false
	}
	return g.overlay.Options.FillColor(g.store.Classify(h.ID))
}
