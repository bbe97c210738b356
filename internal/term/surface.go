// Package term renders the region overlay in a terminal, one cell per pixel.
package term

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Backdrop is the colour assumed under cells that have no background set.
var Backdrop = color.NRGBA{R: 16, G: 18, B: 16, A: 255}

// Box-drawing runes for region borders.
const (
	runeHLine   = '─'
	runeVLine   = '│'
	runeCornerA = '┌'
	runeCornerB = '┐'
	runeCornerC = '└'
	runeCornerD = '┘'
)

// Surface paints overlay commands onto a tcell screen. Translucent colours
// are blended onto whatever background a cell already has.
type Surface struct {
	screen tcell.Screen
	clip   image.Rectangle
}

// NewSurface wraps screen.
func NewSurface(screen tcell.Screen) *Surface {
	s := &Surface{screen: screen}
	s.Begin()
	return s
}

// Begin resets the clip to the whole screen. Call once per frame.
func (s *Surface) Begin() {
	w, h := s.screen.Size()
	s.clip = image.Rect(0, 0, w, h)
}

func (s *Surface) bounds() image.Rectangle {
	w, h := s.screen.Size()
	return image.Rect(0, 0, w, h)
}

// SetClip restricts later drawing to r, within the screen.
func (s *Surface) SetClip(r image.Rectangle) {
	s.clip = r.Intersect(s.bounds())
}

// MeasureText reports one cell per rune and one row of height.
func (s *Surface) MeasureText(str string) (int, int) {
	return len([]rune(str)), 1
}

func (s *Surface) FillRect(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(s.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			mainc, comb, st, _ := s.screen.GetContent(x, y)
			_, bg, _ := st.Decompose()
			st = st.Background(blend(bg, c))
			if mainc == 0 {
				mainc = ' '
			}
			s.screen.SetContent(x, y, mainc, comb, st)
		}
	}
}

// DrawRect outlines r with box-drawing runes. Like the pixel renderers the
// outline covers r.Max too.
func (s *Surface) DrawRect(r image.Rectangle, c color.NRGBA) {
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	for x := x0 + 1; x < x1; x++ {
		s.stroke(x, y0, runeHLine, c)
		s.stroke(x, y1, runeHLine, c)
	}
	for y := y0 + 1; y < y1; y++ {
		s.stroke(x0, y, runeVLine, c)
		s.stroke(x1, y, runeVLine, c)
	}
	s.stroke(x0, y0, runeCornerA, c)
	s.stroke(x1, y0, runeCornerB, c)
	s.stroke(x0, y1, runeCornerC, c)
	s.stroke(x1, y1, runeCornerD, c)
}

func (s *Surface) stroke(x, y int, r rune, c color.NRGBA) {
	if !image.Pt(x, y).In(s.clip) {
		return
	}
	_, _, st, _ := s.screen.GetContent(x, y)
	_, bg, _ := st.Decompose()
	s.screen.SetContent(x, y, r, nil, st.Foreground(blend(bg, c)))
}

// DrawString writes str on the row above baseline y, so a one-row string
// sits where a pixel font with the same baseline would.
func (s *Surface) DrawString(str string, x, y int, c color.NRGBA) {
	row := y - 1
	for i, r := range []rune(str) {
		p := image.Pt(x+i, row)
		if !p.In(s.clip) {
			continue
		}
		_, _, st, _ := s.screen.GetContent(p.X, p.Y)
		_, bg, _ := st.Decompose()
		s.screen.SetContent(p.X, p.Y, r, nil, st.Foreground(blend(bg, c)))
	}
}

// blend composites c over the cell background under using c's alpha.
func blend(under tcell.Color, c color.NRGBA) tcell.Color {
	base := Backdrop
	if under != tcell.ColorDefault && under.Valid() {
		r, g, b := under.RGB()
		base = color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
	}
	bc := colorful.Color{R: float64(base.R) / 255, G: float64(base.G) / 255, B: float64(base.B) / 255}
	fc := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := bc.BlendRgb(fc, float64(c.A)/255).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
