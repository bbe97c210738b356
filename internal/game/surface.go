package game

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// labelFontSize is the region label size in pixels.
const labelFontSize = 12

// ebitenSurface paints overlay commands onto an ebiten image. Clipping is a
// sub-image of the frame's screen, which shares the screen's coordinates.
type ebitenSurface struct {
	screen *ebiten.Image
	dst    *ebiten.Image
	face   *text.GoTextFace
}

func newEbitenSurface() (*ebitenSurface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &ebitenSurface{face: &text.GoTextFace{Source: src, Size: labelFontSize}}, nil
}

// Begin points the surface at this frame's screen and drops any clip.
func (s *ebitenSurface) Begin(screen *ebiten.Image) {
	s.screen = screen
	s.dst = screen
}

func (s *ebitenSurface) SetClip(r image.Rectangle) {
	s.dst = s.screen.SubImage(r).(*ebiten.Image)
}

func (s *ebitenSurface) FillRect(r image.Rectangle, c color.NRGBA) {
	vector.FillRect(s.dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

// DrawRect outlines r one pixel wide, with the outline covering the right
// and bottom edges too.
func (s *ebitenSurface) DrawRect(r image.Rectangle, c color.NRGBA) {
	vector.StrokeRect(s.dst, float32(r.Min.X)+0.5, float32(r.Min.Y)+0.5, float32(r.Dx()), float32(r.Dy()), 1, c, false)
}

// DrawString draws str with its baseline at y.
func (s *ebitenSurface) DrawString(str string, x, y int, c color.NRGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y)-s.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.face, op)
}

func (s *ebitenSurface) MeasureText(str string) (int, int) {
	w, h := text.Measure(str, s.face, 0)
	return int(math.Ceil(w)), int(math.Ceil(h))
}
