package overlay

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Op is the kind of a draw command.
type Op int

const (
	OpClip   Op = iota // restrict later drawing to Rect
	OpFill             // fill Rect with Color
	OpStroke           // outline Rect with Color
	OpText             // draw Text with its baseline starting at At
)

func (o Op) String() string {
	switch o {
	case OpClip:
		return "clip"
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Command is one append-only drawing step.
type Command struct {
	Op    Op
	Rect  image.Rectangle
	Color color.NRGBA
	Text  string
	At    image.Point
}

func (c Command) String() string {
	switch c.Op {
	case OpText:
		return fmt.Sprintf("%-6s %q at %v rgba(%d,%d,%d,%d)", c.Op, c.Text, c.At, c.Color.R, c.Color.G, c.Color.B, c.Color.A)
	case OpClip:
		return fmt.Sprintf("%-6s %v", c.Op, c.Rect)
	default:
		return fmt.Sprintf("%-6s %v rgba(%d,%d,%d,%d)", c.Op, c.Rect, c.Color.R, c.Color.G, c.Color.B, c.Color.A)
	}
}

// TextMeter measures rendered text in pixels.
type TextMeter interface {
	MeasureText(s string) (w, h int)
}

// Surface is a stateful 2D canvas. It is only ever painted on, never read.
type Surface interface {
	TextMeter
	SetClip(r image.Rectangle)
	FillRect(r image.Rectangle, c color.NRGBA)
	DrawRect(r image.Rectangle, c color.NRGBA)
	DrawString(s string, x, y int, c color.NRGBA)
}

// Replay paints cmds onto s in order.
func Replay(cmds []Command, s Surface) {
	for _, c := range cmds {
		switch c.Op {
		case OpClip:
			s.SetClip(c.Rect)
		case OpFill:
			s.FillRect(c.Rect, c.Color)
		case OpStroke:
			s.DrawRect(c.Rect, c.Color)
		case OpText:
			s.DrawString(c.Text, c.At.X, c.At.Y, c.Color)
		}
	}
}

// BasicMeter measures text with the fixed 7x13 bitmap face. Hosts without
// real font metrics, and the headless report, use it.
type BasicMeter struct{}

// MeasureText implements TextMeter.
func (BasicMeter) MeasureText(s string) (w, h int) {
	face := basicfont.Face7x13
	return font.MeasureString(face, s).Ceil(), face.Metrics().Height.Ceil()
}
