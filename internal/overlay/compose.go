package overlay

import (
	"image"
	"image/color"

	"github.com/Garsondee/Region-Locker/internal/region"
)

// labelPadding is the pixel gap between text and the edge it is anchored to.
const labelPadding = 4

// Classifier looks up the lock state of a region.
type Classifier interface {
	Classify(id region.ID) region.Classification
}

// Options is the overlay's view of the configuration surface.
type Options struct {
	Enabled      bool // draw the map overlay at all
	Invert       bool // fill every region except locked ones
	DrawGrid     bool
	DrawRegionID bool // region labels plus the status lines

	MapColor         color.NRGBA
	UnlockableColor  color.NRGBA
	BlacklistedColor color.NRGBA
}

// DefaultOptions returns the overlay defaults.
func DefaultOptions() Options {
	return Options{
		Enabled:          true,
		DrawGrid:         true,
		DrawRegionID:     true,
		MapColor:         color.NRGBA{R: 0, G: 200, B: 83, A: 100},
		UnlockableColor:  color.NRGBA{R: 60, G: 200, B: 160, A: 100},
		BlacklistedColor: color.NRGBA{R: 0, G: 0, B: 0, A: 200},
	}
}

// Input is everything one composed frame depends on, sampled up front.
type Input struct {
	Frame      Frame
	Cursor     image.Point // screen pixels
	Player     image.Point // world units
	Classifier Classifier  // nil classifies every region as Unclassified
	Options    Options
	Meter      TextMeter // nil uses BasicMeter
}

// Result is a composed frame.
type Result struct {
	Grid     Grid
	Commands []Command
	Hovered  Hover
}

// Compose turns in into a draw-command list and the hovered region. It has no
// side effects, so identical inputs give identical results.
func Compose(in Input) (Result, error) {
	if !in.Options.Enabled {
		return Result{}, ErrOverlayDisabled
	}
	g, err := NewGrid(in.Frame)
	if err != nil {
		return Result{}, err
	}
	meter := in.Meter
	if meter == nil {
		meter = BasicMeter{}
	}

	c := compositor{in: in, meter: meter, hovered: NoHover}
	c.cmds = make([]Command, 0, g.Len()*3+3)
	c.emit(Command{Op: OpClip, Rect: in.Frame.Screen})
	for _, cell := range g.Cells() {
		c.paintCell(cell)
	}
	c.statusLines()

	return Result{Grid: g, Commands: c.cmds, Hovered: c.hovered}, nil
}

type compositor struct {
	in      Input
	meter   TextMeter
	cmds    []Command
	hovered Hover
}

func (c *compositor) emit(cmd Command) {
	c.cmds = append(c.cmds, cmd)
}

func (c *compositor) classify(id region.ID) region.Classification {
	if c.in.Classifier == nil {
		return region.Unclassified
	}
	return c.in.Classifier.Classify(id)
}

func (c *compositor) paintCell(cell Cell) {
	opts := c.in.Options
	underCursor := c.in.Cursor.In(cell.Rect)

	if col, ok := opts.FillColor(c.classify(cell.ID)); ok {
		if underCursor {
			col = Brighter(col)
		}
		c.emit(Command{Op: OpFill, Rect: cell.Rect, Color: col})
	}

	// Rectangles may overlap by a pixel; the later cell takes the hover.
	if underCursor {
		c.hovered = Hovered(cell.ID)
	}

	if opts.DrawGrid {
		c.emit(Command{Op: OpStroke, Rect: cell.Rect, Color: BorderColor})
	}
	if opts.DrawRegionID {
		label := cell.ID.String()
		_, h := c.meter.MeasureText(label)
		at := image.Pt(cell.Rect.Min.X+labelPadding, cell.Rect.Min.Y+h+labelPadding)
		c.emit(Command{Op: OpText, Text: label, At: at, Color: LabelColor})
	}
}

// FillColor picks the fill for a region, or ok=false for no fill.
// Blacklisted and unlockable regions are always filled, whatever Invert says.
func (opts Options) FillColor(cl region.Classification) (col color.NRGBA, ok bool) {
	contains := (cl == region.Locked) != opts.Invert
	switch {
	case cl == region.Blacklisted:
		return opts.BlacklistedColor, true
	case cl == region.Unlockable:
		return opts.UnlockableColor, true
	case contains:
		return opts.MapColor, true
	}
	return color.NRGBA{}, false
}

// statusLines anchors the hovered and player region text to the bottom-left
// of the map.
func (c *compositor) statusLines() {
	if !c.in.Options.DrawRegionID {
		return
	}
	screen := c.in.Frame.Screen
	playerID := region.IDOf(c.in.Player.X, c.in.Player.Y).String()
	_, h := c.meter.MeasureText(playerID)

	x := screen.Min.X + labelPadding
	bottom := screen.Max.Y - labelPadding
	if c.hovered.OK {
		c.emit(Command{Op: OpText, Text: "Hovered chunk: " + c.hovered.ID.String(), At: image.Pt(x, bottom-h), Color: LabelColor})
	}
	c.emit(Command{Op: OpText, Text: "Player chunk: " + playerID, At: image.Pt(x, bottom), Color: LabelColor})
}

// PlayerRegionID returns the region the player stands in.
func PlayerRegionID(p PlayerLocator) region.ID {
	loc := p.PlayerLocation()
	return region.IDOf(loc.X, loc.Y)
}
