package overlay

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/Garsondee/Region-Locker/internal/region"
)

func testFrames() []Frame {
	var frames []Frame
	screens := []image.Rectangle{
		image.Rect(0, 0, 256, 256),
		image.Rect(10, 20, 523, 311),
		image.Rect(-40, 7, 97, 180),
	}
	cams := []image.Point{{0, 0}, {3222, 3218}, {-70, -129}, {63, 64}, {-1, 1}}
	zooms := []float64{0.37, 1, 2.5, 4, 7.3}
	for _, s := range screens {
		for _, c := range cams {
			for _, z := range zooms {
				frames = append(frames, Frame{Screen: s, PixelsPerUnit: z, Camera: c})
			}
		}
	}
	return frames
}

func TestNewGrid_ScenarioFourCells(t *testing.T) {
	g, err := NewGrid(Frame{Screen: image.Rect(0, 0, 256, 256), PixelsPerUnit: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[[2]int]bool{{-64, -64}: true, {-64, 0}: true, {0, -64}: true, {0, 0}: true}
	cells := g.Cells()
	for _, c := range cells {
		delete(want, [2]int{c.X, c.Y})
	}
	if len(want) != 0 {
		t.Fatalf("missing cells %v from %d enumerated", want, len(cells))
	}
	if g.RegionPixelSize != 256 {
		t.Fatalf("RegionPixelSize=%d, want 256", g.RegionPixelSize)
	}
}

func TestGrid_CellsAreAlignedAndOrdered(t *testing.T) {
	for _, f := range testFrames() {
		g, err := NewGrid(f)
		if err != nil {
			t.Fatalf("frame %+v: %v", f, err)
		}
		cells := g.Cells()
		if len(cells) != g.Len() {
			t.Fatalf("Len=%d but Cells produced %d", g.Len(), len(cells))
		}
		for i, c := range cells {
			if c.X%region.Size != 0 || c.Y%region.Size != 0 {
				t.Fatalf("cell origin (%d,%d) not region aligned", c.X, c.Y)
			}
			if i > 0 {
				p := cells[i-1]
				if c.X < p.X || (c.X == p.X && c.Y <= p.Y) {
					t.Fatalf("cells out of order: (%d,%d) after (%d,%d)", c.X, c.Y, p.X, p.Y)
				}
			}
		}
	}
}

func TestGrid_IDsUniqueWithinPass(t *testing.T) {
	for _, f := range testFrames() {
		g, _ := NewGrid(f)
		seen := map[region.ID]bool{}
		for _, c := range g.Cells() {
			if seen[c.ID] {
				t.Fatalf("frame %+v: duplicate id %d", f, c.ID)
			}
			seen[c.ID] = true
		}
	}
}

// The map's left edge shows world x = camera - WidthUnits/2 and its bottom
// edge world y = camera - HeightUnits/2; the grid must reach past the far edges.
func TestGrid_CoversVisibleWorld(t *testing.T) {
	for _, f := range testFrames() {
		g, _ := NewGrid(f)
		left := float64(f.Camera.X - g.WidthUnits/2)
		bottom := float64(f.Camera.Y - g.HeightUnits/2)
		right := left + float64(f.Screen.Dx())/f.PixelsPerUnit
		top := bottom + float64(f.Screen.Dy())/f.PixelsPerUnit
		if float64(g.XMin) > left || float64(g.XMax) < right {
			t.Fatalf("frame %+v: x range [%d,%d) misses visible [%.1f,%.1f]", f, g.XMin, g.XMax, left, right)
		}
		if float64(g.YMin) > bottom || float64(g.YMax) < top {
			t.Fatalf("frame %+v: y range [%d,%d) misses visible [%.1f,%.1f]", f, g.YMin, g.YMax, bottom, top)
		}
	}
}

// Every screen pixel of the map must fall inside at least one cell.
func TestGrid_NoScreenGaps(t *testing.T) {
	for _, f := range testFrames() {
		g, _ := NewGrid(f)
		cells := g.Cells()
		for y := f.Screen.Min.Y; y < f.Screen.Max.Y; y += 3 {
			for x := f.Screen.Min.X; x < f.Screen.Max.X; x += 3 {
				p := image.Pt(x, y)
				covered := false
				for _, c := range cells {
					if p.In(c.Rect) {
						covered = true
						break
					}
				}
				if !covered {
					t.Fatalf("frame %+v: pixel %v not covered", f, p)
				}
			}
		}
	}
}

func TestGrid_RowsFlipVertically(t *testing.T) {
	g, _ := NewGrid(Frame{Screen: image.Rect(0, 0, 256, 256), PixelsPerUnit: 4})
	low := g.CellRect(0, -64)
	high := g.CellRect(0, 0)
	if high.Min.Y >= low.Min.Y {
		t.Fatalf("higher world row should sit higher on screen: y=0 at %v, y=-64 at %v", high, low)
	}
	if low != image.Rect(128, 128, 384, 384) {
		t.Fatalf("CellRect(0,-64)=%v", low)
	}
	if high != image.Rect(128, -128, 384, 128) {
		t.Fatalf("CellRect(0,0)=%v", high)
	}
}

func TestGrid_RegionAt(t *testing.T) {
	for _, f := range testFrames() {
		g, _ := NewGrid(f)
		for _, c := range g.Cells() {
			centre := image.Pt((c.Rect.Min.X+c.Rect.Max.X)/2, (c.Rect.Min.Y+c.Rect.Max.Y)/2)
			id, ok := g.RegionAt(centre)
			if !ok || id != c.ID {
				t.Fatalf("frame %+v: RegionAt(%v)=%d,%v want %d", f, centre, id, ok, c.ID)
			}
		}
		far := image.Pt(f.Screen.Min.X-100000, f.Screen.Min.Y-100000)
		if _, ok := g.RegionAt(far); ok {
			t.Fatalf("frame %+v: point %v far outside hit a region", f, far)
		}
	}
}

func TestFrame_Validate(t *testing.T) {
	ok := image.Rect(0, 0, 100, 100)
	cases := []struct {
		name string
		f    Frame
		want error
	}{
		{"zero zoom", Frame{Screen: ok}, ErrDegenerateZoom},
		{"negative zoom", Frame{Screen: ok, PixelsPerUnit: -1}, ErrDegenerateZoom},
		{"nan zoom", Frame{Screen: ok, PixelsPerUnit: math.NaN()}, ErrDegenerateZoom},
		{"inf zoom", Frame{Screen: ok, PixelsPerUnit: math.Inf(1)}, ErrDegenerateZoom},
		{"too far out", Frame{Screen: ok, PixelsPerUnit: 1e-6}, ErrDegenerateZoom},
		{"empty screen", Frame{Screen: image.Rect(5, 5, 5, 50), PixelsPerUnit: 1}, ErrViewportUnavailable},
		{"ok", Frame{Screen: ok, PixelsPerUnit: 1}, nil},
	}
	for _, tc := range cases {
		if err := tc.f.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: Validate()=%v, want %v", tc.name, err, tc.want)
		}
	}
}

type fixedViewport struct {
	f  Frame
	ok bool
}

func (v fixedViewport) ViewportFrame() (Frame, bool) { return v.f, v.ok }

func TestResolveFrame(t *testing.T) {
	if _, err := ResolveFrame(nil); !errors.Is(err, ErrViewportUnavailable) {
		t.Fatalf("nil provider: %v", err)
	}
	if _, err := ResolveFrame(fixedViewport{}); !errors.Is(err, ErrViewportUnavailable) {
		t.Fatalf("hidden map: %v", err)
	}
	want := Frame{Screen: image.Rect(0, 0, 10, 10), PixelsPerUnit: 2, Camera: image.Pt(5, 5)}
	got, err := ResolveFrame(fixedViewport{f: want, ok: true})
	if err != nil || got != want {
		t.Fatalf("ResolveFrame=%+v,%v", got, err)
	}
}

func TestGrid_WorldToScreenTracksCells(t *testing.T) {
	for _, f := range testFrames() {
		g, err := NewGrid(f)
		if err != nil {
			t.Fatalf("%+v: %v", f, err)
		}
		for _, c := range g.Cells() {
			sx, sy := g.WorldToScreen(float64(c.X), float64(c.Y))
			if math.Abs(sx-float64(c.Rect.Min.X)) > 1 || math.Abs(sy-float64(c.Rect.Max.Y)) > 1 {
				t.Fatalf("%+v: origin of %d maps to (%.2f,%.2f), cell %v", f, c.ID, sx, sy, c.Rect)
			}
			wx, wy := g.ScreenToWorld(sx, sy)
			if math.Abs(wx-float64(c.X)) > 1e-6 || math.Abs(wy-float64(c.Y)) > 1e-6 {
				t.Fatalf("%+v: round trip of (%d,%d) gave (%f,%f)", f, c.X, c.Y, wx, wy)
			}
		}
	}
}
