package overlay

import (
	"errors"
	"image"
	"math"

	"github.com/Garsondee/Region-Locker/internal/region"
)

// Errors that abort a render pass. None of them escape Renderer.Render.
var (
	// ErrViewportUnavailable means the map is not displayed or has no area.
	ErrViewportUnavailable = errors.New("overlay: viewport unavailable")
	// ErrDegenerateZoom means pixels-per-unit is not a positive finite number,
	// or is so small the visible grid would exceed MaxCells.
	ErrDegenerateZoom = errors.New("overlay: degenerate zoom")
	// ErrOverlayDisabled means the map overlay is switched off.
	ErrOverlayDisabled = errors.New("overlay: disabled")
)

// MaxCells caps the number of regions one pass may enumerate.
const MaxCells = 1 << 16

// Frame is one frame's view of the world map.
type Frame struct {
	Screen        image.Rectangle // map widget bounds in screen pixels
	PixelsPerUnit float64         // zoom: screen pixels per world unit
	Camera        image.Point     // world position at the centre of Screen
}

// ViewportProvider supplies the current map viewport. ok is false when the
// map is not shown.
type ViewportProvider interface {
	ViewportFrame() (f Frame, ok bool)
}

// CursorProvider supplies the mouse position in screen pixels.
type CursorProvider interface {
	CursorScreenPosition() image.Point
}

// PlayerLocator supplies the player's world location.
type PlayerLocator interface {
	PlayerLocation() image.Point
}

// ResolveFrame reads the viewport from p and validates it.
func ResolveFrame(p ViewportProvider) (Frame, error) {
	if p == nil {
		return Frame{}, ErrViewportUnavailable
	}
	f, ok := p.ViewportFrame()
	if !ok {
		return Frame{}, ErrViewportUnavailable
	}
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// Validate reports why f cannot be drawn, or nil.
func (f Frame) Validate() error {
	if f.Screen.Empty() {
		return ErrViewportUnavailable
	}
	ppu := f.PixelsPerUnit
	if ppu <= 0 || math.IsNaN(ppu) || math.IsInf(ppu, 0) {
		return ErrDegenerateZoom
	}
	// Bound the grid before any float->int conversion can overflow.
	cols := float64(f.Screen.Dx())/ppu/region.Size + 2
	rows := float64(f.Screen.Dy())/ppu/region.Size + 2
	if cols*rows > MaxCells {
		return ErrDegenerateZoom
	}
	return nil
}

// VisibleUnits returns the map extent in world units, rounded up.
func (f Frame) VisibleUnits() (w, h int) {
	w = int(math.Ceil(float64(f.Screen.Dx()) / f.PixelsPerUnit))
	h = int(math.Ceil(float64(f.Screen.Dy()) / f.PixelsPerUnit))
	return w, h
}
