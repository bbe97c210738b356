package overlay

import (
	"errors"
	"image"
	"log/slog"
)

// Renderer draws the region overlay once per frame for a host. Its fields
// are the host's collaborators; Options may be changed between frames.
type Renderer struct {
	Viewport   ViewportProvider
	Cursor     CursorProvider
	Classifier Classifier
	Player     PlayerLocator
	Options    Options
	Logger     *slog.Logger // nil uses slog.Default()

	hover    HoverCell
	lastSkip error
	last     Result
}

// Render composes the current frame and paints it on s. A frame that cannot
// be drawn is skipped without painting and without touching the hover state;
// the next frame retries.
func (r *Renderer) Render(s Surface) {
	res, err := r.compose(s)
	if err != nil {
		r.skipped(err)
		return
	}
	if r.lastSkip != nil {
		r.logger().Debug("region overlay resumed", "after", r.lastSkip)
		r.lastSkip = nil
	}
	r.hover.Store(res.Hovered)
	r.last = res
	Replay(res.Commands, s)
}

func (r *Renderer) compose(meter TextMeter) (Result, error) {
	if !r.Options.Enabled {
		return Result{}, ErrOverlayDisabled
	}
	f, err := ResolveFrame(r.Viewport)
	if err != nil {
		return Result{}, err
	}
	in := Input{
		Frame:      f,
		Classifier: r.Classifier,
		Options:    r.Options,
		Meter:      meter,
	}
	if r.Cursor != nil {
		in.Cursor = r.Cursor.CursorScreenPosition()
	} else {
		in.Cursor = image.Pt(-1<<30, -1<<30)
	}
	if r.Player != nil {
		in.Player = r.Player.PlayerLocation()
	}
	return Compose(in)
}

// skipped logs a skip once per distinct reason so a hidden map does not
// flood the log at frame rate.
func (r *Renderer) skipped(err error) {
	if r.lastSkip != nil && errors.Is(err, r.lastSkip) {
		return
	}
	r.lastSkip = err
	r.logger().Debug("region overlay skipped", "reason", err)
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// HoveredRegion returns the region under the cursor as of the last drawn frame.
func (r *Renderer) HoveredRegion() Hover { return r.hover.Load() }

// SetHoveredRegion overwrites the hover state, e.g. to clear it after a click.
func (r *Renderer) SetHoveredRegion(h Hover) { r.hover.Store(h) }

// LastFrame returns the most recently drawn frame. Unlike the hover state
// it is not synchronised: call it only from the goroutine that calls Render.
func (r *Renderer) LastFrame() Result { return r.last }
