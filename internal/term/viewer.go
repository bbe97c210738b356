package term

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Region-Locker/internal/config"
	"github.com/Garsondee/Region-Locker/internal/overlay"
	"github.com/Garsondee/Region-Locker/internal/region"
)

const (
	frameInterval = 33 * time.Millisecond
	panCells      = 4 // cells moved per pan key press
	zoomStep      = 1.25
	zoomMin       = 1.0 / 64
	zoomMax       = 4.0
)

// noCursor lies outside every region cell until the mouse first moves.
var noCursor = image.Pt(math.MinInt32, math.MinInt32)

// Viewer is an interactive terminal region map. It is the overlay's
// viewport, cursor and player collaborator.
type Viewer struct {
	screen  tcell.Screen
	surface *Surface
	overlay *overlay.Renderer
	store   *region.Store
	logger  *slog.Logger

	camX, camY int
	zoom       float64 // cells per world unit
	playerX    int
	playerY    int
	cursor     image.Point
	buttons    tcell.ButtonMask
	showMap    bool
	status     string

	// Copy puts text on the clipboard. Nil disables the copy key.
	Copy func(string) error
}

// NewViewer builds a viewer on an initialised screen.
func NewViewer(screen tcell.Screen, cfg config.Config, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Viewer{
		screen:  screen,
		surface: NewSurface(screen),
		store:   cfg.Store(),
		logger:  logger,
		camX:    cfg.Viewer.CameraX,
		camY:    cfg.Viewer.CameraY,
		zoom:    clampZoom(cfg.Viewer.Zoom),
		playerX: cfg.Viewer.PlayerX,
		playerY: cfg.Viewer.PlayerY,
		cursor:  noCursor,
		showMap: true,
	}
	v.overlay = &overlay.Renderer{
		Viewport:   v,
		Cursor:     v,
		Player:     v,
		Classifier: v.store,
		Options:    cfg.Options(),
		Logger:     logger,
	}
	return v
}

// ViewportFrame implements overlay.ViewportProvider. The bottom row is
// kept for the status bar.
func (v *Viewer) ViewportFrame() (overlay.Frame, bool) {
	if !v.showMap {
		return overlay.Frame{}, false
	}
	w, h := v.screen.Size()
	return overlay.Frame{
		Screen:        image.Rect(0, 0, w, h-1),
		PixelsPerUnit: v.zoom,
		Camera:        image.Pt(v.camX, v.camY),
	}, true
}

// CursorScreenPosition implements overlay.CursorProvider.
func (v *Viewer) CursorScreenPosition() image.Point { return v.cursor }

// PlayerLocation implements overlay.PlayerLocator.
func (v *Viewer) PlayerLocation() image.Point { return image.Pt(v.playerX, v.playerY) }

// Overlay exposes the renderer, mainly for its hover state.
func (v *Viewer) Overlay() *overlay.Renderer { return v.overlay }

// Draw renders one frame into the screen's back buffer.
func (v *Viewer) Draw() {
	v.screen.Clear()
	v.surface.Begin()
	if f, ok := v.ViewportFrame(); ok {
		v.drawPlayer(f)
	}
	v.overlay.Render(v.surface)
	v.drawStatus()
}

func (v *Viewer) drawPlayer(f overlay.Frame) {
	grid, err := overlay.NewGrid(f)
	if err != nil {
		return
	}
	sx, sy := grid.WorldToScreen(float64(v.playerX)+0.5, float64(v.playerY)+0.5)
	p := image.Pt(int(sx), int(sy))
	if p.In(f.Screen) {
		v.screen.SetContent(p.X, p.Y, '@', nil, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	}
}

func (v *Viewer) drawStatus() {
	w, h := v.screen.Size()
	if h < 1 {
		return
	}
	hover := v.overlay.HoveredRegion()
	line := fmt.Sprintf(" cam %d,%d  zoom %.3f  hover %s  %s", v.camX, v.camY, v.zoom, hover, v.status)
	st := tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
	runes := []rune(line)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, h-1, r, nil, st)
	}
}

// HandleEvent applies one input event. It reports false when the viewer
// should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.cursor = image.Pt(x, y)
		pressed := ev.Buttons() &^ v.buttons
		v.buttons = ev.Buttons()
		if pressed&tcell.Button1 != 0 {
			v.cycleHovered()
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	pan := int(panCells / v.zoom)
	if pan < 1 {
		pan = 1
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.camY += pan
	case tcell.KeyDown:
		v.camY -= pan
	case tcell.KeyLeft:
		v.camX -= pan
	case tcell.KeyRight:
		v.camX += pan
	case tcell.KeyRune:
		return v.handleRune(ev.Rune(), pan)
	}
	return true
}

func (v *Viewer) handleRune(r rune, pan int) bool {
	opts := &v.overlay.Options
	switch r {
	case 'q':
		return false
	case 'w':
		v.camY += pan
	case 's':
		v.camY -= pan
	case 'a':
		v.camX -= pan
	case 'd':
		v.camX += pan
	case '+', '=':
		v.zoom = clampZoom(v.zoom * zoomStep)
	case '-':
		v.zoom = clampZoom(v.zoom / zoomStep)
	case 'i':
		v.playerY++
	case 'k':
		v.playerY--
	case 'j':
		v.playerX--
	case 'l':
		v.playerX++
	case 'f':
		v.camX, v.camY = v.playerX, v.playerY
	case 'o':
		opts.Enabled = !opts.Enabled
		v.note("overlay %s", onOff(opts.Enabled))
		v.dropHoverIfHidden()
	case 'v':
		opts.Invert = !opts.Invert
		v.note("invert %s", onOff(opts.Invert))
	case 'g':
		opts.DrawGrid = !opts.DrawGrid
		v.note("grid %s", onOff(opts.DrawGrid))
	case 't':
		opts.DrawRegionID = !opts.DrawRegionID
		v.note("region ids %s", onOff(opts.DrawRegionID))
	case 'm':
		v.showMap = !v.showMap
		v.note("map %s", onOff(v.showMap))
		v.dropHoverIfHidden()
	case 'c':
		v.copyHovered()
	case ' ':
		v.cycleHovered()
	}
	return true
}

func (v *Viewer) note(format string, args ...any) {
	v.status = fmt.Sprintf(format, args...)
	v.logger.Debug(v.status)
}

// overlayShown reports whether the overlay is drawn this frame.
func (v *Viewer) overlayShown() bool {
	return v.showMap && v.overlay.Options.Enabled
}

// dropHoverIfHidden clears the hover once the overlay leaves the screen;
// skipped frames never clear it themselves.
func (v *Viewer) dropHoverIfHidden() {
	if !v.overlayShown() {
		v.overlay.SetHoveredRegion(overlay.NoHover)
	}
}

// activeHover is the hovered region, or NoHover while the overlay is hidden.
func (v *Viewer) activeHover() overlay.Hover {
	if !v.overlayShown() {
		return overlay.NoHover
	}
	return v.overlay.HoveredRegion()
}

func (v *Viewer) copyHovered() {
	h := v.activeHover()
	if !h.OK || v.Copy == nil {
		return
	}
	if err := v.Copy(h.ID.String()); err != nil {
		v.logger.Warn("clipboard copy failed", "region", h.ID, "err", err)
		v.note("clipboard unavailable")
		return
	}
	v.note("copied region %s", h.ID)
}

// cycleHovered steps the hovered region through
// unclassified -> locked -> unlockable -> blacklisted -> unclassified.
func (v *Viewer) cycleHovered() {
	h := v.activeHover()
	if !h.OK {
		return
	}
	next := (v.store.Classify(h.ID) + 1) % (region.Blacklisted + 1)
	v.store.Set(h.ID, next)
	v.note("region %s -> %s", h.ID, next)
}

// Run drives the event and frame loop until ctx ends or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events, _ := pumpEvents(v.screen, done)

	v.Draw()
	v.screen.Show()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Draw()
			v.screen.Show()
		}
	}
}

// pumpEvents forwards screen events until the screen is finalised or done
// closes. stopped closes when the pump goroutine exits.
func pumpEvents(screen tcell.Screen, done <-chan struct{}) (<-chan tcell.Event, <-chan struct{}) {
	events := make(chan tcell.Event, 64)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer close(events)
		for {
			// nil once the screen is finalised
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events, stopped
}

func clampZoom(z float64) float64 {
	if z < zoomMin || math.IsNaN(z) {
		return zoomMin
	}
	if z > zoomMax {
		return zoomMax
	}
	return z
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
