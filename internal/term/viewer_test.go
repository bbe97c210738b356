package term

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Region-Locker/internal/config"
	"github.com/Garsondee/Region-Locker/internal/overlay"
	"github.com/Garsondee/Region-Locker/internal/region"
)

// newTestViewer centres an 80x25 terminal on Lumbridge at four world
// units per cell, so the view spans 320x96 units.
func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := newSimScreen(t, 80, 25)
	cfg := config.Default()
	cfg.Viewer.Zoom = 0.25
	return NewViewer(screen, cfg, nil), screen
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func moveMouse(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func statusLine(screen tcell.SimulationScreen) string {
	w, h := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, h-1)
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewer_FrameLeavesStatusRow(t *testing.T) {
	v, _ := newTestViewer(t)
	f, ok := v.ViewportFrame()
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 80, 24), f.Screen)
	assert.Equal(t, image.Pt(3222, 3218), f.Camera)
	assert.Equal(t, 0.25, f.PixelsPerUnit)
}

func TestViewer_HoverFollowsMouse(t *testing.T) {
	v, screen := newTestViewer(t)
	v.Draw()
	assert.False(t, v.Overlay().HoveredRegion().OK, "no hover before the mouse moves")

	assert.True(t, v.HandleEvent(moveMouse(40, 12)))
	v.Draw()
	got := v.Overlay().HoveredRegion()
	require.True(t, got.OK)
	assert.Equal(t, region.ID(12850), got.ID)

	f, _ := v.ViewportFrame()
	grid, err := overlay.NewGrid(f)
	require.NoError(t, err)
	want, ok := grid.RegionAt(image.Pt(40, 12))
	require.True(t, ok)
	assert.Equal(t, want, got.ID)

	assert.Contains(t, statusLine(screen), "hover 12850")
}

func TestViewer_ToggleKeys(t *testing.T) {
	v, _ := newTestViewer(t)
	opts := &v.Overlay().Options

	v.HandleEvent(runeKey('o'))
	assert.False(t, opts.Enabled)
	v.HandleEvent(runeKey('v'))
	assert.True(t, opts.Invert)
	v.HandleEvent(runeKey('g'))
	assert.False(t, opts.DrawGrid)
	v.HandleEvent(runeKey('t'))
	assert.False(t, opts.DrawRegionID)
	assert.Equal(t, "region ids off", v.status)

	v.HandleEvent(runeKey('m'))
	_, ok := v.ViewportFrame()
	assert.False(t, ok, "hidden map has no viewport")
}

func TestViewer_HiddenMapDropsHover(t *testing.T) {
	v, screen := newTestViewer(t)
	v.HandleEvent(moveMouse(40, 12))
	v.Draw()
	require.True(t, v.Overlay().HoveredRegion().OK)

	v.HandleEvent(runeKey('m'))
	v.HandleEvent(moveMouse(0, 24))
	v.Draw()
	assert.False(t, v.Overlay().HoveredRegion().OK)
	assert.Contains(t, statusLine(screen), "hover none")

	v.HandleEvent(runeKey(' '))
	v.HandleEvent(tcell.NewEventMouse(0, 24, tcell.Button1, tcell.ModNone))
	assert.Equal(t, region.Locked, v.store.Classify(12850))
}

func TestViewer_OverlayOffIgnoresStaleHover(t *testing.T) {
	v, _ := newTestViewer(t)
	var copied []string
	v.Copy = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	v.HandleEvent(moveMouse(40, 12))
	v.Draw()
	require.True(t, v.Overlay().HoveredRegion().OK)

	v.HandleEvent(runeKey('o'))
	// A stale value written back must still be ignored while the overlay is off.
	v.Overlay().SetHoveredRegion(overlay.Hovered(12850))
	v.HandleEvent(runeKey(' '))
	v.HandleEvent(runeKey('c'))
	assert.Equal(t, region.Locked, v.store.Classify(12850))
	assert.Empty(t, copied)

	v.HandleEvent(runeKey('o'))
	v.Draw()
	v.HandleEvent(runeKey(' '))
	assert.Equal(t, region.Unlockable, v.store.Classify(12850))
}

func TestViewer_PanAndZoom(t *testing.T) {
	v, _ := newTestViewer(t)
	v.HandleEvent(runeKey('d'))
	assert.Equal(t, 3222+16, v.camX)
	v.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.Equal(t, 3218+16, v.camY)

	for i := 0; i < 40; i++ {
		v.HandleEvent(runeKey('+'))
	}
	assert.Equal(t, zoomMax, v.zoom)
	for i := 0; i < 80; i++ {
		v.HandleEvent(runeKey('-'))
	}
	assert.Equal(t, zoomMin, v.zoom)

	v.HandleEvent(runeKey('l'))
	v.HandleEvent(runeKey('f'))
	assert.Equal(t, image.Pt(3223, 3218), image.Pt(v.camX, v.camY))
}

func TestViewer_QuitKeys(t *testing.T) {
	v, _ := newTestViewer(t)
	assert.False(t, v.HandleEvent(runeKey('q')))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
	assert.True(t, v.HandleEvent(runeKey('x')))
}

func TestViewer_ClickCyclesClassification(t *testing.T) {
	v, _ := newTestViewer(t)
	v.HandleEvent(moveMouse(40, 12))
	v.Draw()
	require.Equal(t, region.Locked, v.store.Classify(12850))

	v.HandleEvent(tcell.NewEventMouse(40, 12, tcell.Button1, tcell.ModNone))
	assert.Equal(t, region.Unlockable, v.store.Classify(12850))

	// Dragging with the button held is not a second click.
	v.HandleEvent(tcell.NewEventMouse(41, 12, tcell.Button1, tcell.ModNone))
	assert.Equal(t, region.Unlockable, v.store.Classify(12850))

	v.HandleEvent(runeKey(' '))
	assert.Equal(t, region.Blacklisted, v.store.Classify(12850))
}

func TestViewer_CopyHovered(t *testing.T) {
	v, _ := newTestViewer(t)
	var copied []string
	v.Copy = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	v.HandleEvent(runeKey('c'))
	assert.Empty(t, copied, "nothing hovered yet")

	v.HandleEvent(moveMouse(40, 12))
	v.Draw()
	v.HandleEvent(runeKey('c'))
	assert.Equal(t, []string{"12850"}, copied)

	v.Copy = func(string) error { return errors.New("no clipboard") }
	v.HandleEvent(runeKey('c'))
	assert.Equal(t, "clipboard unavailable", v.status)
}

func TestViewer_DrawPlacesPlayer(t *testing.T) {
	v, screen := newTestViewer(t)
	v.Draw()
	// Player at the camera centre lands mid-screen.
	r, _, _, _ := screen.GetContent(40, 11)
	assert.Equal(t, '@', r)
}

func TestViewer_RunStopsOnContext(t *testing.T) {
	v, _ := newTestViewer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, v.Run(ctx), context.Canceled)
}

func TestPumpEvents_StopsWhenConsumerLeaves(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	done := make(chan struct{})
	events, stopped := pumpEvents(screen, done)

	require.Eventually(t, func() bool {
		_ = screen.PostEvent(runeKey('x'))
		return len(events) == cap(events)
	}, 2*time.Second, time.Millisecond, "buffer never filled")

	close(done)
	_ = screen.PostEvent(runeKey('x'))
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("pump still blocked on a full buffer")
	}
}
