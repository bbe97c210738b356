package game

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Region-Locker/internal/config"
	"github.com/Garsondee/Region-Locker/internal/overlay"
	"github.com/Garsondee/Region-Locker/internal/region"
)

// borderWidth is the pixel gap between the window edge and the map.
const borderWidth = 24

const (
	zoomMin = 0.05 // pixels per world unit
	zoomMax = 16.0
)

// Game is an ebiten world-map viewer with the region overlay on top.
// It is also the overlay's viewport, cursor and player collaborator.
type Game struct {
	width     int
	height    int
	mapWidth  int // map widget width (log panel takes the rest)
	mapHeight int
	offX      int // pixel offset from window left to map left
	offY      int // pixel offset from window top to map top

	// Camera pan + zoom. World Y grows up the map.
	camX    float64 // world-space X of the camera centre
	camY    float64 // world-space Y of the camera centre
	camZoom float64 // pixels per world unit

	playerX int
	playerY int

	showMap bool // M hides the map, which suspends the overlay
	showHUD bool

	store    *region.Store
	overlay  *overlay.Renderer
	surface  *ebitenSurface
	terrain  *Terrain
	inspBuf  *ebiten.Image // hover panel, allocated on first use
	eventLog *EventLog
	copier   func(string) error
	logger   *slog.Logger
	tick     int
}

// New builds a viewer from cfg.
func New(cfg config.Config, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	surface, err := newEbitenSurface()
	if err != nil {
		return nil, fmt.Errorf("loading label font: %w", err)
	}
	v := cfg.Viewer
	g := &Game{
		width:     v.WindowWidth,
		height:    v.WindowHeight,
		mapWidth:  v.WindowWidth - 2*borderWidth - logPanelWidth,
		mapHeight: v.WindowHeight - 2*borderWidth,
		offX:      borderWidth,
		offY:      borderWidth,
		camX:      float64(v.CameraX),
		camY:      float64(v.CameraY),
		camZoom:   clampZoom(v.Zoom),
		playerX:   v.PlayerX,
		playerY:   v.PlayerY,
		showMap:   true,
		showHUD:   true,
		store:     cfg.Store(),
		surface:   surface,
		terrain:   NewTerrain(terrainSeed, defaultTerrainConfig),
		eventLog:  NewEventLog(),
		copier:    copyToClipboard,
		logger:    logger,
	}
	if g.mapWidth < 64 || g.mapHeight < 64 {
		return nil, fmt.Errorf("window %dx%d too small for the map", v.WindowWidth, v.WindowHeight)
	}
	g.overlay = &overlay.Renderer{
		Viewport:   g,
		Cursor:     g,
		Player:     g,
		Classifier: g.store,
		Options:    cfg.Options(),
		Logger:     logger,
	}
	return g, nil
}

// --- overlay collaborators ---

// ViewportFrame implements overlay.ViewportProvider.
func (g *Game) ViewportFrame() (overlay.Frame, bool) {
	if !g.showMap {
		return overlay.Frame{}, false
	}
	return overlay.Frame{
		Screen:        g.mapRect(),
		PixelsPerUnit: g.camZoom,
		Camera:        image.Pt(int(math.Round(g.camX)), int(math.Round(g.camY))),
	}, true
}

// CursorScreenPosition implements overlay.CursorProvider.
func (g *Game) CursorScreenPosition() image.Point {
	return image.Pt(ebiten.CursorPosition())
}

// PlayerLocation implements overlay.PlayerLocator.
func (g *Game) PlayerLocation() image.Point {
	return image.Pt(g.playerX, g.playerY)
}

func (g *Game) mapRect() image.Rectangle {
	return image.Rect(g.offX, g.offY, g.offX+g.mapWidth, g.offY+g.mapHeight)
}

// --- ebiten.Game ---

func (g *Game) Update() error {
	g.tick++
	g.handleInput()
	return nil
}

// handleInput processes camera, player and overlay toggle keys.
func (g *Game) handleInput() {
	opts := &g.overlay.Options
	toggles := []struct {
		key  ebiten.Key
		flag *bool
		name string
	}{
		{ebiten.KeyO, &opts.Enabled, "overlay"},
		{ebiten.KeyV, &opts.Invert, "invert"},
		{ebiten.KeyG, &opts.DrawGrid, "grid"},
		{ebiten.KeyT, &opts.DrawRegionID, "region ids"},
		{ebiten.KeyM, &g.showMap, "map"},
		{ebiten.KeyH, &g.showHUD, "HUD"},
	}
	for _, t := range toggles {
		if inpututil.IsKeyJustPressed(t.key) {
			*t.flag = !*t.flag
			g.note(fmt.Sprintf("%s %s", t.name, onOff(*t.flag)))
		}
	}
	if !g.overlayShown() {
		g.overlay.SetHoveredRegion(overlay.NoHover)
	}

	// Camera pan: WASD or arrow keys. W moves north, which is +Y in world space.
	panSpeed := 6.0 / g.camZoom // pan slower when zoomed in
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += panSpeed
	}

	// Camera zoom: mouse wheel or =/- keys.
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.camZoom *= math.Pow(1.12, wy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.camZoom *= 1.25
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.camZoom /= 1.25
	}
	g.camZoom = clampZoom(g.camZoom)

	// Player walk: IJKL, one world unit per tick.
	if ebiten.IsKeyPressed(ebiten.KeyI) {
		g.playerY++
	}
	if ebiten.IsKeyPressed(ebiten.KeyK) {
		g.playerY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		g.playerX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyL) {
		g.playerX++
	}
	// F recentres the camera on the player.
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.camX, g.camY = float64(g.playerX), float64(g.playerY)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.copyHovered()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.cycleHovered()
	}
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

// note records a line in the on-screen log and the structured log.
func (g *Game) note(msg string) {
	g.eventLog.Add(g.tick, msg)
	g.logger.Info(msg, "tick", g.tick)
}

// overlayShown reports whether the overlay is drawn this frame.
func (g *Game) overlayShown() bool {
	return g.showMap && g.overlay.Options.Enabled
}

// activeHover is the hovered region, or NoHover while the overlay is hidden.
// The renderer keeps its last hover across skipped frames, so a hidden
// overlay must not act on it.
func (g *Game) activeHover() overlay.Hover {
	if !g.overlayShown() {
		return overlay.NoHover
	}
	return g.overlay.HoveredRegion()
}

// copyHovered puts the hovered region id on the clipboard.
func (g *Game) copyHovered() {
	h := g.activeHover()
	if !h.OK {
		return
	}
	if err := g.copier(h.ID.String()); err != nil {
		g.logger.Warn("clipboard copy failed", "region", h.ID, "err", err)
		g.eventLog.Add(g.tick, "clipboard unavailable")
		return
	}
	g.note(fmt.Sprintf("copied region %s", h.ID))
}

// cycleHovered steps the hovered region through
// unclassified -> locked -> unlockable -> blacklisted -> unclassified.
func (g *Game) cycleHovered() {
	h := g.activeHover()
	if !h.OK {
		return
	}
	next := (g.store.Classify(h.ID) + 1) % (region.Blacklisted + 1)
	g.store.Set(h.ID, next)
	g.note(fmt.Sprintf("region %s -> %s", h.ID, next))
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Window background: very dark, outside the map.
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	if g.showMap {
		g.drawWorld(screen)
	}

	g.surface.Begin(screen)
	g.overlay.Render(g.surface)

	// Map border frame (drawn at screen coords, not clipped).
	ox := float32(g.offX)
	oy := float32(g.offY)
	mw := float32(g.mapWidth)
	mh := float32(g.mapHeight)
	borderCol := color.RGBA{R: 65, G: 90, B: 65, A: 255}
	vector.StrokeRect(screen, ox-1, oy-1, mw+2, mh+2, 2.0, borderCol, false)

	if !g.showMap {
		ebitenutil.DebugPrintAt(screen, "map hidden  [M] show", g.offX+8, g.offY+8)
	}

	logX := g.offX + g.mapWidth + g.offX
	g.eventLog.Draw(screen, logX, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawHoverPanel(screen)
}

// drawHUD draws the key legend in the top-left corner of the map.
func (g *Game) drawHUD(screen *ebiten.Image) {
	opts := g.overlay.Options
	lines := []string{
		fmt.Sprintf("[O] overlay %s  [V] invert %s", onOff(opts.Enabled), onOff(opts.Invert)),
		fmt.Sprintf("[G] grid %s  [T] ids %s  [M] map", onOff(opts.DrawGrid), onOff(opts.DrawRegionID)),
		"WASD/arrows=pan  scroll,=/-=zoom  F=find player",
		"IJKL=walk  LMB=copy id  RMB=cycle class",
		fmt.Sprintf("zoom: %.2f px/tile  cam: %.0f,%.0f", g.camZoom, g.camX, g.camY),
	}

	const lineH = 16
	const charW = 6
	const padX = 5
	const padY = 4
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	bx := float32(g.offX + 6)
	by := float32(g.offY + 6)
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(bx)+padX, int(by)+padY+i*lineH)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize returns the window size the viewer was laid out for.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
