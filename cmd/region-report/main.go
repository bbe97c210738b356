package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Region-Locker/internal/config"
	"github.com/Garsondee/Region-Locker/internal/overlay"
	"github.com/Garsondee/Region-Locker/internal/region"
)

// reportOptions is everything the command line controls.
type reportOptions struct {
	configPath string
	width      int
	height     int
	zoom       float64
	camX, camY int
	cursorX    int
	cursorY    int
	noCursor   bool
	playerX    int
	playerY    int
	format     string
	cells      bool
	commands   bool
}

// headlessHost is a fixed viewport, cursor and player.
type headlessHost struct {
	frame  overlay.Frame
	cursor image.Point
	player image.Point
}

func (h headlessHost) ViewportFrame() (overlay.Frame, bool) { return h.frame, true }
func (h headlessHost) CursorScreenPosition() image.Point     { return h.cursor }
func (h headlessHost) PlayerLocation() image.Point           { return h.player }

// countingSurface tallies draw calls instead of painting.
type countingSurface struct {
	overlay.BasicMeter
	counts map[overlay.Op]int
}

func (s *countingSurface) SetClip(image.Rectangle)                  { s.counts[overlay.OpClip]++ }
func (s *countingSurface) FillRect(image.Rectangle, color.NRGBA)    { s.counts[overlay.OpFill]++ }
func (s *countingSurface) DrawRect(image.Rectangle, color.NRGBA)    { s.counts[overlay.OpStroke]++ }
func (s *countingSurface) DrawString(string, int, int, color.NRGBA) { s.counts[overlay.OpText]++ }

type cellReport struct {
	ID     region.ID `yaml:"id"`
	Origin [2]int    `yaml:"origin"`
	Rect   [4]int    `yaml:"rect"`
	Class  string    `yaml:"class"`
	Fill   string    `yaml:"fill,omitempty"`
}

type report struct {
	Screen      [2]int         `yaml:"screen"`
	Zoom        float64        `yaml:"zoom"`
	Camera      [2]int         `yaml:"camera"`
	XRange      [2]int         `yaml:"x_range"`
	YRange      [2]int         `yaml:"y_range"`
	Columns     int            `yaml:"columns"`
	Rows        int            `yaml:"rows"`
	RegionPx    int            `yaml:"region_px"`
	Hovered     string         `yaml:"hovered"`
	Player      region.ID      `yaml:"player"`
	Classes     map[string]int `yaml:"classes"`
	DrawCalls   map[string]int `yaml:"draw_calls"`
	Cells       []cellReport   `yaml:"cells,omitempty"`
	CommandList []string       `yaml:"commands,omitempty"`
}

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	var o reportOptions
	flag.StringVar(&o.configPath, "config", os.Getenv(config.EnvPath), "YAML config file")
	flag.IntVar(&o.width, "width", 512, "map width in pixels")
	flag.IntVar(&o.height, "height", 512, "map height in pixels")
	flag.Float64Var(&o.zoom, "zoom", 4, "pixels per world unit")
	flag.IntVar(&o.camX, "cam-x", 3222, "camera world x")
	flag.IntVar(&o.camY, "cam-y", 3218, "camera world y")
	flag.IntVar(&o.cursorX, "cursor-x", 0, "cursor screen x")
	flag.IntVar(&o.cursorY, "cursor-y", 0, "cursor screen y")
	flag.BoolVar(&o.noCursor, "no-cursor", false, "report with the cursor off the map")
	flag.IntVar(&o.playerX, "player-x", 3222, "player world x")
	flag.IntVar(&o.playerY, "player-y", 3218, "player world y")
	flag.StringVar(&o.format, "format", "text", "output format: text or yaml")
	flag.BoolVar(&o.cells, "cells", false, "list every region cell")
	flag.BoolVar(&o.commands, "commands", false, "list every draw command")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := o.validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	r, err := buildReport(o, cfg, logger)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if err := writeReport(os.Stdout, r, o.format); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func (o reportOptions) validate() error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("-width and -height must be > 0")
	}
	if o.zoom <= 0 {
		return fmt.Errorf("-zoom must be > 0")
	}
	if o.format != "text" && o.format != "yaml" {
		return fmt.Errorf("unsupported format %q (supported: text, yaml)", o.format)
	}
	return nil
}

// buildReport renders one frame headlessly and summarises it.
func buildReport(o reportOptions, cfg config.Config, logger *slog.Logger) (report, error) {
	host := headlessHost{
		frame: overlay.Frame{
			Screen:        image.Rect(0, 0, o.width, o.height),
			PixelsPerUnit: o.zoom,
			Camera:        image.Pt(o.camX, o.camY),
		},
		cursor: image.Pt(o.cursorX, o.cursorY),
		player: image.Pt(o.playerX, o.playerY),
	}
	if o.noCursor {
		host.cursor = image.Pt(-1<<30, -1<<30)
	}
	if _, err := overlay.ResolveFrame(host); err != nil {
		return report{}, err
	}

	store := cfg.Store()
	opts := cfg.Options()
	opts.Enabled = true
	r := &overlay.Renderer{
		Viewport:   host,
		Cursor:     host,
		Player:     host,
		Classifier: store,
		Options:    opts,
		Logger:     logger,
	}
	surface := &countingSurface{counts: map[overlay.Op]int{}}
	r.Render(surface)
	frame := r.LastFrame()
	g := frame.Grid

	rep := report{
		Screen:    [2]int{o.width, o.height},
		Zoom:      o.zoom,
		Camera:    [2]int{o.camX, o.camY},
		XRange:    [2]int{g.XMin, g.XMax},
		YRange:    [2]int{g.YMin, g.YMax},
		Columns:   g.Columns(),
		Rows:      g.Rows(),
		RegionPx:  g.RegionPixelSize,
		Hovered:   r.HoveredRegion().String(),
		Player:    overlay.PlayerRegionID(host),
		Classes:   map[string]int{},
		DrawCalls: map[string]int{},
	}
	for op, n := range surface.counts {
		rep.DrawCalls[op.String()] = n
	}
	for _, c := range g.Cells() {
		cl := store.Classify(c.ID)
		rep.Classes[cl.String()]++
		if !o.cells {
			continue
		}
		cr := cellReport{
			ID:     c.ID,
			Origin: [2]int{c.X, c.Y},
			Rect:   [4]int{c.Rect.Min.X, c.Rect.Min.Y, c.Rect.Max.X, c.Rect.Max.Y},
			Class:  cl.String(),
		}
		if fill, ok := opts.FillColor(cl); ok {
			cr.Fill = config.Color(fill).String()
		}
		rep.Cells = append(rep.Cells, cr)
	}
	if o.commands {
		for _, c := range frame.Commands {
			rep.CommandList = append(rep.CommandList, c.String())
		}
	}
	return rep, nil
}

func writeReport(w io.Writer, r report, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "=== Region Overlay Report ===\n")
	fmt.Fprintf(w, "frame: screen=%dx%d zoom=%.2f camera=%d,%d\n", r.Screen[0], r.Screen[1], r.Zoom, r.Camera[0], r.Camera[1])
	fmt.Fprintf(w, "grid: x=[%d,%d) y=[%d,%d) columns=%d rows=%d region_px=%d\n",
		r.XRange[0], r.XRange[1], r.YRange[0], r.YRange[1], r.Columns, r.Rows, r.RegionPx)
	fmt.Fprintf(w, "hovered: %s\n", r.Hovered)
	fmt.Fprintf(w, "player: %s\n", r.Player)
	fmt.Fprintf(w, "classes: %s\n", joinCounts(r.Classes))
	fmt.Fprintf(w, "draw_calls: %s\n", joinCounts(r.DrawCalls))

	if len(r.Cells) > 0 {
		fmt.Fprintln(w, "--- cells ---")
		for _, c := range r.Cells {
			fmt.Fprintf(w, "  %6s  origin=%d,%d  rect=(%d,%d)-(%d,%d)  class=%s", c.ID, c.Origin[0], c.Origin[1],
				c.Rect[0], c.Rect[1], c.Rect[2], c.Rect[3], c.Class)
			if c.Fill != "" {
				fmt.Fprintf(w, "  fill=%s", c.Fill)
			}
			fmt.Fprintln(w)
		}
	}
	if len(r.CommandList) > 0 {
		fmt.Fprintln(w, "--- commands ---")
		for _, c := range r.CommandList {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}
	return nil
}

// joinCounts renders a map as sorted "k=v" pairs.
func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", k, m[k])
	}
	return out
}
