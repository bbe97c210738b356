package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Region-Locker/internal/overlay"
	"github.com/Garsondee/Region-Locker/internal/region"
)

// EnvPath names the environment variable (or .env entry) holding the
// default config file path.
const EnvPath = "REGIONMAP_CONFIG"

// Config holds everything the region map hosts read at startup.
type Config struct {
	Overlay OverlayConfig `yaml:"overlay"`
	Regions RegionsConfig `yaml:"regions"`
	Viewer  ViewerConfig  `yaml:"viewer"`
}

// OverlayConfig is the toggle and colour surface of the overlay.
type OverlayConfig struct {
	DrawMapOverlay   bool  `yaml:"draw_map_overlay"`
	InvertMapOverlay bool  `yaml:"invert_map_overlay"`
	DrawMapGrid      bool  `yaml:"draw_map_grid"`
	DrawRegionID     bool  `yaml:"draw_region_id"`
	MapOverlayColor  Color `yaml:"map_overlay_color"`
	UnlockableColor  Color `yaml:"unlockable_overlay_color"`
	BlacklistedColor Color `yaml:"blacklisted_overlay_color"`
}

// RegionsConfig lists region ids per classification. Each entry is either
// a YAML sequence of ids or one comma separated string.
type RegionsConfig struct {
	Locked      IDList `yaml:"locked"`
	Unlockable  IDList `yaml:"unlockable"`
	Blacklisted IDList `yaml:"blacklisted"`
}

// ViewerConfig is the initial state of the interactive viewers.
type ViewerConfig struct {
	WindowWidth  int     `yaml:"window_width"`
	WindowHeight int     `yaml:"window_height"`
	CameraX      int     `yaml:"camera_x"`
	CameraY      int     `yaml:"camera_y"`
	Zoom         float64 `yaml:"zoom"` // pixels per world unit
	PlayerX      int     `yaml:"player_x"`
	PlayerY      int     `yaml:"player_y"`
}

// Default returns the built-in configuration, centred on Lumbridge.
func Default() Config {
	opts := overlay.DefaultOptions()
	return Config{
		Overlay: OverlayConfig{
			DrawMapOverlay:   opts.Enabled,
			InvertMapOverlay: opts.Invert,
			DrawMapGrid:      opts.DrawGrid,
			DrawRegionID:     opts.DrawRegionID,
			MapOverlayColor:  Color(opts.MapColor),
			UnlockableColor:  Color(opts.UnlockableColor),
			BlacklistedColor: Color(opts.BlacklistedColor),
		},
		Regions: RegionsConfig{
			Locked: IDList{12850},
		},
		Viewer: ViewerConfig{
			WindowWidth:  1280,
			WindowHeight: 800,
			CameraX:      3222,
			CameraY:      3218,
			Zoom:         2,
			PlayerX:      3222,
			PlayerY:      3218,
		},
	}
}

// Load reads a YAML config from path on top of Default.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the YAML decoder cannot.
func (c Config) Validate() error {
	if c.Viewer.Zoom <= 0 {
		return fmt.Errorf("viewer.zoom must be > 0, got %v", c.Viewer.Zoom)
	}
	if c.Viewer.WindowWidth <= 0 || c.Viewer.WindowHeight <= 0 {
		return fmt.Errorf("viewer window must be positive, got %dx%d", c.Viewer.WindowWidth, c.Viewer.WindowHeight)
	}
	return nil
}

// Options converts the overlay section for the renderer.
func (c Config) Options() overlay.Options {
	o := c.Overlay
	return overlay.Options{
		Enabled:          o.DrawMapOverlay,
		Invert:           o.InvertMapOverlay,
		DrawGrid:         o.DrawMapGrid,
		DrawRegionID:     o.DrawRegionID,
		MapColor:         color.NRGBA(o.MapOverlayColor),
		UnlockableColor:  color.NRGBA(o.UnlockableColor),
		BlacklistedColor: color.NRGBA(o.BlacklistedColor),
	}
}

// Store builds the classification store from the region lists.
func (c Config) Store() *region.Store {
	return region.NewStore(c.Regions.Locked, c.Regions.Unlockable, c.Regions.Blacklisted)
}

// --- Color ---

// Color is a non-premultiplied colour written as "#rrggbb" or "#rrggbbaa".
// Alpha defaults to opaque.
type Color color.NRGBA

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	alpha := uint64(255)
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("colour %q: bad alpha: %w", s, err)
		}
		alpha = a
		s = s[:7]
	default:
		return Color{}, fmt.Errorf("colour %q: want #rrggbb or #rrggbbaa", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

func (c Color) String() string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A == 255 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, c.A)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// --- IDList ---

// IDList is a list of region ids.
type IDList []region.ID

// UnmarshalYAML accepts either a sequence of ids or a comma separated string.
func (l *IDList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		ids, err := region.ParseIDList(value.Value)
		if err != nil {
			return err
		}
		*l = ids
		return nil
	}
	var ids []region.ID
	if err := value.Decode(&ids); err != nil {
		return err
	}
	*l = ids
	return nil
}
