package game

import (
	"image/color"
	"math"
	"math/rand"
)

// Ground is the terrain class painted under the overlay.
type Ground uint8

const (
	GroundWater Ground = iota
	GroundSand
	GroundGrass
	GroundGrassLong
	GroundForest
	GroundRock
)

var groundNames = [...]string{"water", "sand", "grass", "long grass", "forest", "rock"}

func (g Ground) String() string {
	if int(g) < len(groundNames) {
		return groundNames[g]
	}
	return "unknown"
}

var groundColors = [...]color.RGBA{
	GroundWater:     {R: 38, G: 62, B: 104, A: 255},
	GroundSand:      {R: 170, G: 152, B: 104, A: 255},
	GroundGrass:     {R: 62, G: 96, B: 48, A: 255},
	GroundGrassLong: {R: 74, G: 110, B: 52, A: 255},
	GroundForest:    {R: 34, G: 66, B: 32, A: 255},
	GroundRock:      {R: 96, G: 94, B: 88, A: 255},
}

// Color returns the map colour for g.
func (g Ground) Color() color.RGBA {
	if int(g) < len(groundColors) {
		return groundColors[g]
	}
	return color.RGBA{A: 255}
}

// terrainConfig holds tuneable noise parameters.
type terrainConfig struct {
	// Noise layer scales (smaller = broader features), per world unit.
	ElevationScale float64
	MoistureScale  float64

	// Elevation thresholds (noise value 0–1).
	WaterLevel float64 // below this → water
	SandLevel  float64 // below this → shoreline sand
	RockLevel  float64 // above this → rock

	// Moisture thresholds on dry land.
	ForestMoisture    float64
	LongGrassMoisture float64
}

var defaultTerrainConfig = terrainConfig{
	ElevationScale: 0.012,
	MoistureScale:  0.02,

	WaterLevel: 0.28,
	SandLevel:  0.33,
	RockLevel:  0.80,

	ForestMoisture:    0.66,
	LongGrassMoisture: 0.50,
}

// terrainSeed fixes the world so region ids always sit on the same ground.
const terrainSeed int64 = 3222_3218

// Terrain is a deterministic procedural world, sampled on demand.
type Terrain struct {
	cfg       terrainConfig
	elevSeed  int64
	moistSeed int64
}

// NewTerrain derives independent noise layers from seed.
func NewTerrain(seed int64, cfg terrainConfig) *Terrain {
	rng := rand.New(rand.NewSource(seed))
	return &Terrain{cfg: cfg, elevSeed: rng.Int63(), moistSeed: rng.Int63()}
}

// GroundAt classifies the world point (x, y).
func (t *Terrain) GroundAt(x, y float64) Ground {
	cfg := t.cfg
	elev := fieldAt(x*cfg.ElevationScale, y*cfg.ElevationScale, t.elevSeed)
	// Second octave breaks up the lattice.
	elev = elev*0.75 + fieldAt(x*cfg.ElevationScale*4, y*cfg.ElevationScale*4, t.elevSeed+1)*0.25

	switch {
	case elev < cfg.WaterLevel:
		return GroundWater
	case elev < cfg.SandLevel:
		return GroundSand
	case elev > cfg.RockLevel:
		return GroundRock
	}
	moist := fieldAt(x*cfg.MoistureScale, y*cfg.MoistureScale, t.moistSeed)
	switch {
	case moist > cfg.ForestMoisture:
		return GroundForest
	case moist > cfg.LongGrassMoisture:
		return GroundGrassLong
	}
	return GroundGrass
}

// --- Value noise implementation (no external deps) ---

// fieldAt samples a smooth terrain field in [0,1]. Whole world units
// (after scaling) are the field's control points; between them the four
// surrounding heights are eased together so coastlines and forest edges
// curve rather than step.
func fieldAt(x, y float64, seed int64) float64 {
	cx, cy := math.Floor(x), math.Floor(y)
	tx := ease(x - cx)
	ty := ease(y - cy)

	ix, iy := int(cx), int(cy)
	south := lerp(controlHeight(ix, iy, seed), controlHeight(ix+1, iy, seed), tx)
	north := lerp(controlHeight(ix, iy+1, seed), controlHeight(ix+1, iy+1, seed), tx)
	return lerp(south, north, ty)
}

func ease(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// controlHeight is the fixed field height at a control point.
func controlHeight(x, y int, seed int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x517cc1b727220a95
	h ^= uint64(y) * 0x6c62272e07bb0142
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 16
	h *= 0xd6e8feb86659fd93
	h ^= h >> 16
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
