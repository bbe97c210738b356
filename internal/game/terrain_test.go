package game

import "testing"

func TestFieldAt_Range(t *testing.T) {
	seed := int64(12345)
	for y := -10.0; y < 10.0; y += 0.37 {
		for x := -10.0; x < 10.0; x += 0.37 {
			v := fieldAt(x, y, seed)
			if v < 0 || v > 1 {
				t.Fatalf("field at (%.2f,%.2f) = %f, out of [0,1]", x, y, v)
			}
		}
	}
}

func TestFieldAt_Deterministic(t *testing.T) {
	seed := int64(99999)
	a := fieldAt(3.7, 8.2, seed)
	b := fieldAt(3.7, 8.2, seed)
	if a != b {
		t.Fatalf("field not deterministic: %f != %f", a, b)
	}
}

func TestTerrain_SameSeedSameWorld(t *testing.T) {
	a := NewTerrain(terrainSeed, defaultTerrainConfig)
	b := NewTerrain(terrainSeed, defaultTerrainConfig)
	for x := 3000.0; x < 3500; x += 17 {
		for y := 3000.0; y < 3500; y += 19 {
			if a.GroundAt(x, y) != b.GroundAt(x, y) {
				t.Fatalf("ground at (%.0f,%.0f) differs between identical terrains", x, y)
			}
		}
	}
}

func TestTerrain_VariedGround(t *testing.T) {
	tr := NewTerrain(terrainSeed, defaultTerrainConfig)
	counts := make(map[Ground]int)
	for x := 0.0; x < 6400; x += 16 {
		for y := 0.0; y < 6400; y += 16 {
			counts[tr.GroundAt(x, y)]++
		}
	}
	t.Logf("Grounds: %v", counts)
	if len(counts) < 4 {
		t.Fatalf("expected at least 4 ground types across the world, got %d", len(counts))
	}
	if counts[GroundWater] == 0 {
		t.Fatal("no water anywhere")
	}
}

func TestGround_StringAndColor(t *testing.T) {
	if GroundForest.String() != "forest" {
		t.Fatalf("GroundForest.String()=%q", GroundForest.String())
	}
	if Ground(200).String() != "unknown" {
		t.Fatal("out of range ground should be unknown")
	}
	if GroundWater.Color().A != 255 || Ground(200).Color().A != 255 {
		t.Fatal("ground colours must be opaque")
	}
}

func TestTerrainTileSize(t *testing.T) {
	cases := []struct {
		ppu  float64
		want int
	}{
		{16, 2},
		{4, 2},
		{2, 4},
		{1, 8},
		{0.05, 256},
	}
	for _, c := range cases {
		got := terrainTileSize(c.ppu)
		if got != c.want {
			t.Fatalf("terrainTileSize(%v)=%d, want %d", c.ppu, got, c.want)
		}
		if float64(got)*c.ppu < minTilePixels {
			t.Fatalf("tile %d at %v ppu is under %d px", got, c.ppu, minTilePixels)
		}
	}
}

func TestFloorTo(t *testing.T) {
	cases := []struct {
		v    float64
		step int
		want int
	}{
		{5, 4, 4},
		{-1, 4, -4},
		{-4, 4, -4},
		{0.5, 8, 0},
	}
	for _, c := range cases {
		if got := floorTo(c.v, c.step); got != c.want {
			t.Fatalf("floorTo(%v,%d)=%d, want %d", c.v, c.step, got, c.want)
		}
	}
}
