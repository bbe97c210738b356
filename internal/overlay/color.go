package overlay

import "image/color"

// Fixed layer colours. All colours are non-premultiplied.
var (
	BorderColor = color.NRGBA{R: 0, G: 19, B: 36, A: 127}    // grid lines
	LabelColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 127} // region ids and status lines
)

const (
	brightenFactor = 0.7
	// Channels darker than this are lifted first so they can brighten at all:
	// int(1 / (1 - brightenFactor)).
	brightenFloor = 3
)

// Brighter returns c with each RGB channel scaled by 1/0.7 and clamped to
// 255. Channels in (0, 3) are raised to 3 first and pure black becomes
// (3,3,3). Alpha is unchanged.
func Brighter(c color.NRGBA) color.NRGBA {
	r, g, b := int(c.R), int(c.G), int(c.B)
	if r == 0 && g == 0 && b == 0 {
		return color.NRGBA{R: uint8(brightenFloor), G: uint8(brightenFloor), B: uint8(brightenFloor), A: c.A}
	}
	return color.NRGBA{R: brightenChannel(r), G: brightenChannel(g), B: brightenChannel(b), A: c.A}
}

func brightenChannel(v int) uint8 {
	if v > 0 && v < brightenFloor {
		v = brightenFloor
	}
	v = int(float64(v) / brightenFactor)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
