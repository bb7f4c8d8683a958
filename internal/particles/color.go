package particles

import (
	"image/color"
	"math"
	"math/rand"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// randomColor picks a bright color with a hue in [hueMin, hueMax].
func randomColor(rng *rand.Rand, hueMin, hueMax float64) color.NRGBA {
	hue := hueMin + rng.Float64()*(hueMax-hueMin)
	sat := 0.5 + rng.Float64()*0.4
	r, g, b := hsvToRgb(hue, sat, 1.0)
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
