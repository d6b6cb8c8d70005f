package colour

import (
	"math"
)

// wrapHue maps h into [0,360).
func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 || h == 0 {
		// Also folds -0 into 0.
		h = 0
	}
	return h
}

// clamp01 limits v to [0,1].
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp interpolates linearly. t=1 returns b exactly rather than a+(b-a).
func lerp(a, b, t float64) float64 {
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}

// lerpHue interpolates between two hues along the shorter arc.
func lerpHue(a, b, t float64) float64 {
	if t >= 1 {
		return b
	}
	d := b - a
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return a + d*t
}
