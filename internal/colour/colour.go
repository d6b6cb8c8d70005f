// Package colour implements the canonical HSLA colour used by tincture's
// filters, its conversions to and from CSS text, and channel arithmetic.
package colour

// Color is a colour in canonical form: hue in degrees [0,360), saturation,
// lightness and alpha in [0,1]. Construct it with New so the ranges hold.
type Color struct {
	h, s, l, a float64
}

// New builds a Color, wrapping hue modulo 360 and clamping the other
// channels into [0,1]. NaN channels become 0.
func New(h, s, l, a float64) Color {
	return Color{
		h: wrapHue(h),
		s: clamp01(s),
		l: clamp01(l),
		a: clamp01(a),
	}
}

// H returns the hue in degrees.
func (c Color) H() float64 { return c.h }

// S returns the saturation.
func (c Color) S() float64 { return c.s }

// L returns the lightness.
func (c Color) L() float64 { return c.l }

// A returns the alpha.
func (c Color) A() float64 { return c.a }

// Channel names one of a colour's four components.
type Channel int

const (
	Hue Channel = iota
	Saturation
	Lightness
	Alpha
)

// ParseChannel resolves a channel name. "opacity" and "alpha" both name the
// alpha channel.
func ParseChannel(name string) (Channel, bool) {
	switch name {
	case "hue":
		return Hue, true
	case "saturation":
		return Saturation, true
	case "lightness":
		return Lightness, true
	case "opacity", "alpha":
		return Alpha, true
	}
	return 0, false
}

func (ch Channel) String() string {
	switch ch {
	case Hue:
		return "hue"
	case Saturation:
		return "saturation"
	case Lightness:
		return "lightness"
	case Alpha:
		return "alpha"
	}
	return "unknown"
}

// Get returns the value of channel ch.
func (c Color) Get(ch Channel) float64 {
	switch ch {
	case Hue:
		return c.h
	case Saturation:
		return c.s
	case Lightness:
		return c.l
	case Alpha:
		return c.a
	}
	return 0
}

// With returns a copy of c with channel ch set to v, normalized.
func (c Color) With(ch Channel, v float64) Color {
	switch ch {
	case Hue:
		c.h = v
	case Saturation:
		c.s = v
	case Lightness:
		c.l = v
	case Alpha:
		c.a = v
	}
	return New(c.h, c.s, c.l, c.a)
}

// Adjust returns a copy of c with delta added to channel ch. Hue wraps,
// the other channels clamp.
func (c Color) Adjust(ch Channel, delta float64) Color {
	return c.With(ch, c.Get(ch)+delta)
}

// Mix interpolates from c towards other by t in [0,1]. Hue follows the
// shorter way round the wheel. t=0 yields c and t=1 yields other exactly.
func Mix(c, other Color, t float64) Color {
	t = clamp01(t)
	return New(
		lerpHue(c.h, other.h, t),
		lerp(c.s, other.s, t),
		lerp(c.l, other.l, t),
		lerp(c.a, other.a, t),
	)
}
