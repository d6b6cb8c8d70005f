package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Format represents the different colour string formats.
type Format int

const (
	FormatHex      Format = iota // #rrggbb
	FormatHexAlpha               // #rrggbbaa
	FormatRGB                    // rgb(r, g, b)
	FormatRGBA                   // rgba(r, g, b, a)
	FormatHSL                    // hsl(h, s%, l%)
	FormatHSLA                   // hsla(h, s%, l%, a)
)

// Format returns the colour in the specified format.
func (c Color) Format(format Format) string {
	r, g, b := c.RGB255()
	switch format {
	case FormatHexAlpha:
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, c.Alpha255())
	case FormatRGB:
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	case FormatRGBA:
		return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, c.a)
	case FormatHSL:
		h, s, l := c.hslPercent()
		return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l)
	case FormatHSLA:
		h, s, l := c.hslPercent()
		return fmt.Sprintf("hsla(%d, %d%%, %d%%, %.2f)", h, s, l, c.a)
	default:
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
}

// Hex returns #rrggbb.
func (c Color) Hex() string { return c.Format(FormatHex) }

// HexAlpha returns #rrggbbaa.
func (c Color) HexAlpha() string { return c.Format(FormatHexAlpha) }

// String returns #rrggbb for opaque colours and #rrggbbaa otherwise.
func (c Color) String() string {
	if c.Alpha255() == 255 {
		return c.Hex()
	}
	return c.HexAlpha()
}

// RGB255 converts to 8-bit RGB, rounding each channel to the nearest integer.
func (c Color) RGB255() (r, g, b uint8) {
	return colorful.Hsl(c.h, c.s, c.l).RGB255()
}

// Alpha255 returns alpha scaled to 0-255, rounded to nearest.
func (c Color) Alpha255() uint8 {
	return uint8(math.Round(c.a * 255))
}

func (c Color) hslPercent() (h, s, l int) {
	h = int(math.Round(c.h))
	if h == 360 {
		h = 0
	}
	return h, int(math.Round(c.s * 100)), int(math.Round(c.l * 100))
}

// FromRGB255 builds a Color from 8-bit channels and an alpha in [0,1].
func FromRGB255(r, g, b uint8, a float64) Color {
	return fromColorful(colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, a)
}

func fromColorful(cc colorful.Color, a float64) Color {
	h, s, l := cc.Hsl()
	return New(h, s, l, a)
}
