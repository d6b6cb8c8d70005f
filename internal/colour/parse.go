package colour

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/tincture/pkg/value"
)

// MalformedColorError reports a value that cannot be read as a colour.
// Field names the missing or invalid field.
type MalformedColorError struct {
	Field  string
	Detail string
}

func (e *MalformedColorError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("malformed color: field %q: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("malformed color: missing or invalid field %q", e.Field)
}

func malformed(field, format string, args ...any) error {
	return &MalformedColorError{Field: field, Detail: fmt.Sprintf(format, args...)}
}

// FromValue reads a Color from a template value. Accepted shapes:
//
//	{h: 347, s: 0.87, l: 0.44, a: 1}            // a is optional
//	{hsl: {h: 347, s: 0.87, l: 0.44}, opacity: 1} // palette record
//	"#d20f39", "rgb(210, 15, 57)", "hsla(347, 87%, 44%, 0.50)", ...
func FromValue(v value.Value) (Color, error) {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return ParseText(s)
	case value.KindMap:
		m, _ := v.AsMap()
		if hsl, ok := m.Get("hsl"); ok {
			inner, ok := hsl.AsMap()
			if !ok {
				return Color{}, malformed("hsl", "expected a mapping, got %s", hsl.Kind())
			}
			return fromFields(inner, m, "opacity")
		}
		return fromFields(m, m, "a")
	}
	return Color{}, malformed("color", "expected a mapping or a string, got %s", v.Kind())
}

func fromFields(hsl, outer *value.Map, alphaField string) (Color, error) {
	var chans [3]float64
	for i, field := range []string{"h", "s", "l"} {
		n, err := numberField(hsl, field)
		if err != nil {
			return Color{}, err
		}
		chans[i] = n
	}
	a := 1.0
	if _, ok := outer.Get(alphaField); ok {
		n, err := numberField(outer, alphaField)
		if err != nil {
			return Color{}, err
		}
		a = n
	}
	return New(chans[0], chans[1], chans[2], a), nil
}

func numberField(m *value.Map, field string) (float64, error) {
	v, ok := m.Get(field)
	if !ok {
		return 0, &MalformedColorError{Field: field}
	}
	n, ok := v.AsNumber()
	if !ok {
		return 0, malformed(field, "expected a number, got %s", v.Kind())
	}
	return n, nil
}

// ToValue returns the template representation of c: a mapping holding the
// canonical channels and a derived hex string.
func ToValue(c Color) value.Value {
	m := value.NewMap()
	m.Set("h", value.FromNumber(c.h))
	m.Set("s", value.FromNumber(c.s))
	m.Set("l", value.FromNumber(c.l))
	m.Set("a", value.FromNumber(c.a))
	m.Set("hex", value.FromString(c.String()))
	return value.FromMap(m)
}

// ParseText parses hex (#rgb, #rrggbb, #rrggbbaa) and CSS functional
// notation (rgb, rgba, hsl, hsla with comma separated components).
func ParseText(text string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, malformed("text", "unrecognised colour %q", text)
	}
	fn := strings.TrimSpace(s[:open])
	parts := strings.Split(s[open+1:len(s)-1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, malformed("text", "%s() takes 3 or 4 components, got %d", fn, len(parts))
	}

	alpha := 1.0
	if len(parts) == 4 {
		a, err := parseAlpha(parts[3])
		if err != nil {
			return Color{}, err
		}
		alpha = a
	}

	switch fn {
	case "rgb", "rgba":
		var rgb [3]uint8
		for i := range rgb {
			n, err := strconv.ParseFloat(parts[i], 64)
			if err != nil || n < 0 || n > 255 {
				return Color{}, malformed("text", "invalid channel %q", parts[i])
			}
			rgb[i] = uint8(n + 0.5)
		}
		return FromRGB255(rgb[0], rgb[1], rgb[2], alpha), nil
	case "hsl", "hsla":
		h, err := strconv.ParseFloat(strings.TrimSuffix(parts[0], "deg"), 64)
		if err != nil {
			return Color{}, malformed("text", "invalid hue %q", parts[0])
		}
		sat, err := parsePercent(parts[1])
		if err != nil {
			return Color{}, err
		}
		light, err := parsePercent(parts[2])
		if err != nil {
			return Color{}, err
		}
		return New(h, sat, light, alpha), nil
	}
	return Color{}, malformed("text", "unknown colour function %q", fn)
}

func parseHex(s string) (Color, error) {
	alpha := 1.0
	switch len(s) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, malformed("text", "invalid alpha in %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	default:
		return Color{}, malformed("text", "invalid hex colour %q", s)
	}
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, malformed("text", "invalid hex colour %q", s)
	}
	r, g, b := cc.RGB255()
	return FromRGB255(r, g, b, alpha), nil
}

func parsePercent(s string) (float64, error) {
	if !strings.HasSuffix(s, "%") {
		return 0, malformed("text", "expected a percentage, got %q", s)
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, malformed("text", "invalid percentage %q", s)
	}
	return n / 100, nil
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed("text", "invalid alpha %q", s)
	}
	return n, nil
}
