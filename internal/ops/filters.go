package ops

import (
	"math"
	"strconv"
	"strings"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/pkg/value"
)

// Filter is an operation invoked as `input | name(args...)`.
type Filter func(in value.Value, args Args) (value.Value, error)

// adjust implements add (sign 1) and sub (sign -1).
func adjust(sign float64) Filter {
	return func(in value.Value, args Args) (value.Value, error) {
		c, err := colour.FromValue(in)
		if err != nil {
			return value.Value{}, err
		}
		changes, err := channelArgs(args, "amount")
		if err != nil {
			return value.Value{}, err
		}
		for _, change := range changes {
			c = c.Adjust(change.ch, sign*change.amount)
		}
		return colour.ToValue(c), nil
	}
}

func mod(in value.Value, args Args) (value.Value, error) {
	c, err := colour.FromValue(in)
	if err != nil {
		return value.Value{}, err
	}
	changes, err := channelArgs(args, "target")
	if err != nil {
		return value.Value{}, err
	}
	for _, change := range changes {
		c = c.With(change.ch, change.amount)
	}
	return colour.ToValue(c), nil
}

func mix(in value.Value, args Args) (value.Value, error) {
	c, err := colour.FromValue(in)
	if err != nil {
		return value.Value{}, err
	}
	other, err := args.Color("color")
	if err != nil {
		return value.Value{}, err
	}
	amount, err := args.Number("amount")
	if err != nil {
		return value.Value{}, err
	}
	if !(amount >= 0 && amount <= 1) {
		return value.Value{}, invalid("amount", "must be between 0 and 1, got %s", value.FormatNumber(amount))
	}
	if err := args.only("color", "amount"); err != nil {
		return value.Value{}, err
	}
	return colour.ToValue(colour.Mix(c, other, amount)), nil
}

func trunc(in value.Value, args Args) (value.Value, error) {
	n, err := asNumber("value", in)
	if err != nil {
		return value.Value{}, err
	}
	places, err := args.Number("places")
	if err != nil {
		return value.Value{}, err
	}
	if places < 0 || places != math.Trunc(places) || math.IsInf(places, 0) {
		return value.Value{}, invalid("places", "must be a non-negative integer, got %s", value.FormatNumber(places))
	}
	if err := args.only("places"); err != nil {
		return value.Value{}, err
	}
	return value.FromNumber(truncate(n, places)), nil
}

// truncate cuts the shortest decimal form of n after places fractional
// digits, so 0.29 truncated to 2 places stays 0.29.
func truncate(n, places float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	text := strconv.FormatFloat(n, 'f', -1, 64)
	whole, frac, ok := strings.Cut(text, ".")
	if !ok || places >= float64(len(frac)) {
		return n
	}
	if places > 0 {
		whole += "." + frac[:int(places)]
	}
	out, err := strconv.ParseFloat(whole, 64)
	if err != nil || out == 0 {
		return 0
	}
	return out
}

func (s *Set) urlencodeFilter(in value.Value, args Args) (value.Value, error) {
	if err := args.only(); err != nil {
		return value.Value{}, err
	}
	return s.encode(in)
}

func (s *Set) urldecodeFilter(in value.Value, args Args) (value.Value, error) {
	tok, ok := in.AsString()
	if !ok {
		return value.Value{}, mismatch("value", "string", in)
	}
	if err := args.only(); err != nil {
		return value.Value{}, err
	}
	return s.codec.Decode(tok)
}

func (s *Set) encode(v value.Value) (value.Value, error) {
	tok, err := s.codec.Encode(v)
	if err != nil {
		return value.Value{}, err
	}
	return value.FromString(tok), nil
}
