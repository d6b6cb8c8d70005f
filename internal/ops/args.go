package ops

import (
	"maps"
	"slices"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/pkg/value"
)

// Args is the named argument mapping a host engine passes to an operation.
type Args map[string]value.Value

// Names returns the argument names in lexicographic order.
func (a Args) Names() []string {
	return slices.Sorted(maps.Keys(a))
}

// Has reports whether name was supplied.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Value returns a required argument of any kind.
func (a Args) Value(name string) (value.Value, error) {
	v, ok := a[name]
	if !ok {
		return value.Value{}, &MissingArgumentError{Name: name}
	}
	return v, nil
}

// Number returns a required numeric argument.
func (a Args) Number(name string) (float64, error) {
	v, err := a.Value(name)
	if err != nil {
		return 0, err
	}
	return asNumber(name, v)
}

// String returns a required string argument.
func (a Args) String(name string) (string, error) {
	v, err := a.Value(name)
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", mismatch(name, "string", v)
	}
	return s, nil
}

// Bool returns a required boolean argument.
func (a Args) Bool(name string) (bool, error) {
	v, err := a.Value(name)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	if !ok {
		return false, mismatch(name, "bool", v)
	}
	return b, nil
}

// Color returns a required argument parsed as a colour.
func (a Args) Color(name string) (colour.Color, error) {
	v, err := a.Value(name)
	if err != nil {
		return colour.Color{}, err
	}
	return colour.FromValue(v)
}

// only fails on the first argument, in name order, that is not allowed.
func (a Args) only(allowed ...string) error {
	for _, name := range a.Names() {
		if !slices.Contains(allowed, name) {
			return invalid(name, "unexpected argument")
		}
	}
	return nil
}

func asNumber(name string, v value.Value) (float64, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, mismatch(name, "number", v)
	}
	return n, nil
}

func mismatch(name, expected string, got value.Value) error {
	return &TypeMismatchError{Name: name, Expected: expected, Got: got.Kind().String()}
}
