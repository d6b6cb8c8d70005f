package registry

import (
	"fmt"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/literal"
	"github.com/jmylchreest/tincture/internal/ops"
	"github.com/jmylchreest/tincture/pkg/value"
)

// Fixtures returns the named values example literals may refer to.
func Fixtures() literal.Env {
	return literal.Env{
		"red":         hsla(347, 0.87, 0.44, 1),
		"base":        hsla(220, 0.23, 0.95, 1),
		"some_object": pairs("a", 1, "b", 2),
	}
}

func hsla(h, s, l, a float64) value.Value {
	return pairs("h", h, "s", s, "l", l, "a", a)
}

func pairs(kv ...any) value.Value {
	m := value.NewMap()
	for i := 0; i+1 < len(kv); i += 2 {
		switch n := kv[i+1].(type) {
		case int:
			m.Set(kv[i].(string), value.FromNumber(float64(n)))
		case float64:
			m.Set(kv[i].(string), value.FromNumber(n))
		}
	}
	return value.FromMap(m)
}

// Render formats an operation result the way examples record it: colours
// as hex, anything else through value.Value.String.
func Render(v value.Value) string {
	if m, ok := v.AsMap(); ok {
		if _, hasHex := m.Get("hex"); hasHex {
			if c, err := colour.FromValue(v); err == nil {
				return c.String()
			}
		}
	}
	return v.String()
}

// Run executes ex against the operation d describes and returns the
// rendered result.
func Run(set *ops.Set, d Descriptor, ex Example) (string, error) {
	env := Fixtures()
	args := make(ops.Args, len(ex.Args))
	for _, a := range ex.Args {
		v, err := literal.Parse(a.Text, env)
		if err != nil {
			return "", fmt.Errorf("failed to parse argument %s: %w", a.Name, err)
		}
		args[a.Name] = v
	}

	var (
		out value.Value
		err error
	)
	switch d.Kind {
	case KindFilter:
		f, ok := set.Filter(d.Name)
		if !ok {
			return "", fmt.Errorf("filter %q is not registered", d.Name)
		}
		in, perr := literal.Parse(ex.Input, env)
		if perr != nil {
			return "", fmt.Errorf("failed to parse input: %w", perr)
		}
		out, err = f(in, args)
	case KindFunction:
		f, ok := set.Function(d.Name)
		if !ok {
			return "", fmt.Errorf("function %q is not registered", d.Name)
		}
		out, err = f(args)
	default:
		return "", fmt.Errorf("unknown kind %q", d.Kind)
	}
	if err != nil {
		return "", err
	}
	return Render(out), nil
}

// Failure describes an example that did not reproduce.
type Failure struct {
	Kind  Kind
	Name  string
	Index int
	Want  string
	Got   string
	Err   error
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("%s %s example %d: %v", f.Kind, f.Name, f.Index+1, f.Err)
	}
	return fmt.Sprintf("%s %s example %d: got %q, want %q", f.Kind, f.Name, f.Index+1, f.Got, f.Want)
}

// Verify runs every catalog example against set. It also reports catalog
// entries missing from set and set operations missing from the catalog.
func Verify(set *ops.Set) []Failure {
	var failures []Failure
	for _, d := range All() {
		for i, ex := range d.Examples {
			got, err := Run(set, d, ex)
			if err != nil || got != ex.Output {
				failures = append(failures, Failure{
					Kind: d.Kind, Name: d.Name, Index: i,
					Want: ex.Output, Got: got, Err: err,
				})
			}
		}
	}

	for _, name := range set.FilterNames() {
		if _, ok := Lookup(KindFilter, name); !ok {
			failures = append(failures, Failure{Kind: KindFilter, Name: name, Err: fmt.Errorf("not documented")})
		}
	}
	for _, name := range set.FunctionNames() {
		if _, ok := Lookup(KindFunction, name); !ok {
			failures = append(failures, Failure{Kind: KindFunction, Name: name, Err: fmt.Errorf("not documented")})
		}
	}
	return failures
}
