package ops

import (
	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/pkg/value"
)

// Function is an operation invoked as `name(args...)`.
type Function func(args Args) (value.Value, error)

// ifFunc selects t or f. Both branches arrive already evaluated.
func ifFunc(args Args) (value.Value, error) {
	cond, err := args.Bool("cond")
	if err != nil {
		return value.Value{}, err
	}
	t, err := args.Value("t")
	if err != nil {
		return value.Value{}, err
	}
	f, err := args.Value("f")
	if err != nil {
		return value.Value{}, err
	}
	if err := args.only("cond", "t", "f"); err != nil {
		return value.Value{}, err
	}
	if cond {
		return t, nil
	}
	return f, nil
}

// object collects every argument into a mapping with sorted keys.
func object(args Args) (value.Value, error) {
	m := value.NewMap()
	for name, v := range args {
		m.Set(name, v)
	}
	return value.FromMap(m.Sorted()), nil
}

// cssFunc formats its "color" argument in the given CSS form.
func cssFunc(format colour.Format) Function {
	return func(args Args) (value.Value, error) {
		c, err := args.Color("color")
		if err != nil {
			return value.Value{}, err
		}
		if err := args.only("color"); err != nil {
			return value.Value{}, err
		}
		return value.FromString(c.Format(format)), nil
	}
}

func (s *Set) urlencodeFunc(args Args) (value.Value, error) {
	v, err := args.Value("value")
	if err != nil {
		return value.Value{}, err
	}
	if err := args.only("value"); err != nil {
		return value.Value{}, err
	}
	return s.encode(v)
}
