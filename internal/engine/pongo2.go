package engine

import (
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/jmylchreest/tincture/internal/literal"
	"github.com/jmylchreest/tincture/internal/ops"
	"github.com/jmylchreest/tincture/pkg/value"
)

var (
	pongo2Once sync.Once
	pongo2Err  error
	pongo2Set  *ops.Set
)

// InstallPongo2 registers every filter of e into pongo2's global filter
// table. pongo2 filters are process-wide, so only the first call has any
// effect; later calls return the first call's result. Built-in filters with
// the same name (add, urlencode) are replaced. A call from an Engine over a
// different Set is logged at debug level and leaves the installed filters in
// place.
//
// The filter parameter is either a mapping or a "name=literal, ..." string:
//
//	{{ red|add:"hue=30" }}
//	{{ red|mix:mix_args }}
func (e *Engine) InstallPongo2() error {
	pongo2Once.Do(func() {
		pongo2Set = e.set
		for _, name := range e.set.FilterNames() {
			fn := e.pongo2Filter(name)
			var err error
			if pongo2.FilterExists(name) {
				err = pongo2.ReplaceFilter(name, fn)
			} else {
				err = pongo2.RegisterFilter(name, fn)
			}
			if err != nil {
				pongo2Err = fmt.Errorf("failed to register pongo2 filter %q: %w", name, err)
				return
			}
			e.logger.Debug("registered pongo2 filter", "filter", name)
		}
	})
	if pongo2Set != e.set {
		e.logger.Debug("pongo2 filters already installed from another operation set; keeping them")
	}
	return pongo2Err
}

func (e *Engine) pongo2Filter(name string) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		args, err := filterParam(param)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: fmt.Errorf("%s: %w", name, err)}
		}
		out, err := e.callFilter(name, in.Interface(), args)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(pongo2Native(out)), nil
	}
}

// filterParam reads a pongo2 filter parameter as operation arguments.
func filterParam(param *pongo2.Value) (ops.Args, error) {
	if param == nil || param.IsNil() {
		return ops.Args{}, nil
	}
	if param.IsString() {
		parsed, err := literal.ParseArgs(param.String(), nil)
		if err != nil {
			return nil, err
		}
		args := make(ops.Args, len(parsed))
		for _, a := range parsed {
			args[a.Name] = a.Value
		}
		return args, nil
	}

	v, err := value.FromNative(param.Interface())
	if err != nil {
		return nil, err
	}
	m, ok := v.AsMap()
	if !ok {
		return nil, fmt.Errorf("filter parameter must be a mapping or a string, got %s", v.Kind())
	}
	args := make(ops.Args, m.Len())
	for k, item := range m.All() {
		args[k] = item
	}
	return args, nil
}

// Pongo2Context returns the functions of e as pongo2 context entries. They
// take name, value pairs:
//
//	{{ css_rgb("color", red) }}
func (e *Engine) Pongo2Context() pongo2.Context {
	ctx := pongo2.Context{}
	for _, name := range e.set.FunctionNames() {
		ctx[name] = e.pongo2Function(name)
	}
	return ctx
}

func (e *Engine) pongo2Function(name string) func(args ...*pongo2.Value) (*pongo2.Value, error) {
	return func(args ...*pongo2.Value) (*pongo2.Value, error) {
		pairs := make([]any, len(args))
		for i, a := range args {
			pairs[i] = a.Interface()
		}
		opArgs, err := pairArgs(name, pairs)
		if err != nil {
			return nil, err
		}
		out, err := e.callFunction(name, opArgs)
		if err != nil {
			return nil, err
		}
		return pongo2.AsValue(pongo2Native(out)), nil
	}
}

// number prints without the fixed six decimals pongo2 uses for float64.
type number float64

func (n number) String() string { return value.FormatNumber(float64(n)) }

// pongo2Native is value.Value.Native with numbers wrapped in number.
func pongo2Native(v value.Value) any {
	switch v.Kind() {
	case value.KindNumber:
		n, _ := v.AsNumber()
		return number(n)
	case value.KindSeq:
		items, _ := v.AsSeq()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = pongo2Native(item)
		}
		return out
	case value.KindMap:
		m, _ := v.AsMap()
		out := make(map[string]any, m.Len())
		for k, item := range m.All() {
			out[k] = pongo2Native(item)
		}
		return out
	}
	return v.Native()
}
