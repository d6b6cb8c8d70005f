package engine

import (
	"fmt"
	"text/template"

	"github.com/jmylchreest/tincture/pkg/value"
)

// textNames maps operation names that collide with text/template keywords.
var textNames = map[string]string{
	"if": "ternary",
}

func textName(op string) string {
	if alias, ok := textNames[op]; ok {
		return alias
	}
	return op
}

// FuncMap exposes every operation as a text/template function.
//
// Filters take name, value pairs followed by the piped input:
//
//	{{ .red | add "hue" 30 }}
//
// Functions take name, value pairs:
//
//	{{ css_rgb "color" .red }}
//
// A name that is both a filter and a function (urlencode) dispatches on the
// number of arguments. The if function is exposed as ternary.
func (e *Engine) FuncMap() template.FuncMap {
	funcs := template.FuncMap{}
	for _, name := range e.set.FilterNames() {
		funcs[textName(name)] = e.textFunc(name)
	}
	for _, name := range e.set.FunctionNames() {
		if _, isFilter := e.set.Filter(name); isFilter {
			continue
		}
		funcs[textName(name)] = e.textFunc(name)
	}
	e.logger.Debug("built text/template func map", "entries", len(funcs))
	return funcs
}

func (e *Engine) textFunc(name string) func(args ...any) (any, error) {
	_, isFilter := e.set.Filter(name)
	_, isFunction := e.set.Function(name)

	return func(args ...any) (any, error) {
		piped := len(args)%2 == 1
		switch {
		case piped && isFilter:
			in := args[len(args)-1]
			opArgs, err := pairArgs(name, args[:len(args)-1])
			if err != nil {
				return nil, err
			}
			return native(e.callFilter(name, in, opArgs))
		case !piped && isFunction:
			opArgs, err := pairArgs(name, args)
			if err != nil {
				return nil, err
			}
			return native(e.callFunction(name, opArgs))
		case isFilter:
			return nil, fmt.Errorf("%s: missing piped input", name)
		default:
			return nil, fmt.Errorf("%s: arguments must be name, value pairs", name)
		}
	}
}

func native(v value.Value, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v.Native(), nil
}
