// Package engine installs an ops.Set into host template engines: Go's
// text/template and pongo2.
package engine

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tincture/internal/ops"
	"github.com/jmylchreest/tincture/pkg/value"
)

// Kind selects a host engine.
type Kind string

const (
	KindText   Kind = "text"
	KindPongo2 Kind = "pongo2"
)

// ParseKind validates an engine name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindText, KindPongo2:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown engine %q (expected %s or %s)", s, KindText, KindPongo2)
}

// Engine adapts an operation set to host engines.
type Engine struct {
	set    *ops.Set
	logger hclog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l hclog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine over set.
func New(set *ops.Set, opts ...Option) *Engine {
	e := &Engine{set: set, logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// callFilter converts the native input and runs the filter.
func (e *Engine) callFilter(name string, in any, args ops.Args) (value.Value, error) {
	f, ok := e.set.Filter(name)
	if !ok {
		return value.Value{}, fmt.Errorf("unknown filter %q", name)
	}
	v, err := value.FromNative(in)
	if err != nil {
		return value.Value{}, fmt.Errorf("%s: %w", name, err)
	}
	out, err := f(v, args)
	if err != nil {
		e.logger.Trace("filter failed", "filter", name, "error", err)
		return value.Value{}, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func (e *Engine) callFunction(name string, args ops.Args) (value.Value, error) {
	f, ok := e.set.Function(name)
	if !ok {
		return value.Value{}, fmt.Errorf("unknown function %q", name)
	}
	out, err := f(args)
	if err != nil {
		e.logger.Trace("function failed", "function", name, "error", err)
		return value.Value{}, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// pairArgs builds Args from alternating name, value pairs.
func pairArgs(op string, pairs []any) (ops.Args, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%s: arguments must be name, value pairs", op)
	}
	args := make(ops.Args, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("%s: argument name at position %d must be a string, got %T", op, i+1, pairs[i])
		}
		if _, dup := args[name]; dup {
			return nil, fmt.Errorf("%s: argument %q given twice", op, name)
		}
		v, err := value.FromNative(pairs[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: argument %q: %w", op, name, err)
		}
		args[name] = v
	}
	return args, nil
}
