// Package ops implements tincture's template filters and functions over
// value.Value arguments.
package ops

import (
	"slices"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/token"
)

// Set is an immutable table of filters and functions. It is safe for
// concurrent use.
type Set struct {
	codec *token.Codec

	filters       map[string]Filter
	filterNames   []string
	functions     map[string]Function
	functionNames []string
}

// Option configures a Set.
type Option func(*Set)

// WithCodec sets the codec used by urlencode and urldecode.
func WithCodec(c *token.Codec) Option {
	return func(s *Set) {
		if c != nil {
			s.codec = c
		}
	}
}

// NewSet builds the operation table.
func NewSet(opts ...Option) *Set {
	s := &Set{codec: token.NewCodec()}
	for _, opt := range opts {
		opt(s)
	}

	s.addFilter("add", adjust(1))
	s.addFilter("sub", adjust(-1))
	s.addFilter("mod", mod)
	s.addFilter("mix", mix)
	s.addFilter("trunc", trunc)
	s.addFilter("urlencode", s.urlencodeFilter)
	s.addFilter("urldecode", s.urldecodeFilter)

	s.addFunction("if", ifFunc)
	s.addFunction("object", object)
	s.addFunction("css_rgb", cssFunc(colour.FormatRGB))
	s.addFunction("css_rgba", cssFunc(colour.FormatRGBA))
	s.addFunction("css_hsl", cssFunc(colour.FormatHSL))
	s.addFunction("css_hsla", cssFunc(colour.FormatHSLA))
	s.addFunction("urlencode", s.urlencodeFunc)
	return s
}

func (s *Set) addFilter(name string, f Filter) {
	if s.filters == nil {
		s.filters = make(map[string]Filter)
	}
	s.filters[name] = f
	s.filterNames = append(s.filterNames, name)
}

func (s *Set) addFunction(name string, f Function) {
	if s.functions == nil {
		s.functions = make(map[string]Function)
	}
	s.functions[name] = f
	s.functionNames = append(s.functionNames, name)
}

// Filter looks up a filter by name.
func (s *Set) Filter(name string) (Filter, bool) {
	f, ok := s.filters[name]
	return f, ok
}

// Function looks up a function by name.
func (s *Set) Function(name string) (Function, bool) {
	f, ok := s.functions[name]
	return f, ok
}

// FilterNames returns filter names in registration order.
func (s *Set) FilterNames() []string { return slices.Clone(s.filterNames) }

// FunctionNames returns function names in registration order.
func (s *Set) FunctionNames() []string { return slices.Clone(s.functionNames) }
