// Package registry holds the self-describing catalog of tincture's filters
// and functions. Every example in the catalog is executable: Verify runs
// them against a live operation set.
package registry

import (
	"slices"
	"strings"
	"sync"
)

// Kind distinguishes filters from functions.
type Kind string

const (
	KindFilter   Kind = "filter"
	KindFunction Kind = "function"
)

// Arg is one example argument as literal text.
type Arg struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// Example is a literal invocation and its expected rendered output. Input
// is only set for filters.
type Example struct {
	Input  string `json:"input,omitempty" yaml:"input,omitempty"`
	Args   []Arg  `json:"args" yaml:"args"`
	Output string `json:"output" yaml:"output"`
}

// Descriptor documents one operation.
type Descriptor struct {
	Kind        Kind      `json:"kind" yaml:"kind"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Examples    []Example `json:"examples" yaml:"examples"`
}

// Call renders ex as template-style source text, for example
// `red | add(hue=30)` or `css_rgb(color=red)`.
func (ex Example) Call(name string) string {
	var sb strings.Builder
	if ex.Input != "" {
		sb.WriteString(ex.Input)
		sb.WriteString(" | ")
	}
	sb.WriteString(name)
	if len(ex.Args) > 0 || ex.Input == "" {
		sb.WriteByte('(')
		for i, a := range ex.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Name)
			sb.WriteByte('=')
			sb.WriteString(a.Text)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func (d Descriptor) clone() Descriptor {
	d.Examples = slices.Clone(d.Examples)
	for i := range d.Examples {
		d.Examples[i].Args = slices.Clone(d.Examples[i].Args)
	}
	return d
}

type catalog struct {
	filters   []Descriptor
	functions []Descriptor
}

var load = sync.OnceValue(func() catalog {
	return catalog{filters: filterTable(), functions: functionTable()}
})

// Filters returns the filter descriptors in documentation order.
func Filters() []Descriptor { return cloneAll(load().filters) }

// Functions returns the function descriptors in documentation order.
func Functions() []Descriptor { return cloneAll(load().functions) }

// All returns filters followed by functions.
func All() []Descriptor {
	return append(Filters(), Functions()...)
}

// Lookup finds a descriptor by kind and name.
func Lookup(kind Kind, name string) (Descriptor, bool) {
	table := load().filters
	if kind == KindFunction {
		table = load().functions
	}
	for _, d := range table {
		if d.Name == name {
			return d.clone(), true
		}
	}
	return Descriptor{}, false
}

func cloneAll(ds []Descriptor) []Descriptor {
	out := make([]Descriptor, len(ds))
	for i, d := range ds {
		out[i] = d.clone()
	}
	return out
}
