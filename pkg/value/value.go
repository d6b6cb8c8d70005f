// Package value defines Value, the tagged union exchanged between a host
// templating engine and every tincture filter and function.
//
// A Value is one of null, bool, number, string, an ordered sequence of
// Values, or a mapping from string keys to Values that remembers insertion
// order. Values are immutable once constructed; the zero Value is null.
package value

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSeq
	KindMap
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindSeq:    "sequence",
	KindMap:    "mapping",
}

// String returns the kind's name as used in error messages.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a template value.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	seq  []Value
	m    *Map
}

// Null returns the null Value.
func Null() Value { return Value{} }

// FromBool wraps a boolean.
func FromBool(b bool) Value { return Value{kind: KindBool, b: b} }

// FromNumber wraps a number.
func FromNumber(n float64) Value { return Value{kind: KindNumber, n: n} }

// FromString wraps a string.
func FromString(s string) Value { return Value{kind: KindString, s: s} }

// FromSeq builds a sequence. Calling it with no arguments yields an empty
// sequence, not null.
func FromSeq(items ...Value) Value {
	seq := make([]Value, len(items))
	copy(seq, items)
	return Value{kind: KindSeq, seq: seq}
}

// FromMap wraps a mapping. A nil map yields an empty mapping. The map is
// copied so later writes to m are not observed.
func FromMap(m *Map) Value {
	return Value{kind: KindMap, m: m.clone()}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsSeq returns a copy of the items held by v.
func (v Value) AsSeq() ([]Value, bool) {
	if v.kind != KindSeq {
		return nil, false
	}
	return slices.Clone(v.seq), true
}

// AsMap returns the mapping held by v. The returned Map must not be modified.
func (v Value) AsMap() (*Map, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Equal reports structural equality. Mappings compare as key sets, so two
// mappings holding the same entries in a different order are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindSeq:
		return slices.EqualFunc(v.seq, o.seq, Value.Equal)
	case KindMap:
		if v.m.Len() != o.m.Len() {
			return false
		}
		for k, item := range v.m.All() {
			other, ok := o.m.Get(k)
			if !ok || !item.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v as text. Strings render raw at the top level and quoted
// inside containers; mappings render in insertion order as {k: v, ...}.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb, true)
	return sb.String()
}

func (v Value) write(sb *strings.Builder, top bool) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(FormatNumber(v.n))
	case KindString:
		if top {
			sb.WriteString(v.s)
		} else {
			sb.WriteString(strconv.Quote(v.s))
		}
	case KindSeq:
		sb.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.write(sb, false)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		i := 0
		for k, item := range v.m.All() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			item.write(sb, false)
			i++
		}
		sb.WriteByte('}')
	}
}

// FormatNumber returns the shortest decimal text for n without an exponent.
func FormatNumber(n float64) string {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Map is a string-keyed mapping that remembers insertion order.
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap returns an empty mapping.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Set stores v under key. Replacing an existing key keeps its position.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All iterates entries in insertion order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Sorted returns a copy with keys in lexicographic order.
func (m *Map) Sorted() *Map {
	out := m.clone()
	slices.Sort(out.keys)
	return out
}

func (m *Map) clone() *Map {
	out := &Map{vals: make(map[string]Value, m.Len())}
	if m == nil {
		return out
	}
	out.keys = slices.Clone(m.keys)
	for k, v := range m.vals {
		out.vals[k] = v
	}
	return out
}
