package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// FromNative converts plain Go data, as produced by JSON or YAML decoders
// and template engines, into a Value. Native maps are walked in sorted key
// order so the result does not depend on Go's map iteration order.
func FromNative(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case float64:
		return FromNumber(t), nil
	case int:
		return FromNumber(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return FromNumber(n), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromNative(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return Value{kind: KindSeq, seq: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		m := NewMap()
		for _, k := range keys {
			v, err := FromNative(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, v)
		}
		return Value{kind: KindMap, m: m}, nil
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return Null(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromNative(rv.Elem().Interface())
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromNumber(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return FromNumber(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return FromNumber(rv.Float()), nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			v, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return Value{kind: KindSeq, seq: items}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		native := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			native[iter.Key().String()] = iter.Value().Interface()
		}
		return FromNative(native)
	}
	return Value{}, fmt.Errorf("unsupported type %s", rv.Type())
}

// Native converts v into plain Go data: nil, bool, float64, string, []any
// or map[string]any.
func (v Value) Native() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindSeq:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Native()
		}
		return out
	case KindMap:
		out := make(map[string]any, v.m.Len())
		for k, item := range v.m.All() {
			out[k] = item.Native()
		}
		return out
	}
	return nil
}

// MarshalJSON encodes v as JSON, keeping mapping insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if math.IsInf(v.n, 0) || math.IsNaN(v.n) {
			return fmt.Errorf("cannot encode %v as JSON", v.n)
		}
		buf.WriteString(FormatNumber(v.n))
	case KindString:
		s, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(s)
	case KindSeq:
		buf.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		i := 0
		for k, item := range v.m.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := item.writeJSON(buf); err != nil {
				return err
			}
			i++
		}
		buf.WriteByte('}')
	}
	return nil
}
