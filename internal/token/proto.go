package token

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jmylchreest/tincture/pkg/value"
)

// MaxDepth is the deepest container nesting a token may carry. A scalar has
// depth 0 and each enclosing sequence or mapping adds one.
const MaxDepth = 1000

// recursionLimit covers MaxDepth for protobuf's message nesting: a mapping
// level costs up to three messages (Value, Struct, fields entry).
const recursionLimit = 3*MaxDepth + 8

var errNoKind = errors.New("value has no kind set")

func errTooDeep() error {
	return fmt.Errorf("value nested deeper than %d levels", MaxDepth)
}

func toProto(v value.Value, depth int) (*structpb.Value, error) {
	switch v.Kind() {
	case value.KindBool:
		b, _ := v.AsBool()
		return structpb.NewBoolValue(b), nil
	case value.KindNumber:
		n, _ := v.AsNumber()
		return structpb.NewNumberValue(n), nil
	case value.KindString:
		s, _ := v.AsString()
		return structpb.NewStringValue(s), nil
	case value.KindSeq:
		if depth == MaxDepth {
			return nil, errTooDeep()
		}
		items, _ := v.AsSeq()
		list := &structpb.ListValue{Values: make([]*structpb.Value, len(items))}
		for i, item := range items {
			pb, err := toProto(item, depth+1)
			if err != nil {
				return nil, err
			}
			list.Values[i] = pb
		}
		return structpb.NewListValue(list), nil
	case value.KindMap:
		if depth == MaxDepth {
			return nil, errTooDeep()
		}
		m, _ := v.AsMap()
		st := &structpb.Struct{Fields: make(map[string]*structpb.Value, m.Len())}
		for k, item := range m.All() {
			pb, err := toProto(item, depth+1)
			if err != nil {
				return nil, err
			}
			st.Fields[k] = pb
		}
		return structpb.NewStructValue(st), nil
	}
	return structpb.NewNullValue(), nil
}

func fromProto(pb *structpb.Value, depth int) (value.Value, error) {
	switch pb.GetKind().(type) {
	case *structpb.Value_ListValue, *structpb.Value_StructValue:
		if depth == MaxDepth {
			return value.Value{}, errTooDeep()
		}
	}
	switch k := pb.GetKind().(type) {
	case *structpb.Value_NullValue:
		return value.Null(), nil
	case *structpb.Value_BoolValue:
		return value.FromBool(k.BoolValue), nil
	case *structpb.Value_NumberValue:
		return value.FromNumber(k.NumberValue), nil
	case *structpb.Value_StringValue:
		return value.FromString(k.StringValue), nil
	case *structpb.Value_ListValue:
		pbItems := k.ListValue.GetValues()
		items := make([]value.Value, len(pbItems))
		for i, item := range pbItems {
			v, err := fromProto(item, depth+1)
			if err != nil {
				return value.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return value.FromSeq(items...), nil
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		m := value.NewMap()
		for _, key := range slices.Sorted(maps.Keys(fields)) {
			v, err := fromProto(fields[key], depth+1)
			if err != nil {
				return value.Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			m.Set(key, v)
		}
		return value.FromMap(m), nil
	}
	return value.Value{}, errNoKind
}
