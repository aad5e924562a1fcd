package types

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// VariantKind identifies which kind of value a Variant holds.
//
//go:generate stringer -type=VariantKind -linecomment
type VariantKind int

const (
	// KindEmpty is the kind of the zero Variant. Staged against a key it
	// marks a deletion.
	KindEmpty VariantKind = iota // empty
	// KindBool holds a boolean.
	KindBool // bool
	// KindInt holds a signed 64-bit integer.
	KindInt // int
	// KindString holds UTF-8 text.
	KindString // string
	// KindBytes holds raw binary data, such as embedded picture data.
	KindBytes // bytes
	// KindList holds an ordered list of Variants.
	KindList // list
	// KindMap holds a string-keyed map of Variants.
	KindMap // map
)

// Variant is an immutable tagged union covering every value shape a
// structured property can carry: booleans, integers, text, binary data,
// ordered lists, and string-keyed maps of the same.
//
// The zero Variant is Empty. Constructors copy reference values on the
// way in and accessors copy them on the way out, so Variants can be
// shared freely without aliasing concerns.
type Variant struct {
	kind VariantKind
	v    any // bool | int64 | string | []byte | []Variant | VariantMap
}

// NewBool returns a Variant holding b.
func NewBool(b bool) Variant { return Variant{kind: KindBool, v: b} }

// NewInt returns a Variant holding i.
func NewInt(i int64) Variant { return Variant{kind: KindInt, v: i} }

// NewString returns a Variant holding s.
func NewString(s string) Variant { return Variant{kind: KindString, v: s} }

// NewBytes returns a Variant holding a copy of data.
func NewBytes(data []byte) Variant {
	return Variant{kind: KindBytes, v: slices.Clone(data)}
}

// NewList returns a Variant holding the given items in order.
func NewList(items ...Variant) Variant {
	return Variant{kind: KindList, v: slices.Clone(items)}
}

// NewMap returns a Variant holding a copy of m.
func NewMap(m VariantMap) Variant {
	return Variant{kind: KindMap, v: maps.Clone(m)}
}

// NewVariant converts a native Go value into a Variant, validating it
// recursively: every leaf must be a string, integer, boolean, byte
// slice, list, or string-keyed map of the same. nil converts to the
// Empty Variant. Anything else fails with InvalidValueTypeError;
// floating point values are rejected explicitly rather than silently
// degraded.
//
// Example:
//
//	picture, err := types.NewVariant(map[string]any{
//		"data":        pngBytes,
//		"mimeType":    "image/png",
//		"pictureType": "Front Cover",
//	})
func NewVariant(value any) (Variant, error) { //nolint:gocyclo // One arm per accepted input type
	switch v := value.(type) {
	case nil:
		return Variant{}, nil
	case Variant:
		return v, nil
	case bool:
		return NewBool(v), nil
	case int:
		return NewInt(int64(v)), nil
	case int8:
		return NewInt(int64(v)), nil
	case int16:
		return NewInt(int64(v)), nil
	case int32:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case uint:
		return NewVariant(uint64(v))
	case uint8:
		return NewInt(int64(v)), nil
	case uint16:
		return NewInt(int64(v)), nil
	case uint32:
		return NewInt(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Variant{}, &InvalidValueTypeError{Value: value, Reason: "integer overflows int64"}
		}
		return NewInt(int64(v)), nil
	case string:
		return NewString(v), nil
	case []byte:
		return NewBytes(v), nil
	case float32, float64:
		return Variant{}, &InvalidValueTypeError{Value: value, Reason: "floating point values are not representable"}
	case []string:
		items := make([]Variant, len(v))
		for i, s := range v {
			items[i] = NewString(s)
		}
		return Variant{kind: KindList, v: items}, nil
	case []Variant:
		return NewList(v...), nil
	case []VariantMap:
		items := make([]Variant, len(v))
		for i, m := range v {
			items[i] = NewMap(m)
		}
		return Variant{kind: KindList, v: items}, nil
	case []map[string]any:
		items := make([]Variant, len(v))
		for i, m := range v {
			item, err := NewVariant(m)
			if err != nil {
				return Variant{}, err
			}
			items[i] = item
		}
		return Variant{kind: KindList, v: items}, nil
	case []any:
		items := make([]Variant, len(v))
		for i, elem := range v {
			item, err := NewVariant(elem)
			if err != nil {
				return Variant{}, err
			}
			items[i] = item
		}
		return Variant{kind: KindList, v: items}, nil
	case VariantMap:
		return NewMap(v), nil
	case map[string]Variant:
		return NewMap(VariantMap(v)), nil
	case map[string]any:
		m := make(VariantMap, len(v))
		for key, elem := range v {
			item, err := NewVariant(elem)
			if err != nil {
				return Variant{}, err
			}
			m[key] = item
		}
		return Variant{kind: KindMap, v: m}, nil
	default:
		return Variant{}, &InvalidValueTypeError{Value: value, Reason: "unsupported type"}
	}
}

// Kind returns the kind of value held.
func (v Variant) Kind() VariantKind { return v.kind }

// IsEmpty reports whether the Variant holds no value.
func (v Variant) IsEmpty() bool { return v.kind == KindEmpty }

// Bool returns the held boolean. ok is false when the kind is not KindBool.
func (v Variant) Bool() (value, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.v.(bool), true
}

// Int returns the held integer. ok is false when the kind is not KindInt.
func (v Variant) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.v.(int64), true
}

// Text returns the held string. ok is false when the kind is not KindString.
func (v Variant) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.v.(string), true
}

// Bytes returns a copy of the held binary data. ok is false when the
// kind is not KindBytes.
func (v Variant) Bytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return slices.Clone(v.v.([]byte)), true
}

// List returns a copy of the held list. ok is false when the kind is not
// KindList.
func (v Variant) List() ([]Variant, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.v.([]Variant)), true
}

// Map returns a copy of the held map. ok is false when the kind is not
// KindMap.
func (v Variant) Map() (VariantMap, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return maps.Clone(v.v.(VariantMap)), true
}

// Value returns the native Go representation: nil, bool, int64, string,
// []byte, []any, or map[string]any. Lists and maps convert recursively.
// The result shares no storage with the Variant.
func (v Variant) Value() any {
	switch v.kind {
	case KindBool, KindInt, KindString:
		return v.v
	case KindBytes:
		return slices.Clone(v.v.([]byte))
	case KindList:
		items := v.v.([]Variant)
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item.Value()
		}
		return out
	case KindMap:
		m := v.v.(VariantMap)
		out := make(map[string]any, len(m))
		for key, item := range m {
			out[key] = item.Value()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether two Variants hold the same kind and value.
// Lists and maps compare recursively.
func (v Variant) Equal(other Variant) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindBool, KindInt, KindString:
		return v.v == other.v
	case KindBytes:
		return bytes.Equal(v.v.([]byte), other.v.([]byte))
	case KindList:
		return slices.EqualFunc(v.v.([]Variant), other.v.([]Variant), Variant.Equal)
	case KindMap:
		return maps.EqualFunc(v.v.(VariantMap), other.v.(VariantMap), Variant.Equal)
	default:
		return false
	}
}

// String returns a human-readable rendering for logs and error messages.
// Binary data renders as a length, not its contents.
func (v Variant) String() string {
	switch v.kind {
	case KindEmpty:
		return "<empty>"
	case KindBool:
		return strconv.FormatBool(v.v.(bool))
	case KindInt:
		return strconv.FormatInt(v.v.(int64), 10)
	case KindString:
		return v.v.(string)
	case KindBytes:
		return fmt.Sprintf("<%d bytes>", len(v.v.([]byte)))
	case KindList:
		items := v.v.([]Variant)
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		m := v.v.(VariantMap)
		parts := make([]string, 0, len(m))
		for _, key := range slices.Sorted(maps.Keys(m)) {
			parts = append(parts, key+": "+m[key].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

// MarshalJSON renders the display form: Empty as null, binary data as a
// base64 string, lists as arrays, maps as objects.
func (v Variant) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindEmpty:
		return []byte("null"), nil
	case KindBool, KindInt, KindString:
		return json.Marshal(v.v)
	case KindBytes:
		return json.Marshal(base64.StdEncoding.EncodeToString(v.v.([]byte)))
	case KindList:
		return json.Marshal(v.v.([]Variant))
	case KindMap:
		return json.Marshal(v.v.(VariantMap))
	default:
		return nil, fmt.Errorf("cannot marshal variant kind %d", int(v.kind))
	}
}

// UnmarshalJSON decodes the display form. Numbers must be integers.
// Binary data cannot be distinguished from text in this form and decodes
// as KindString.
func (v *Variant) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromJSONValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func fromJSONValue(raw any) (Variant, error) {
	switch val := raw.(type) {
	case nil:
		return Variant{}, nil
	case bool:
		return NewBool(val), nil
	case json.Number:
		i, err := strconv.ParseInt(val.String(), 10, 64)
		if err != nil {
			return Variant{}, &InvalidValueTypeError{Value: val.String(), Reason: "number is not an integer"}
		}
		return NewInt(i), nil
	case string:
		return NewString(val), nil
	case []any:
		items := make([]Variant, len(val))
		for i, elem := range val {
			item, err := fromJSONValue(elem)
			if err != nil {
				return Variant{}, err
			}
			items[i] = item
		}
		return Variant{kind: KindList, v: items}, nil
	case map[string]any:
		m := make(VariantMap, len(val))
		for key, elem := range val {
			item, err := fromJSONValue(elem)
			if err != nil {
				return Variant{}, err
			}
			m[key] = item
		}
		return Variant{kind: KindMap, v: m}, nil
	default:
		return Variant{}, &InvalidValueTypeError{Value: raw, Reason: "unsupported JSON value"}
	}
}

// VariantMap is one structured property entry: a string-keyed map of
// Variants, e.g. a single embedded picture with its data, mimeType and
// pictureType fields.
type VariantMap map[string]Variant

// Clone returns a copy of the map. Variants are immutable, so a shallow
// copy is a full copy.
func (m VariantMap) Clone() VariantMap {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// Equal reports whether two maps hold equal Variants under the same keys.
func (m VariantMap) Equal(other VariantMap) bool {
	return maps.EqualFunc(m, other, Variant.Equal)
}

// CloneVariantMaps copies a structured property value list.
func CloneVariantMaps(entries []VariantMap) []VariantMap {
	if entries == nil {
		return nil
	}
	out := make([]VariantMap, len(entries))
	for i, entry := range entries {
		out[i] = entry.Clone()
	}
	return out
}
