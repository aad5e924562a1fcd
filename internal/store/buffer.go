package store

import (
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Buffer is the staged write set: resolved keys mapped to validated,
// normalized pending values. Nothing in the buffer reaches the engine
// before a save partitions it; deletions are staged as Empty Variants.
type Buffer struct {
	entries map[types.Key]types.Variant
}

// Len reports how many keys have staged values.
func (b *Buffer) Len() int { return len(b.entries) }

// Stage validates value against the key's class and records it,
// replacing any previous value for the same key. The staged form is
// returned. Validation failures leave the buffer untouched.
func (b *Buffer) Stage(key types.Key, value types.Variant) (types.Variant, error) {
	normalized, err := Normalize(key, value)
	if err != nil {
		return types.Variant{}, err
	}
	if b.entries == nil {
		b.entries = make(map[types.Key]types.Variant)
	}
	b.entries[key] = normalized
	return normalized, nil
}

// Get returns the staged value for key. ok distinguishes "staged as
// deleted" (Empty, true) from "not staged at all" (Empty, false).
func (b *Buffer) Get(key types.Key) (types.Variant, bool) {
	v, ok := b.entries[key]
	return v, ok
}

// Discard drops every staged entry.
func (b *Buffer) Discard() { b.entries = nil }

// Normalize validates a raw Variant against a key class and returns the
// canonical staged form:
//
//   - tag text fields take KindString; the empty string stages a deletion
//   - year and track take a non-negative KindInt; zero stages a deletion
//   - properties take a KindList of KindString (standard) or of KindMap
//     (structured); scalars wrap into one-element lists and an empty
//     list stages a deletion
//   - Empty always stages a deletion for tag and property keys
//   - audio fields always fail with ReadOnlyFieldError
func Normalize(key types.Key, value types.Variant) (types.Variant, error) {
	switch key.Class() {
	case types.ClassAudio:
		return types.Variant{}, &types.ReadOnlyFieldError{Field: key.Name()}
	case types.ClassTag:
		return normalizeTag(key.TagField(), value)
	case types.ClassProperty:
		return normalizeProperty(key.Name(), value)
	default:
		return types.Variant{}, &types.InvalidKeyError{Identifier: key.Name(), Reason: "unresolved key"}
	}
}

func normalizeTag(field types.TagField, value types.Variant) (types.Variant, error) {
	if value.IsEmpty() {
		return value, nil
	}
	if field.IsNumeric() {
		n, ok := value.Int()
		if !ok {
			return types.Variant{}, &types.InvalidValueTypeError{
				Key: field.String(), Value: value.Value(), Reason: "expected an integer",
			}
		}
		if n < 0 {
			return types.Variant{}, &types.InvalidValueTypeError{
				Key: field.String(), Value: n, Reason: "expected a non-negative integer",
			}
		}
		if n == 0 {
			return types.Variant{}, nil // zero denotes absence
		}
		return value, nil
	}
	s, ok := value.Text()
	if !ok {
		return types.Variant{}, &types.InvalidValueTypeError{
			Key: field.String(), Value: value.Value(), Reason: "expected a string",
		}
	}
	if s == "" {
		return types.Variant{}, nil
	}
	return value, nil
}

func normalizeProperty(name string, value types.Variant) (types.Variant, error) {
	switch value.Kind() {
	case types.KindEmpty:
		return value, nil
	case types.KindString, types.KindMap:
		return types.NewList(value), nil
	case types.KindList:
		items, _ := value.List()
		if len(items) == 0 {
			return types.Variant{}, nil // an empty list deletes the key
		}
		want := items[0].Kind()
		if want != types.KindString && want != types.KindMap {
			return types.Variant{}, &types.InvalidValueTypeError{
				Key: name, Value: items[0].Value(), Reason: "property elements must be strings or maps",
			}
		}
		for _, item := range items {
			if item.Kind() != want {
				return types.Variant{}, &types.InvalidValueTypeError{
					Key: name, Value: item.Value(), Reason: "property elements must all be " + want.String() + "s",
				}
			}
		}
		return value, nil
	default:
		return types.Variant{}, &types.InvalidValueTypeError{
			Key: name, Value: value.Value(), Reason: "properties take strings, maps, or lists of them",
		}
	}
}

// Staged is a partitioned mutation buffer, grouped by destination in
// the order the engine must receive them: standard properties first,
// structured properties second, tag fields last.
type Staged struct {
	// Properties holds the standard group; an empty list marks a deletion.
	Properties types.PropertyMap
	// Complex holds the structured group; a nil list marks a deletion.
	Complex map[string][]types.VariantMap
	// Tag holds the tag group.
	Tag types.TagPatch
}

// Empty reports whether no group carries anything.
func (s Staged) Empty() bool {
	return len(s.Properties) == 0 && len(s.Complex) == 0 && s.Tag.IsZero()
}

// ComplexKeys returns the structured keys the partition will write.
func (s Staged) ComplexKeys() []string {
	keys := make([]string, 0, len(s.Complex))
	for key := range s.Complex {
		keys = append(keys, key)
	}
	return keys
}

// HasPropertyDeletes reports whether any property key is staged for
// deletion, which is the one case where partitioning needs the known
// structured-key list.
func (b *Buffer) HasPropertyDeletes() bool {
	for key, value := range b.entries {
		if key.Class() == types.ClassProperty && value.IsEmpty() {
			return true
		}
	}
	return false
}

// Partition splits the staged entries into the three engine groups
// without clearing the buffer, so a failed save can be retried. A
// deletion staged against a property name routes to the structured
// group when knownComplex recognizes the name, to the standard group
// otherwise. Value-bearing entries declare their own group by shape.
func (b *Buffer) Partition(knownComplex func(string) bool) Staged {
	staged := Staged{}
	for key, value := range b.entries {
		switch key.Class() {
		case types.ClassTag:
			staged.Tag.SetField(key.TagField(), value)
		case types.ClassProperty:
			name := key.Name()
			if value.IsEmpty() {
				if knownComplex != nil && knownComplex(name) {
					staged.complexEntry(name, nil)
				} else {
					staged.propertyEntry(name, []string{})
				}
				continue
			}
			items, _ := value.List()
			if items[0].Kind() == types.KindMap {
				entries := make([]types.VariantMap, len(items))
				for i, item := range items {
					entries[i], _ = item.Map()
				}
				staged.complexEntry(name, entries)
			} else {
				values := make([]string, len(items))
				for i, item := range items {
					values[i], _ = item.Text()
				}
				staged.propertyEntry(name, values)
			}
		}
	}
	return staged
}

func (s *Staged) propertyEntry(name string, values []string) {
	if s.Properties == nil {
		s.Properties = make(types.PropertyMap)
	}
	s.Properties[name] = values
}

func (s *Staged) complexEntry(name string, entries []types.VariantMap) {
	if s.Complex == nil {
		s.Complex = make(map[string][]types.VariantMap)
	}
	s.Complex[name] = entries
}
