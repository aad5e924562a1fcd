package taglib

import (
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Variant is an alias to types.Variant.
// Re-exported from internal/types to keep the public API in one package.
type Variant = types.Variant

// VariantKind is an alias to types.VariantKind.
// Re-exported from internal/types to keep the public API in one package.
type VariantKind = types.VariantKind

// VariantMap is an alias to types.VariantMap.
// Re-exported from internal/types to keep the public API in one package.
type VariantMap = types.VariantMap

// Variant kinds, re-exported from internal/types.
const (
	KindEmpty  = types.KindEmpty
	KindBool   = types.KindBool
	KindInt    = types.KindInt
	KindString = types.KindString
	KindBytes  = types.KindBytes
	KindList   = types.KindList
	KindMap    = types.KindMap
)

// NewVariant converts a native Go value into a Variant, validating every
// leaf recursively. See types.NewVariant for the accepted types.
func NewVariant(value any) (Variant, error) { return types.NewVariant(value) }

// NewBool returns a boolean Variant.
func NewBool(b bool) Variant { return types.NewBool(b) }

// NewInt returns an integer Variant.
func NewInt(i int64) Variant { return types.NewInt(i) }

// NewString returns a string Variant.
func NewString(s string) Variant { return types.NewString(s) }

// NewBytes returns a binary Variant holding a copy of data.
func NewBytes(data []byte) Variant { return types.NewBytes(data) }

// NewList returns a list Variant of the given items.
func NewList(items ...Variant) Variant { return types.NewList(items...) }

// NewMap returns a map Variant holding a copy of m.
func NewMap(m VariantMap) Variant { return types.NewMap(m) }
