package taglib

import (
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Tag is an alias to types.Tag.
// Re-exported from internal/types to keep the public API in one package.
type Tag = types.Tag

// TagPatch is an alias to types.TagPatch.
// Re-exported from internal/types to keep the public API in one package.
type TagPatch = types.TagPatch

// PropertyMap is an alias to types.PropertyMap.
// Re-exported from internal/types to keep the public API in one package.
type PropertyMap = types.PropertyMap

// TagFields returns the seven well-known tag fields in canonical order.
func TagFields() []TagField { return types.TagFields() }

// AudioFields returns the four audio properties fields in canonical order.
func AudioFields() []AudioField { return types.AudioFields() }
