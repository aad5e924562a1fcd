package types

import (
	"maps"
	"slices"
)

// Tag is the normalized well-known tag: exactly seven fields. A zero
// field denotes absence: engines normalize empty strings and zero
// integers away on read, and a zero value written through a patch clears
// the field. Serialization omits absent fields.
type Tag struct {
	Title   string `json:"title,omitempty"`
	Artist  string `json:"artist,omitempty"`
	Album   string `json:"album,omitempty"`
	Genre   string `json:"genre,omitempty"`
	Comment string `json:"comment,omitempty"`
	Year    int    `json:"year,omitempty"`
	Track   int    `json:"track,omitempty"`
}

// IsZero reports whether every field is absent.
func (t Tag) IsZero() bool { return t == Tag{} }

// Normalize maps values that denote absence onto the zero value:
// negative years and tracks become zero. Strings need no work, the
// empty string already is the absent form.
func (t Tag) Normalize() Tag {
	if t.Year < 0 {
		t.Year = 0
	}
	if t.Track < 0 {
		t.Track = 0
	}
	return t
}

// Field returns one field as a Variant: KindString or KindInt when
// present, Empty when absent.
func (t Tag) Field(field TagField) Variant {
	switch field {
	case FieldTitle:
		return stringField(t.Title)
	case FieldArtist:
		return stringField(t.Artist)
	case FieldAlbum:
		return stringField(t.Album)
	case FieldGenre:
		return stringField(t.Genre)
	case FieldComment:
		return stringField(t.Comment)
	case FieldYear:
		return intField(t.Year)
	case FieldTrack:
		return intField(t.Track)
	default:
		return Variant{}
	}
}

func stringField(s string) Variant {
	if s == "" {
		return Variant{}
	}
	return NewString(s)
}

func intField(i int) Variant {
	if i <= 0 {
		return Variant{}
	}
	return NewInt(int64(i))
}

// TagPatch is a partial tag update: only non-nil fields are applied.
// Pointing a field at its zero value clears it.
type TagPatch struct {
	Title   *string
	Artist  *string
	Album   *string
	Genre   *string
	Comment *string
	Year    *int
	Track   *int
}

// IsZero reports whether the patch carries no fields.
func (p TagPatch) IsZero() bool {
	return p.Title == nil && p.Artist == nil && p.Album == nil &&
		p.Genre == nil && p.Comment == nil && p.Year == nil && p.Track == nil
}

// Apply merges the patch into t and returns the normalized result.
func (p TagPatch) Apply(t Tag) Tag {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Artist != nil {
		t.Artist = *p.Artist
	}
	if p.Album != nil {
		t.Album = *p.Album
	}
	if p.Genre != nil {
		t.Genre = *p.Genre
	}
	if p.Comment != nil {
		t.Comment = *p.Comment
	}
	if p.Year != nil {
		t.Year = *p.Year
	}
	if p.Track != nil {
		t.Track = *p.Track
	}
	return t.Normalize()
}

// SetField points one patch field at a value staged as a Variant:
// Empty clears the field, KindString fills a text field, KindInt fills
// year or track. Values are assumed normalized (stage-time validation).
func (p *TagPatch) SetField(field TagField, value Variant) {
	switch field {
	case FieldTitle:
		p.Title = patchString(value)
	case FieldArtist:
		p.Artist = patchString(value)
	case FieldAlbum:
		p.Album = patchString(value)
	case FieldGenre:
		p.Genre = patchString(value)
	case FieldComment:
		p.Comment = patchString(value)
	case FieldYear:
		p.Year = patchInt(value)
	case FieldTrack:
		p.Track = patchInt(value)
	}
}

func patchString(v Variant) *string {
	s, _ := v.Text() // Empty yields "", the clearing form
	return &s
}

func patchInt(v Variant) *int {
	n, _ := v.Int() // Empty yields 0, the clearing form
	i := int(n)
	return &i
}

// PropertyMap maps free-form property names to ordered, non-empty lists
// of string values. A key with no values is never present: empty lists
// are pruned whenever maps are merged or stored.
type PropertyMap map[string][]string

// Clone returns a deep copy.
func (m PropertyMap) Clone() PropertyMap {
	if m == nil {
		return nil
	}
	out := make(PropertyMap, len(m))
	for key, values := range m {
		out[key] = slices.Clone(values)
	}
	return out
}

// Prune removes keys whose value lists are empty, in place, and returns m.
func (m PropertyMap) Prune() PropertyMap {
	for key, values := range m {
		if len(values) == 0 {
			delete(m, key)
		}
	}
	return m
}

// Merge returns the result of applying other over m: the result starts
// empty when replaceAll is set, otherwise from a copy of m; every key in
// other then replaces its full value list, and empty lists are pruned.
// Neither input is modified.
func (m PropertyMap) Merge(other PropertyMap, replaceAll bool) PropertyMap {
	var out PropertyMap
	if replaceAll || m == nil {
		out = make(PropertyMap, len(other))
	} else {
		out = m.Clone()
	}
	for key, values := range other {
		out[key] = slices.Clone(values)
	}
	return out.Prune()
}

// Equal reports whether two maps hold the same value lists.
func (m PropertyMap) Equal(other PropertyMap) bool {
	return maps.EqualFunc(m, other, slices.Equal[[]string])
}

// Keys returns the property names in sorted order.
func (m PropertyMap) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}
