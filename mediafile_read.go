package taglib

import (
	"slices"

	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Fetch returns the current value for identifier, resolved with
// ResolveKey. Staged mutations win over committed data; a staged
// deletion reads as an empty Variant with no error. For multi-valued
// properties the first value is returned; use FetchAll for the list.
//
// Fails with *KeyNotFoundError when no source holds the key, and with
// *InvalidKeyError when the identifier cannot be resolved.
func (f *MediaFile) Fetch(identifier string) (Variant, error) {
	return f.fetch(identifier, false)
}

// FetchAll is Fetch without the collapse to the first value: property
// and complex property keys always return the full list form.
func (f *MediaFile) FetchAll(identifier string) (Variant, error) {
	return f.fetch(identifier, true)
}

// FetchDefault is Fetch, except a missing key returns def (converted
// with NewVariant) instead of failing with *KeyNotFoundError.
func (f *MediaFile) FetchDefault(identifier string, def any) (Variant, error) {
	key, err := types.ResolveKey(identifier)
	if err != nil {
		return Variant{}, err
	}
	value, found, err := f.lookup(key, false)
	if err != nil {
		return Variant{}, err
	}
	if !found {
		return types.NewVariant(def)
	}
	return value, nil
}

func (f *MediaFile) fetch(identifier string, listForm bool) (Variant, error) {
	key, err := types.ResolveKey(identifier)
	if err != nil {
		return Variant{}, err
	}
	value, found, err := f.lookup(key, listForm)
	if err != nil {
		return Variant{}, err
	}
	if !found {
		return Variant{}, &KeyNotFoundError{Key: key.String()}
	}
	return value, nil
}

// Access resolves a dynamic accessor name of the form (all_)?(name)(=)?
// and performs the access: a trailing "=" assigns args[0] to the mangled
// property and returns the staged value, the "all_" prefix selects the
// list form on read, and a plain name reads the first value. Unlike
// Fetch, a read of a missing key returns an empty Variant, not an error.
//
//	file.Access("musicbrainz__album_id") // reads MUSICBRAINZ_ALBUMID
//	file.Access("genre=", "Jazz")        // stages GENRE = ["Jazz"]
func (f *MediaFile) Access(name string, args ...any) (Variant, error) {
	accessor, err := types.ResolveAccessor(name)
	if err != nil {
		return Variant{}, err
	}
	if accessor.Assign {
		if len(args) != 1 {
			return Variant{}, &InvalidKeyError{Identifier: name, Reason: "assignment takes exactly one value"}
		}
		return f.stage(accessor.Key, args[0])
	}
	if len(args) != 0 {
		return Variant{}, &InvalidKeyError{Identifier: name, Reason: "read access takes no value"}
	}
	value, _, err := f.lookup(accessor.Key, accessor.All)
	return value, err
}

// lookup finds the current value for a resolved key: the mutation buffer
// first, then the cache, fetching from the engine only while the store
// is open. A staged deletion counts as found with an empty value, which
// is distinct from not found at all.
func (f *MediaFile) lookup(key types.Key, listForm bool) (Variant, bool, error) {
	switch key.Class() {
	case types.ClassAudio:
		if f.audio == nil {
			return Variant{}, false, nil
		}
		return f.audio.Field(key.AudioField()), true, nil

	case types.ClassTag:
		if staged, ok := f.buffer.Get(key); ok {
			return staged, true, nil
		}
		tag, present, err := f.cache.Tag(f.engine)
		if err != nil || !present {
			return Variant{}, false, err
		}
		value := tag.Field(key.TagField())
		if value.IsEmpty() {
			return Variant{}, false, nil
		}
		return value, true, nil

	case types.ClassProperty:
		if staged, ok := f.buffer.Get(key); ok {
			if staged.IsEmpty() {
				return Variant{}, true, nil
			}
			return collapse(staged, listForm), true, nil
		}
		return f.lookupProperty(key.Name(), listForm)
	}
	return Variant{}, false, nil
}

// lookupProperty serves a property name from the standard map, falling
// through to the structured source on a miss.
func (f *MediaFile) lookupProperty(name string, listForm bool) (Variant, bool, error) {
	props, present, err := f.cache.Properties(f.engine)
	if err != nil {
		return Variant{}, false, err
	}
	if present {
		if values, ok := props[name]; ok {
			if listForm {
				return stringListVariant(values), true, nil
			}
			return types.NewString(values[0]), true, nil
		}
	}
	entries, present, err := f.cache.Complex(f.engine, name)
	if err != nil || !present {
		return Variant{}, false, err
	}
	if listForm {
		return complexListVariant(entries), true, nil
	}
	return types.NewMap(entries[0]), true, nil
}

// collapse reduces a canonical staged list to its first element unless
// the list form was requested.
func collapse(value Variant, listForm bool) Variant {
	if listForm {
		return value
	}
	items, ok := value.List()
	if !ok || len(items) == 0 {
		return value
	}
	return items[0]
}

func stringListVariant(values []string) Variant {
	items := make([]Variant, len(values))
	for i, v := range values {
		items[i] = types.NewString(v)
	}
	return types.NewList(items...)
}

func complexListVariant(entries []types.VariantMap) Variant {
	items := make([]Variant, len(entries))
	for i, entry := range entries {
		items[i] = types.NewMap(entry)
	}
	return types.NewList(items...)
}

// Title returns the title tag field, or "" when absent.
func (f *MediaFile) Title() (string, error) { return f.tagText(types.FieldTitle) }

// Artist returns the artist tag field, or "" when absent.
func (f *MediaFile) Artist() (string, error) { return f.tagText(types.FieldArtist) }

// Album returns the album tag field, or "" when absent.
func (f *MediaFile) Album() (string, error) { return f.tagText(types.FieldAlbum) }

// Genre returns the genre tag field, or "" when absent.
func (f *MediaFile) Genre() (string, error) { return f.tagText(types.FieldGenre) }

// Comment returns the comment tag field, or "" when absent.
func (f *MediaFile) Comment() (string, error) { return f.tagText(types.FieldComment) }

// Year returns the year tag field, or 0 when absent.
func (f *MediaFile) Year() (int, error) { return f.tagNumber(types.FieldYear) }

// Track returns the track tag field, or 0 when absent.
func (f *MediaFile) Track() (int, error) { return f.tagNumber(types.FieldTrack) }

func (f *MediaFile) tagText(field types.TagField) (string, error) {
	value, _, err := f.lookup(types.TagKey(field), false)
	if err != nil {
		return "", err
	}
	text, _ := value.Text()
	return text, nil
}

func (f *MediaFile) tagNumber(field types.TagField) (int, error) {
	value, _, err := f.lookup(types.TagKey(field), false)
	if err != nil {
		return 0, err
	}
	number, _ := value.Int()
	return int(number), nil
}

// Tag returns the seven well-known fields as one value, staged mutations
// applied over the cached tag. Absent fields are zero.
func (f *MediaFile) Tag() (Tag, error) {
	tag, _, err := f.cache.Tag(f.engine)
	if err != nil {
		return Tag{}, err
	}
	var patch types.TagPatch
	for _, field := range types.TagFields() {
		if staged, ok := f.buffer.Get(types.TagKey(field)); ok {
			patch.SetField(field, staged)
		}
	}
	return patch.Apply(tag), nil
}

// Properties returns the string property map, staged mutations applied
// over the cached map. Staged deletions and empty lists are pruned, so
// the invariant that no key maps to an empty list holds for the result.
// The returned map must not be modified.
func (f *MediaFile) Properties() (PropertyMap, error) {
	props, _, err := f.cache.Properties(f.engine)
	if err != nil {
		return nil, err
	}
	staged := f.buffer.Partition(f.cache.KnownComplex)
	if len(staged.Properties) == 0 {
		return props, nil
	}
	return props.Merge(staged.Properties, false), nil
}

// ComplexPropertyKeys returns the known structured property keys. The
// engine's list is fetched once per open interval and only ever grows;
// staged structured values add their keys, and staged deletions of known
// keys hide them until saved.
func (f *MediaFile) ComplexPropertyKeys() ([]string, error) {
	keys, _, err := f.cache.ComplexKeys(f.engine)
	if err != nil {
		return nil, err
	}
	staged := f.buffer.Partition(f.cache.KnownComplex)
	if len(staged.Complex) == 0 {
		return keys, nil
	}
	var added []string
	for name, entries := range staged.Complex {
		if entries == nil {
			keys = slices.DeleteFunc(keys, func(k string) bool { return k == name })
		} else if !slices.Contains(keys, name) {
			added = append(added, name)
		}
	}
	slices.Sort(added)
	return append(keys, added...), nil
}

// ComplexProperty returns the entries for one structured property key,
// or nil when the key is absent. Staged mutations win: a staged value
// under the key shadows the engine, and a staged deletion reads as
// absent.
func (f *MediaFile) ComplexProperty(key string) ([]VariantMap, error) {
	if staged, ok := f.buffer.Get(types.PropertyKey(key)); ok {
		if staged.IsEmpty() {
			return nil, nil
		}
		items, _ := staged.List()
		if len(items) == 0 || items[0].Kind() != types.KindMap {
			return nil, nil
		}
		entries := make([]VariantMap, len(items))
		for i, item := range items {
			entries[i], _ = item.Map()
		}
		return entries, nil
	}
	entries, present, err := f.cache.Complex(f.engine, key)
	if err != nil || !present {
		return nil, err
	}
	return types.CloneVariantMaps(entries), nil
}

// Snapshot flattens everything currently in memory into one key → value
// map for serialization: audio and tag fields under their lowercase
// names, property and structured keys verbatim, staged mutations applied
// last. Nothing is fetched; sources never retrieved are simply missing.
// The result marshals directly to JSON.
func (f *MediaFile) Snapshot() map[string]Variant {
	view := make(map[string]Variant)

	if f.audio != nil {
		for _, field := range types.AudioFields() {
			view[field.String()] = f.audio.Field(field)
		}
	}
	if tag, present, _ := f.cache.Tag(nil); present {
		for _, field := range types.TagFields() {
			if value := tag.Field(field); !value.IsEmpty() {
				view[field.String()] = value
			}
		}
	}
	if props, present, _ := f.cache.Properties(nil); present {
		for name, values := range props {
			view[name] = stringListVariant(values)
		}
	}
	for name, entries := range f.cache.PresentComplex() {
		view[name] = complexListVariant(entries)
	}

	for _, field := range types.TagFields() {
		if staged, ok := f.buffer.Get(types.TagKey(field)); ok {
			if staged.IsEmpty() {
				delete(view, field.String())
			} else {
				view[field.String()] = staged
			}
		}
	}
	staged := f.buffer.Partition(f.cache.KnownComplex)
	for name, values := range staged.Properties {
		if len(values) == 0 {
			delete(view, name)
		} else {
			view[name] = stringListVariant(values)
		}
	}
	for name, entries := range staged.Complex {
		if entries == nil {
			delete(view, name)
		} else {
			view[name] = complexListVariant(entries)
		}
	}
	return view
}
