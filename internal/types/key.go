package types

import "strings"

// KeyClass discriminates the three canonical key classes.
type KeyClass int

const (
	// ClassInvalid is the class of the zero Key.
	ClassInvalid KeyClass = iota
	// ClassTag addresses one of the seven normalized tag fields.
	ClassTag
	// ClassProperty addresses a free-form property name.
	ClassProperty
	// ClassAudio addresses a read-only audio properties field.
	ClassAudio
)

// String returns the class name.
func (c KeyClass) String() string {
	switch c {
	case ClassTag:
		return "tag"
	case ClassProperty:
		return "property"
	case ClassAudio:
		return "audio"
	default:
		return "invalid"
	}
}

// TagField identifies one of the seven normalized tag fields.
type TagField int

const (
	FieldTitle TagField = iota
	FieldArtist
	FieldAlbum
	FieldGenre
	FieldComment
	FieldYear
	FieldTrack
)

// tagFieldNames is indexed by TagField.
var tagFieldNames = [...]string{"title", "artist", "album", "genre", "comment", "year", "track"}

// String returns the lowercase field name.
func (f TagField) String() string {
	if f < 0 || int(f) >= len(tagFieldNames) {
		return "unknown"
	}
	return tagFieldNames[f]
}

// IsNumeric reports whether the field carries an integer rather than text.
func (f TagField) IsNumeric() bool { return f == FieldYear || f == FieldTrack }

// TagFields returns all seven fields in canonical order.
func TagFields() []TagField {
	return []TagField{FieldTitle, FieldArtist, FieldAlbum, FieldGenre, FieldComment, FieldYear, FieldTrack}
}

// AudioField identifies one of the four read-only audio properties fields.
type AudioField int

const (
	FieldLength AudioField = iota
	FieldBitrate
	FieldSampleRate
	FieldChannels
)

// audioFieldNames is indexed by AudioField.
var audioFieldNames = [...]string{"length", "bitrate", "sample_rate", "channels"}

// String returns the lowercase field name.
func (f AudioField) String() string {
	if f < 0 || int(f) >= len(audioFieldNames) {
		return "unknown"
	}
	return audioFieldNames[f]
}

// AudioFields returns all four fields in canonical order.
func AudioFields() []AudioField {
	return []AudioField{FieldLength, FieldBitrate, FieldSampleRate, FieldChannels}
}

var (
	tagFieldsByName = map[string]TagField{
		"title":   FieldTitle,
		"artist":  FieldArtist,
		"album":   FieldAlbum,
		"genre":   FieldGenre,
		"comment": FieldComment,
		"year":    FieldYear,
		"track":   FieldTrack,
	}
	audioFieldsByName = map[string]AudioField{
		"length":      FieldLength,
		"bitrate":     FieldBitrate,
		"sample_rate": FieldSampleRate,
		"channels":    FieldChannels,
	}
)

// Key is a resolved, classified identifier: a normalized tag field, a
// free-form property name, or a read-only audio field.
//
// Keys are comparable and usable as map keys. The zero Key has
// ClassInvalid; construct Keys with TagKey, PropertyKey, AudioKey, or
// ResolveKey.
type Key struct {
	class KeyClass
	tag   TagField
	audio AudioField
	name  string
}

// TagKey returns the Key addressing a normalized tag field.
func TagKey(field TagField) Key { return Key{class: ClassTag, tag: field} }

// PropertyKey returns the Key addressing a property, using name verbatim.
func PropertyKey(name string) Key { return Key{class: ClassProperty, name: name} }

// AudioKey returns the Key addressing a read-only audio field.
func AudioKey(field AudioField) Key { return Key{class: ClassAudio, audio: field} }

// Class returns the key class.
func (k Key) Class() KeyClass { return k.class }

// TagField returns the tag field addressed by a ClassTag key.
func (k Key) TagField() TagField { return k.tag }

// AudioField returns the audio field addressed by a ClassAudio key.
func (k Key) AudioField() AudioField { return k.audio }

// Name returns the canonical name: the lowercase field name for tag and
// audio keys, the verbatim property name otherwise.
func (k Key) Name() string {
	switch k.class {
	case ClassTag:
		return k.tag.String()
	case ClassAudio:
		return k.audio.String()
	case ClassProperty:
		return k.name
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (k Key) String() string { return k.Name() }

// ResolveKey classifies an identifier into a Key. The lowercase
// well-known names resolve to tag fields (title, artist, album, genre,
// comment, year, track) and audio fields (length, bitrate, sample_rate,
// channels); any other non-empty string is a property name, used
// verbatim. An empty identifier fails with InvalidKeyError.
//
// Classification is pure and total: the same identifier always resolves
// to the same Key.
func ResolveKey(identifier string) (Key, error) {
	if identifier == "" {
		return Key{}, &InvalidKeyError{Identifier: identifier, Reason: "empty identifier"}
	}
	if field, ok := tagFieldsByName[identifier]; ok {
		return TagKey(field), nil
	}
	if field, ok := audioFieldsByName[identifier]; ok {
		return AudioKey(field), nil
	}
	return PropertyKey(identifier), nil
}

// Accessor is a parsed attribute-style accessor name. The key is always
// a property key: accessor names address properties, not tag fields.
type Accessor struct {
	// Key is the resolved property key.
	Key Key
	// All selects "all values" rather than "first value" on read. It has
	// no meaning on write.
	All bool
	// Assign marks the assignment form (trailing =).
	Assign bool
}

// ResolveAccessor parses an accessor name of the form (all_)?(name)(=)?
// and mangles name into a property name. Names containing characters
// outside [a-z_] fail with InvalidKeyError.
//
// Example:
//
//	acc, _ := types.ResolveAccessor("all_musicbrainz__album_id")
//	acc.Key.Name() // "MUSICBRAINZ_ALBUMID"
//	acc.All        // true
func ResolveAccessor(name string) (Accessor, error) {
	acc := Accessor{}
	rest := name
	if strings.HasSuffix(rest, "=") {
		acc.Assign = true
		rest = rest[:len(rest)-1]
	}
	// The all_ prefix only counts when a name remains after it;
	// "all_" alone is the property name ALL.
	if remainder, ok := strings.CutPrefix(rest, "all_"); ok && remainder != "" {
		acc.All = true
		rest = remainder
	}
	if rest == "" {
		return Accessor{}, &InvalidKeyError{Identifier: name, Reason: "empty accessor"}
	}
	for _, r := range rest {
		if (r < 'a' || r > 'z') && r != '_' {
			return Accessor{}, &InvalidKeyError{Identifier: name, Reason: "accessor names use only [a-z_]"}
		}
	}
	acc.Key = PropertyKey(Mangle(rest))
	return acc, nil
}

// Mangle transforms an accessor name into a property name: letters are
// uppercased, single underscores are deleted, and doubled underscores
// become one literal underscore.
//
// Example: "musicbrainz__album_id" mangles to "MUSICBRAINZ_ALBUMID".
//
// Mangle expects a name already validated against [a-z_]; other bytes
// pass through unchanged.
func Mangle(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			if i+1 < len(name) && name[i+1] == '_' {
				b.WriteByte('_')
				i++
			}
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
