package taglib

import (
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Key is an alias to types.Key.
// Re-exported from internal/types to keep the public API in one package.
type Key = types.Key

// KeyClass is an alias to types.KeyClass.
// Re-exported from internal/types to keep the public API in one package.
type KeyClass = types.KeyClass

// TagField is an alias to types.TagField.
// Re-exported from internal/types to keep the public API in one package.
type TagField = types.TagField

// AudioField is an alias to types.AudioField.
// Re-exported from internal/types to keep the public API in one package.
type AudioField = types.AudioField

// Accessor is an alias to types.Accessor.
// Re-exported from internal/types to keep the public API in one package.
type Accessor = types.Accessor

// Key classes, re-exported from internal/types.
const (
	ClassTag      = types.ClassTag
	ClassProperty = types.ClassProperty
	ClassAudio    = types.ClassAudio
)

// Tag fields, re-exported from internal/types.
const (
	FieldTitle   = types.FieldTitle
	FieldArtist  = types.FieldArtist
	FieldAlbum   = types.FieldAlbum
	FieldGenre   = types.FieldGenre
	FieldComment = types.FieldComment
	FieldYear    = types.FieldYear
	FieldTrack   = types.FieldTrack
)

// Audio fields, re-exported from internal/types.
const (
	FieldLength     = types.FieldLength
	FieldBitrate    = types.FieldBitrate
	FieldSampleRate = types.FieldSampleRate
	FieldChannels   = types.FieldChannels
)

// TagKey returns the Key for a well-known tag field.
func TagKey(field TagField) Key { return types.TagKey(field) }

// PropertyKey returns the Key for a free-form property name.
func PropertyKey(name string) Key { return types.PropertyKey(name) }

// AudioKey returns the Key for a read-only audio properties field.
func AudioKey(field AudioField) Key { return types.AudioKey(field) }

// ResolveKey classifies an identifier as a tag field, an audio field, or
// a property name. Lowercase well-known names ("title", "bitrate", ...)
// resolve to their field keys; any other non-empty string is a property
// name, used verbatim. An empty identifier fails with InvalidKeyError.
func ResolveKey(identifier string) (Key, error) { return types.ResolveKey(identifier) }

// ResolveAccessor resolves a dynamic accessor name of the form
// (all_)?(name)(=)? into a property-class Accessor, mangling name with
// Mangle. Names with characters outside [a-z_] fail with InvalidKeyError.
func ResolveAccessor(name string) (Accessor, error) { return types.ResolveAccessor(name) }

// Mangle transforms an accessor name into a property name: letters are
// uppercased, single underscores are deleted, and each doubled underscore
// becomes one literal underscore.
//
//	Mangle("musicbrainz__album_id") == "MUSICBRAINZ_ALBUMID"
func Mangle(name string) string { return types.Mangle(name) }
