package taglib

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Set stages a new value for identifier, resolved with ResolveKey.
//
// The value is validated eagerly and converted to its canonical shape:
// tag fields take a scalar of the right type, property values become a
// list of strings, structured values a list of string-keyed maps. A nil
// value, an empty string or a zero stage a deletion. On a validation
// failure nothing is staged and the buffer is unchanged.
//
// Fails with *NotWritableError unless the store is open and writable,
// with *ReadOnlyFieldError for audio fields, and with
// *InvalidValueTypeError when the value does not fit the key.
//
//	file.Set("title", "Sky")
//	file.Set("GENRE", []string{"Rock", "Jazz"})
//	file.Set("track", nil) // stages a deletion
func (f *MediaFile) Set(identifier string, value any) error {
	key, err := types.ResolveKey(identifier)
	if err != nil {
		return err
	}
	_, err = f.stage(key, value)
	return err
}

// Delete stages the removal of identifier. Equivalent to Set with nil.
func (f *MediaFile) Delete(identifier string) error {
	return f.Set(identifier, nil)
}

// SetTitle stages a new title; "" stages a deletion.
func (f *MediaFile) SetTitle(title string) error { return f.setTag(types.FieldTitle, title) }

// SetArtist stages a new artist; "" stages a deletion.
func (f *MediaFile) SetArtist(artist string) error { return f.setTag(types.FieldArtist, artist) }

// SetAlbum stages a new album; "" stages a deletion.
func (f *MediaFile) SetAlbum(album string) error { return f.setTag(types.FieldAlbum, album) }

// SetGenre stages a new genre; "" stages a deletion.
func (f *MediaFile) SetGenre(genre string) error { return f.setTag(types.FieldGenre, genre) }

// SetComment stages a new comment; "" stages a deletion.
func (f *MediaFile) SetComment(comment string) error { return f.setTag(types.FieldComment, comment) }

// SetYear stages a new year; 0 stages a deletion.
func (f *MediaFile) SetYear(year int) error { return f.setTag(types.FieldYear, year) }

// SetTrack stages a new track number; 0 stages a deletion.
func (f *MediaFile) SetTrack(track int) error { return f.setTag(types.FieldTrack, track) }

func (f *MediaFile) setTag(field types.TagField, value any) error {
	_, err := f.stage(types.TagKey(field), value)
	return err
}

// stage converts and validates value, then stages it for key. It returns
// the canonical staged Variant.
func (f *MediaFile) stage(key types.Key, value any) (Variant, error) {
	if err := f.writable(); err != nil {
		return Variant{}, err
	}
	variant, err := types.NewVariant(value)
	if err != nil {
		return Variant{}, fmt.Errorf("%s: %w", key, err)
	}
	return f.buffer.Stage(key, variant)
}

// writable returns the NotWritableError for the current state, or nil
// when the store accepts writes.
func (f *MediaFile) writable() error {
	if f.engine == nil {
		return &NotWritableError{Path: f.path, Reason: "closed"}
	}
	if f.readOnly {
		return &NotWritableError{Path: f.path, Reason: "read-only"}
	}
	return nil
}

// Save pushes the staged mutations to the engine and persists them.
//
// The buffer is partitioned into three groups and pushed in a fixed
// order: standard properties, then structured properties, then tag
// fields. The property groups are pushed when non-empty or when a
// replace-all was requested; the tag group only when a field is staged.
// After the engine persists, the staged mutations are cleared and the
// cache starts a new fetch generation. Audio properties are exempt from
// the reset, and the known structured-key list survives it, extended
// with the keys just committed.
//
// On any failure the buffer is left intact, so a retry of Save stages
// nothing twice. Fails with *NotWritableError unless the store is open
// and writable, even when nothing is staged; with *NothingStagedError
// when the store is writable but there is nothing to push; and with
// *SaveError when the engine rejects a merge or fails to persist.
func (f *MediaFile) Save(opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := f.writable(); err != nil {
		return err
	}
	if f.buffer.Len() == 0 && !options.replaceAll {
		return &NothingStagedError{Path: f.path}
	}

	// A property deletion routes to the structured group only when its
	// key is known to be structured, so establish the known-key list
	// before partitioning.
	if f.buffer.HasPropertyDeletes() {
		if _, _, err := f.cache.ComplexKeys(f.engine); err != nil {
			return &SaveError{Path: f.path, Err: err}
		}
	}
	staged := f.buffer.Partition(f.cache.KnownComplex)

	if len(staged.Properties) > 0 || options.replaceAll {
		if err := f.engine.MergeProperties(staged.Properties, options.replaceAll); err != nil {
			return &SaveError{Path: f.path, Err: err}
		}
	}
	if len(staged.Complex) > 0 || options.replaceAll {
		if err := f.engine.MergeComplex(staged.Complex, options.replaceAll); err != nil {
			return &SaveError{Path: f.path, Err: err}
		}
	}
	if !staged.Tag.IsZero() {
		if err := f.engine.MergeTag(staged.Tag); err != nil {
			return &SaveError{Path: f.path, Err: err}
		}
	}
	if err := f.engine.Persist(); err != nil {
		return &SaveError{Path: f.path, Err: err}
	}

	f.buffer.Discard()
	f.cache.Reset()
	f.cache.AddComplexKeys(staged.ComplexKeys()...)

	f.logger.Debug("saved staged mutations",
		zap.String("path", f.path),
		zap.Int("properties", len(staged.Properties)),
		zap.Int("complex", len(staged.Complex)),
		zap.Bool("replace_all", options.replaceAll))
	return nil
}

// Discard drops all staged mutations without saving them.
func (f *MediaFile) Discard() {
	if staged := f.buffer.Len(); staged > 0 {
		f.logger.Debug("discarded staged mutations",
			zap.String("path", f.path),
			zap.Int("staged", staged))
	}
	f.buffer.Discard()
}

// ClearAll removes every tag field and every property from the store:
// previously staged mutations are discarded, a deletion is staged for
// each of the seven tag fields, and the result is saved with replace-all
// on the standard and structured groups. This is a composition of
// Discard, Set and Save, not a new primitive.
func (f *MediaFile) ClearAll() error {
	if err := f.writable(); err != nil {
		return err
	}
	f.Discard()
	for _, field := range types.TagFields() {
		if _, err := f.buffer.Stage(types.TagKey(field), types.Variant{}); err != nil {
			return err
		}
	}
	return f.Save(WithReplaceAll())
}
