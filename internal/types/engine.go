package types

// Engine is the external tag-reading engine contract: primitive reads
// over the four metadata sources, and merge/persist primitives for the
// three writable groups.
//
// An Engine is a stateful handle over one media item, driven from a
// single goroutine. Reads fail once the handle is released. Merges
// accumulate in the engine; nothing reaches storage until Persist.
type Engine interface {
	// Valid reports whether the handle is usable.
	Valid() bool

	// ReadOnly reports whether writes can ever succeed. Meaningful only
	// while Valid.
	ReadOnly() bool

	// ReadAudioProperties computes the technical stream description.
	// style hints how much accuracy is worth.
	ReadAudioProperties(style ReadStyle) (*AudioProperties, error)

	// ReadTag returns the normalized tag. Fields unset in the underlying
	// item are zero.
	ReadTag() (*Tag, error)

	// ReadProperties returns the full standard property map.
	ReadProperties() (PropertyMap, error)

	// ReadComplexKeys lists the structured property keys present.
	// Engines without structured property support return an empty list.
	ReadComplexKeys() ([]string, error)

	// ReadComplex returns the entries for one structured property key,
	// empty when the key is absent.
	ReadComplex(key string) ([]VariantMap, error)

	// MergeTag overwrites only the fields the patch carries; a field
	// pointed at its zero value is cleared.
	MergeTag(patch TagPatch) error

	// MergeProperties applies each staged list over the standard map.
	// replaceAll clears the map first. An empty list deletes its key.
	MergeProperties(props PropertyMap, replaceAll bool) error

	// MergeComplex applies structured property lists. replaceAll clears
	// every known key first. An empty list deletes its key. Engines
	// without structured property support fail a non-empty merge.
	MergeComplex(props map[string][]VariantMap, replaceAll bool) error

	// Persist writes all accumulated merges to storage.
	Persist() error

	// Release frees the handle. Release is idempotent.
	Release() error
}
