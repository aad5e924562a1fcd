package taglib

import (
	"go.uber.org/zap"
)

// Option configures behavior when opening a media file.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := taglib.Open("song.flac",
//	    taglib.WithTag(),
//	    taglib.WithAudioProperties(taglib.ReadAverage),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening a store.
type openOptions struct {
	readOnly    bool        // Request a read-only engine handle
	fetchTag    bool        // Retrieve the tag at open
	fetchProps  bool        // Retrieve the property map at open
	complexKeys []string    // Specific complex keys to retrieve at open
	allComplex  bool        // Retrieve every known complex key at open
	audioStyle  ReadStyle   // ReadNone skips audio properties entirely
	logger      *zap.Logger // Never nil after defaultOptions
}

// defaultOptions returns the default configuration: nothing is retrieved
// eagerly, audio properties are skipped, and logging is disabled.
func defaultOptions() *openOptions {
	return &openOptions{
		audioStyle: ReadNone,
		logger:     zap.NewNop(),
	}
}

// WithReadOnly requests a read-only engine handle.
//
// A read-only store serves every read operation but fails Set, Delete,
// Save and ClearAll with NotWritableError. Engines may open read-only
// on their own (for example when the file mode forbids writing) even
// without this option.
//
// Example:
//
//	file, err := taglib.Open("song.flac", taglib.WithReadOnly())
//	// file.Set(...) now fails with *taglib.NotWritableError
func WithReadOnly() Option {
	return func(o *openOptions) {
		o.readOnly = true
	}
}

// WithTag retrieves the tag fields during Open.
//
// By default every source is fetched lazily on first read. Retrieving
// eagerly is useful before Close, since a closed store serves only what
// was already fetched.
//
// Example:
//
//	file, err := taglib.Open("song.flac", taglib.WithTag())
//	// file.Title() is now served from memory
func WithTag() Option {
	return func(o *openOptions) {
		o.fetchTag = true
	}
}

// WithProperties retrieves the string property map during Open.
//
// Example:
//
//	file, err := taglib.Open("song.flac", taglib.WithProperties())
func WithProperties() Option {
	return func(o *openOptions) {
		o.fetchProps = true
	}
}

// WithComplexProperties retrieves the given complex property keys during
// Open. Keys are engine-level property names, e.g. "PICTURE".
//
// Example:
//
//	file, err := taglib.Open("song.flac", taglib.WithComplexProperties("PICTURE"))
func WithComplexProperties(keys ...string) Option {
	return func(o *openOptions) {
		o.complexKeys = append(o.complexKeys, keys...)
	}
}

// WithAllComplexProperties retrieves the known complex key list and every
// key on it during Open.
//
// Example:
//
//	file, err := taglib.Open("song.flac", taglib.WithAllComplexProperties())
func WithAllComplexProperties() Option {
	return func(o *openOptions) {
		o.allComplex = true
	}
}

// WithAudioProperties retrieves the audio properties during Open with the
// given read accuracy.
//
// Audio properties are only ever read at open time. Without this option
// AudioProperties returns nil and the audio fields ("length", "bitrate",
// "sample_rate", "channels") read as not found.
//
// Example:
//
//	file, err := taglib.Open("song.flac", taglib.WithAudioProperties(taglib.ReadAverage))
//	fmt.Println(file.AudioProperties())
func WithAudioProperties(style ReadStyle) Option {
	return func(o *openOptions) {
		o.audioStyle = style
	}
}

// WithLogger sets the logger used by the store.
//
// The default is zap.NewNop(). The store logs state transitions at Debug
// and warns when unsaved staged mutations are discarded.
//
// Example:
//
//	logger, _ := zap.NewDevelopment()
//	file, err := taglib.Open("song.flac", taglib.WithLogger(logger))
func WithLogger(logger *zap.Logger) Option {
	return func(o *openOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
