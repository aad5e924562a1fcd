// Package taglib provides a uniform, lazily populated, mutation-buffering
// view over media metadata.
//
// taglib reconciles four different key spaces into one read/write surface:
// the seven well-known tag fields (title, artist, album, genre, comment,
// year, track), the free-form multi-valued string properties, the
// structured ("complex") properties such as embedded pictures, and the
// read-only audio properties. Reading any one source is delegated to an
// engine; this package supplies the laziness, the caching, the staged
// mutations, and the commit protocol on top.
//
// # Quick Start
//
// Reading and writing metadata:
//
//	file, err := taglib.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	title, _ := file.Title()
//	fmt.Println(title)
//
//	file.SetArtist("Miles Davis")
//	file.Set("MUSICBRAINZ_ALBUMID", "f4a31f0a")
//	if err := file.Save(); err != nil {
//		log.Fatal(err)
//	}
//
// # Laziness
//
// Opening a store reads nothing. Each source is fetched from the engine
// at most once per open interval, on first access: reading the title
// fetches the tag, reading a property fetches the property map, and each
// structured key is fetched individually. Fetch results are cached even
// when the source turns out to be absent, so the engine is never asked
// the same question twice. Options such as WithTag and WithProperties
// retrieve sources eagerly at open time; audio properties are only ever
// read at open, via WithAudioProperties.
//
// After Close the cache keeps serving whatever was already fetched, but
// nothing new is read:
//
//	file, _ := taglib.Open("song.flac", taglib.WithTag())
//	file.Close()
//	title, _ := file.Title() // still served from memory
//
// # Staged mutations
//
// Writes never touch the engine directly. Set validates the value
// eagerly and stages it in memory, where it shadows the committed data
// for every read. Save partitions the staged mutations into standard
// properties, structured properties and tag fields, pushes the groups to
// the engine in exactly that order, and persists. On failure the staged
// mutations survive intact, so Save can simply be retried. Closing with
// unsaved mutations discards them with a warning.
//
// # Keys
//
// Every operation takes a string identifier. Lowercase well-known names
// resolve to tag fields ("title") or audio fields ("bitrate"); anything
// else is a property name used verbatim ("MUSICBRAINZ_ALBUMID"). Access
// additionally supports the mangled accessor form, where
// "musicbrainz__album_id" names the property MUSICBRAINZ_ALBUMID and
// "all_genre" selects the full value list of GENRE.
//
// # Engines
//
// The store is engine-agnostic. Importing an engine package registers it
// for path-based opening:
//
//	import (
//	    _ "github.com/lwoggardner/taglib-simple/internal/native" // media files
//	    _ "github.com/lwoggardner/taglib-simple/internal/tagdb"  // .tagdb sidecars
//	)
//
// The native engine reads and writes real media files; the tagdb engine
// keeps metadata in a self-contained SQLite sidecar file and supports the
// full surface including structured properties. A custom Engine can be
// wrapped with New or registered with RegisterOpener.
//
// # Error Handling
//
// Failures are typed and checked with errors.As:
//
//   - *CannotOpenError: construction failed; retrying will not help
//   - *InvalidKeyError, *InvalidValueTypeError, *ReadOnlyFieldError:
//     caller bugs, surfaced before anything is staged
//   - *NotWritableError: write or save on a read-only or closed store
//   - *KeyNotFoundError: read miss with no default
//   - *SaveError: the engine failed to merge or persist; staged
//     mutations are kept for retry
//
// A MediaFile is not safe for concurrent use; OpenMany opens many files
// in parallel, one goroutine per file.
package taglib
