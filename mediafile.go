package taglib

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lwoggardner/taglib-simple/internal/registry"
	"github.com/lwoggardner/taglib-simple/internal/store"
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// MediaFile is a uniform, lazily populated, mutation-buffering view over
// the metadata of one media item: the seven well-known tag fields, the
// free-form string properties, the structured ("complex") properties,
// and the read-only audio properties.
//
// Reads check the staged mutations first, then a per-source cache that
// fetches from the engine at most once per key while the store is open.
// Writes are validated eagerly and staged in memory; nothing touches the
// engine until Save. Closing discards unsaved mutations with a warning.
//
// A MediaFile is not safe for concurrent use. Always call Close when
// done to release the engine handle:
//
//	file, err := taglib.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type MediaFile struct {
	path     string
	engine   types.Engine // nil once closed
	readOnly bool
	logger   *zap.Logger

	cache  *store.Cache
	buffer *store.Buffer

	// Audio properties are read at open time only and survive both
	// commit resets and Close.
	audio *types.AudioProperties
}

// Open opens the media file at path.
//
// The engine is chosen by asking each registered opener whether it
// claims the path; importing an engine package registers its opener:
//
//	import _ "github.com/lwoggardner/taglib-simple/internal/native"
//
// By default nothing is read from the file until first access. Options
// select eager retrieval and the open mode:
//
//	file, err := taglib.Open("song.flac",
//	    taglib.WithTag(),
//	    taglib.WithAudioProperties(taglib.ReadAverage),
//	)
//
// Open fails with *CannotOpenError when no opener claims the path, when
// the engine cannot establish a valid handle, or when an eager retrieval
// fails.
//
// Example:
//
//	file, err := taglib.Open("song.flac", taglib.WithTag())
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//	title, _ := file.Title()
//	fmt.Println(title)
func Open(path string, opts ...Option) (*MediaFile, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	opener := registry.Lookup(path)
	if opener == nil {
		return nil, &CannotOpenError{
			Path: path,
			Err:  fmt.Errorf("no engine claims this path (registered: %s)", strings.Join(registry.Names(), ", ")),
		}
	}

	engine, err := opener.Open(path, options.readOnly)
	if err != nil {
		return nil, &CannotOpenError{Path: path, Err: err}
	}

	file, err := newMediaFile(path, engine, options)
	if err != nil {
		engine.Release()
		return nil, err
	}
	return file, nil
}

// New wraps a caller-supplied engine in a MediaFile.
//
// The engine must already hold a valid handle; New fails with
// *CannotOpenError otherwise. Retrieval options apply exactly as they do
// for Open. The MediaFile owns the engine from here on: Close releases
// it, including when New itself fails.
func New(engine Engine, opts ...Option) (*MediaFile, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	file, err := newMediaFile("", engine, options)
	if err != nil && engine != nil {
		engine.Release()
	}
	return file, err
}

// newMediaFile builds the store around an engine and performs the eager
// retrievals requested by options.
func newMediaFile(path string, engine types.Engine, options *openOptions) (*MediaFile, error) {
	if engine == nil || !engine.Valid() {
		return nil, &CannotOpenError{Path: path, Err: errors.New("engine handle is not valid")}
	}

	f := &MediaFile{
		path:     path,
		engine:   engine,
		readOnly: options.readOnly || engine.ReadOnly(),
		logger:   options.logger,
		cache:    &store.Cache{},
		buffer:   &store.Buffer{},
	}

	if options.audioStyle != ReadNone {
		audio, err := engine.ReadAudioProperties(options.audioStyle)
		if err != nil {
			return nil, &CannotOpenError{Path: path, Err: fmt.Errorf("read audio properties: %w", err)}
		}
		f.audio = audio
	}
	if options.fetchTag {
		if _, _, err := f.cache.Tag(engine); err != nil {
			return nil, &CannotOpenError{Path: path, Err: fmt.Errorf("read tag: %w", err)}
		}
	}
	if options.fetchProps {
		if _, _, err := f.cache.Properties(engine); err != nil {
			return nil, &CannotOpenError{Path: path, Err: fmt.Errorf("read properties: %w", err)}
		}
	}
	complexKeys := options.complexKeys
	if options.allComplex {
		keys, _, err := f.cache.ComplexKeys(engine)
		if err != nil {
			return nil, &CannotOpenError{Path: path, Err: fmt.Errorf("read complex property keys: %w", err)}
		}
		complexKeys = keys
	}
	for _, key := range complexKeys {
		if _, _, err := f.cache.Complex(engine, key); err != nil {
			return nil, &CannotOpenError{Path: path, Err: fmt.Errorf("read complex property %s: %w", key, err)}
		}
	}

	f.logger.Debug("opened media store",
		zap.String("path", path),
		zap.Bool("read_only", f.readOnly))
	return f, nil
}

// OpenContext opens a media file with context support for cancellation.
//
// This is a thin wrapper around Open that checks the context before
// starting; opening itself is a single synchronous engine call.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := taglib.OpenContext(ctx, "song.flac", taglib.WithTag())
func OpenContext(ctx context.Context, path string, opts ...Option) (*MediaFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple media files concurrently.
//
// Files are opened in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths, each built
// with the same options.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
// Example:
//
//	files, err := taglib.OpenMany(ctx, paths, taglib.WithTag())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*MediaFile, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*MediaFile, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path, opts...)
			if err != nil {
				return err
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}

// With opens the media file at path, passes it to fn, and closes it on
// every exit path, including when fn panics. Staged mutations that fn
// did not save are discarded with a warning, never committed.
//
// Example:
//
//	err := taglib.With("song.flac", func(f *taglib.MediaFile) error {
//	    if err := f.SetTitle("Sky"); err != nil {
//	        return err
//	    }
//	    return f.Save()
//	})
func With(path string, fn func(*MediaFile) error, opts ...Option) (err error) {
	file, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(file)
}

// Close releases the engine handle and transitions the store to closed.
//
// Closing is idempotent: repeat calls are no-ops. If mutations are still
// staged they are discarded, and the discard is logged as a warning.
// After Close, reads serve only data that was already fetched and writes
// fail with *NotWritableError.
func (f *MediaFile) Close() error {
	if f.engine == nil {
		return nil
	}

	if staged := f.buffer.Len(); staged > 0 {
		f.logger.Warn("closing with unsaved staged mutations",
			zap.String("path", f.path),
			zap.Int("staged", staged))
		f.buffer.Discard()
	}

	engine := f.engine
	f.engine = nil
	err := engine.Release()

	f.logger.Debug("closed media store", zap.String("path", f.path))
	return err
}

// Closed reports whether Close has been called.
func (f *MediaFile) Closed() bool { return f.engine == nil }

// Writable reports whether the store accepts writes: open and not
// read-only.
func (f *MediaFile) Writable() bool { return f.engine != nil && !f.readOnly }

// Dirty reports whether any staged mutations have not been saved.
func (f *MediaFile) Dirty() bool { return f.buffer.Len() > 0 }

// Path returns the path the store was opened from. Empty for stores
// built with New around a caller-supplied engine.
func (f *MediaFile) Path() string { return f.path }

// AudioProperties returns the audio properties read at open time, or nil
// when WithAudioProperties was not given. The value is immutable, is
// never re-read, and remains available after Close.
func (f *MediaFile) AudioProperties() *AudioProperties { return f.audio }
