package taglib_test

import (
	"testing"

	taglib "github.com/lwoggardner/taglib-simple"
	"github.com/lwoggardner/taglib-simple/internal/enginetest"
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// createBenchmarkEngine returns a fake engine preloaded with a typical
// spread of metadata.
func createBenchmarkEngine(b *testing.B) *enginetest.Fake {
	b.Helper()

	fake := enginetest.New("bench.fake")
	fake.Tag = types.Tag{Title: "Bench", Artist: "Band", Album: "Collected", Year: 2001, Track: 3}
	fake.Props = types.PropertyMap{
		"TITLE":  {"Bench"},
		"ARTIST": {"Band"},
		"GENRE":  {"Rock", "Jazz"},
		"MOOD":   {"calm"},
	}
	fake.Complex = map[string][]types.VariantMap{
		"PICTURE": {{
			"mimeType": types.NewString("image/png"),
			"data":     types.NewBytes(make([]byte, 64)),
		}},
	}
	fake.Audio = &types.AudioProperties{Bitrate: 320, SampleRate: 44100, Channels: 2}
	return fake
}

// BenchmarkNew measures the overhead of wrapping an engine in a store.
func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		file, err := taglib.New(createBenchmarkEngine(b))
		if err != nil {
			b.Fatal(err)
		}
		file.Close()
	}
}

// BenchmarkFetch measures a property lookup served from the cache.
func BenchmarkFetch(b *testing.B) {
	file, err := taglib.New(createBenchmarkEngine(b), taglib.WithProperties())
	if err != nil {
		b.Fatal(err)
	}
	defer file.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := file.Fetch("GENRE"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFetchStaged measures a lookup served from the mutation buffer.
func BenchmarkFetchStaged(b *testing.B) {
	file, err := taglib.New(createBenchmarkEngine(b))
	if err != nil {
		b.Fatal(err)
	}
	defer file.Close()

	if err := file.Set("GENRE", []string{"Staged"}); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := file.Fetch("GENRE"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSnapshot measures assembling the merged view across all four
// metadata spaces.
func BenchmarkSnapshot(b *testing.B) {
	file, err := taglib.New(createBenchmarkEngine(b),
		taglib.WithTag(),
		taglib.WithProperties(),
		taglib.WithAllComplexProperties(),
		taglib.WithAudioProperties(taglib.ReadAverage),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer file.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if snapshot := file.Snapshot(); len(snapshot) == 0 {
			b.Fatal("empty snapshot")
		}
	}
}

// BenchmarkResolveAccessor measures accessor name mangling.
func BenchmarkResolveAccessor(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := taglib.ResolveAccessor("all_musicbrainz__album_id"); err != nil {
			b.Fatal(err)
		}
	}
}
