package tagdb

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/lwoggardner/taglib-simple/internal/types"
)

// createEmpty creates a fresh tag database in a temp dir and returns
// its path.
func createEmpty(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.tagdb")
	if err := Create(path); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return path
}

// mustOpen opens a tag database and releases it when the test ends.
func mustOpen(t *testing.T, path string, readOnly bool) *engine {
	t.Helper()
	e, err := open(path, readOnly)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { _ = e.Release() })
	return e
}

func TestCreate(t *testing.T) {
	path := createEmpty(t)

	if err := Create(path); err == nil {
		t.Error("Create over an existing file must fail")
	}

	e := mustOpen(t, path, false)
	if !e.Valid() {
		t.Error("fresh handle must be valid")
	}
	if e.ReadOnly() {
		t.Error("fresh handle must be writable")
	}

	tag, err := e.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag failed: %v", err)
	}
	if !tag.IsZero() {
		t.Errorf("tag = %+v, want zero", tag)
	}
	props, err := e.ReadProperties()
	if err != nil {
		t.Fatalf("ReadProperties failed: %v", err)
	}
	if len(props) != 0 {
		t.Errorf("properties = %v, want none", props)
	}
	keys, err := e.ReadComplexKeys()
	if err != nil {
		t.Fatalf("ReadComplexKeys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("complex keys = %v, want none", keys)
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := open(filepath.Join(t.TempDir(), "absent.tagdb"), false); err == nil {
		t.Error("open of a missing file must fail")
	}
}

func TestClaims(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"track.tagdb", true},
		{"/music/Track.TAGDB", true},
		{"track.mp3", false},
		{"tagdb", false},
	}
	for _, tc := range tests {
		if got := (opener{}).Claims(tc.path); got != tc.want {
			t.Errorf("Claims(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	path := createEmpty(t)

	title := "Sky"
	year := 1998
	picture := types.VariantMap{
		"mimeType": types.NewString("image/png"),
		"data":     types.NewBytes([]byte{0x89, 0x50, 0x4E, 0x47}),
		"front":    types.NewBool(true),
	}

	e := mustOpen(t, path, false)
	if err := e.MergeTag(types.TagPatch{Title: &title, Year: &year}); err != nil {
		t.Fatalf("MergeTag failed: %v", err)
	}
	if err := e.MergeProperties(types.PropertyMap{"GENRE": {"Rock", "Jazz"}}, false); err != nil {
		t.Fatalf("MergeProperties failed: %v", err)
	}
	if err := e.MergeComplex(map[string][]types.VariantMap{"PICTURE": {picture}}, false); err != nil {
		t.Fatalf("MergeComplex failed: %v", err)
	}
	if err := e.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if err := e.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	// A second handle sees exactly what persisted.
	e = mustOpen(t, path, false)
	tag, err := e.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag failed: %v", err)
	}
	want := types.Tag{Title: "Sky", Year: 1998}
	if *tag != want {
		t.Errorf("tag = %+v, want %+v", *tag, want)
	}

	props, err := e.ReadProperties()
	if err != nil {
		t.Fatalf("ReadProperties failed: %v", err)
	}
	if !slices.Equal(props["GENRE"], []string{"Rock", "Jazz"}) {
		t.Errorf("GENRE = %v, want [Rock Jazz] in order", props["GENRE"])
	}

	keys, err := e.ReadComplexKeys()
	if err != nil {
		t.Fatalf("ReadComplexKeys failed: %v", err)
	}
	if !slices.Equal(keys, []string{"PICTURE"}) {
		t.Errorf("complex keys = %v, want [PICTURE]", keys)
	}

	entries, err := e.ReadComplex("PICTURE")
	if err != nil {
		t.Fatalf("ReadComplex failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("PICTURE entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if text, _ := entry["mimeType"].Text(); text != "image/png" {
		t.Errorf("mimeType = %v, want image/png", entry["mimeType"])
	}
	if data, ok := entry["data"].Bytes(); !ok || !slices.Equal(data, []byte{0x89, 0x50, 0x4E, 0x47}) {
		t.Errorf("data = %v, want the original bytes back as bytes", entry["data"])
	}
	if front, _ := entry["front"].Bool(); !front {
		t.Errorf("front = %v, want true", entry["front"])
	}
}

func TestRelease_DiscardsUnpersistedMerges(t *testing.T) {
	path := createEmpty(t)

	e := mustOpen(t, path, false)
	if err := e.MergeProperties(types.PropertyMap{"GENRE": {"Rock"}}, false); err != nil {
		t.Fatalf("MergeProperties failed: %v", err)
	}

	// The merge is visible through the handle that staged it.
	props, err := e.ReadProperties()
	if err != nil {
		t.Fatalf("ReadProperties failed: %v", err)
	}
	if len(props["GENRE"]) != 1 {
		t.Fatalf("GENRE = %v, want the staged value", props["GENRE"])
	}

	if err := e.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	e = mustOpen(t, path, false)
	props, err = e.ReadProperties()
	if err != nil {
		t.Fatalf("ReadProperties failed: %v", err)
	}
	if len(props) != 0 {
		t.Errorf("properties = %v, want none (merge never persisted)", props)
	}
}

func TestMerge_Semantics(t *testing.T) {
	path := createEmpty(t)
	e := mustOpen(t, path, false)

	seed := types.PropertyMap{"GENRE": {"Rock"}, "LABEL": {"Blue Note"}}
	if err := e.MergeProperties(seed, false); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := e.MergeComplex(map[string][]types.VariantMap{
		"PICTURE": {{"mimeType": types.NewString("image/png")}},
		"CHAPTER": {{"title": types.NewString("One")}},
	}, false); err != nil {
		t.Fatalf("seed complex failed: %v", err)
	}
	if err := e.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	t.Run("empty list deletes its key", func(t *testing.T) {
		if err := e.MergeProperties(types.PropertyMap{"LABEL": nil}, false); err != nil {
			t.Fatalf("MergeProperties failed: %v", err)
		}
		if err := e.MergeComplex(map[string][]types.VariantMap{"CHAPTER": nil}, false); err != nil {
			t.Fatalf("MergeComplex failed: %v", err)
		}
		if err := e.Persist(); err != nil {
			t.Fatalf("Persist failed: %v", err)
		}

		props, err := e.ReadProperties()
		if err != nil {
			t.Fatalf("ReadProperties failed: %v", err)
		}
		if _, ok := props["LABEL"]; ok {
			t.Error("LABEL must be deleted")
		}
		if !slices.Equal(props["GENRE"], []string{"Rock"}) {
			t.Errorf("GENRE = %v, want untouched", props["GENRE"])
		}
		keys, err := e.ReadComplexKeys()
		if err != nil {
			t.Fatalf("ReadComplexKeys failed: %v", err)
		}
		if !slices.Equal(keys, []string{"PICTURE"}) {
			t.Errorf("complex keys = %v, want [PICTURE]", keys)
		}
	})

	t.Run("replace all clears everything first", func(t *testing.T) {
		if err := e.MergeProperties(types.PropertyMap{"MOOD": {"calm"}}, true); err != nil {
			t.Fatalf("MergeProperties failed: %v", err)
		}
		if err := e.MergeComplex(nil, true); err != nil {
			t.Fatalf("MergeComplex failed: %v", err)
		}
		if err := e.Persist(); err != nil {
			t.Fatalf("Persist failed: %v", err)
		}

		props, err := e.ReadProperties()
		if err != nil {
			t.Fatalf("ReadProperties failed: %v", err)
		}
		if len(props) != 1 || !slices.Equal(props["MOOD"], []string{"calm"}) {
			t.Errorf("properties = %v, want only MOOD", props)
		}
		keys, err := e.ReadComplexKeys()
		if err != nil {
			t.Fatalf("ReadComplexKeys failed: %v", err)
		}
		if len(keys) != 0 {
			t.Errorf("complex keys = %v, want none", keys)
		}
	})
}

func TestMergeTag_PatchesOnlyCarriedFields(t *testing.T) {
	path := createEmpty(t)
	e := mustOpen(t, path, false)

	title, artist := "Sky", "Eva"
	if err := e.MergeTag(types.TagPatch{Title: &title, Artist: &artist}); err != nil {
		t.Fatalf("MergeTag failed: %v", err)
	}
	if err := e.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	cleared := ""
	if err := e.MergeTag(types.TagPatch{Title: &cleared}); err != nil {
		t.Fatalf("MergeTag failed: %v", err)
	}
	if err := e.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	tag, err := e.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag failed: %v", err)
	}
	want := types.Tag{Artist: "Eva"}
	if *tag != want {
		t.Errorf("tag = %+v, want %+v (title cleared, artist kept)", *tag, want)
	}
}

func TestReadOnly(t *testing.T) {
	path := createEmpty(t)

	e := mustOpen(t, path, true)
	if !e.ReadOnly() {
		t.Fatal("handle must report read-only")
	}
	if _, err := e.ReadTag(); err != nil {
		t.Errorf("reads must work read-only: %v", err)
	}
	if err := e.MergeProperties(types.PropertyMap{"GENRE": {"Rock"}}, false); !errors.Is(err, errReadOnly) {
		t.Errorf("MergeProperties = %v, want errReadOnly", err)
	}
	if err := e.Persist(); !errors.Is(err, errReadOnly) {
		t.Errorf("Persist = %v, want errReadOnly", err)
	}
}

func TestRelease_Idempotent(t *testing.T) {
	path := createEmpty(t)

	e := mustOpen(t, path, false)
	for range 2 {
		if err := e.Release(); err != nil {
			t.Fatalf("Release failed: %v", err)
		}
	}
	if e.Valid() {
		t.Error("released handle must not be valid")
	}
	if _, err := e.ReadTag(); !errors.Is(err, errReleased) {
		t.Errorf("ReadTag after release = %v, want errReleased", err)
	}
	if err := e.MergeTag(types.TagPatch{}); !errors.Is(err, errReleased) {
		t.Errorf("MergeTag after release = %v, want errReleased", err)
	}
}

func TestReadAudioProperties(t *testing.T) {
	path := createEmpty(t)
	e := mustOpen(t, path, false)

	// Absent row reads as a zero description.
	props, err := e.ReadAudioProperties(types.ReadAverage)
	if err != nil {
		t.Fatalf("ReadAudioProperties failed: %v", err)
	}
	if *props != (types.AudioProperties{}) {
		t.Errorf("audio = %+v, want zero", *props)
	}

	_, err = e.db.Exec(`INSERT INTO audio (id, length_ms, bitrate, sample_rate, channels) VALUES (1, 273000, 320, 44100, 2)`)
	if err != nil {
		t.Fatalf("seed audio failed: %v", err)
	}

	props, err = e.ReadAudioProperties(types.ReadAverage)
	if err != nil {
		t.Fatalf("ReadAudioProperties failed: %v", err)
	}
	want := types.AudioProperties{
		Length:     273 * time.Second,
		Bitrate:    320,
		SampleRate: 44100,
		Channels:   2,
	}
	if *props != want {
		t.Errorf("audio = %+v, want %+v", *props, want)
	}
}
