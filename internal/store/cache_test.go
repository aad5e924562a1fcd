package store

import (
	"errors"
	"slices"
	"testing"

	"github.com/lwoggardner/taglib-simple/internal/enginetest"
	"github.com/lwoggardner/taglib-simple/internal/types"
)

func TestCache_TagFetchedOnce(t *testing.T) {
	engine := enginetest.New("song.tagdb")
	engine.Tag = types.Tag{Title: "Sky"}

	cache := &Cache{}
	for range 3 {
		tag, ok, err := cache.Tag(engine)
		if err != nil {
			t.Fatalf("Tag() error: %v", err)
		}
		if !ok || tag.Title != "Sky" {
			t.Fatalf("Tag() = %+v (ok=%v), want Sky", tag, ok)
		}
	}

	if engine.Calls["ReadTag"] != 1 {
		t.Errorf("ReadTag called %d times, want 1", engine.Calls["ReadTag"])
	}
}

func TestCache_AbsentTagMemoized(t *testing.T) {
	engine := enginetest.New("empty.tagdb")

	cache := &Cache{}
	for range 2 {
		_, ok, err := cache.Tag(engine)
		if err != nil {
			t.Fatalf("Tag() error: %v", err)
		}
		if ok {
			t.Fatal("Tag() ok = true, want absent")
		}
	}

	if engine.Calls["ReadTag"] != 1 {
		t.Errorf("ReadTag called %d times, want 1", engine.Calls["ReadTag"])
	}
}

func TestCache_NilEngineServesCachedOnly(t *testing.T) {
	engine := enginetest.New("song.tagdb")
	engine.Props = types.PropertyMap{"GENRE": {"Rock"}}

	cache := &Cache{}
	if _, ok, err := cache.Properties(nil); ok || err != nil {
		t.Fatalf("Properties(nil) before fetch = ok=%v err=%v, want miss without error", ok, err)
	}

	if _, _, err := cache.Properties(engine); err != nil {
		t.Fatalf("Properties() error: %v", err)
	}

	props, ok, err := cache.Properties(nil)
	if err != nil || !ok {
		t.Fatalf("Properties(nil) after fetch = ok=%v err=%v, want cached hit", ok, err)
	}
	if !slices.Equal(props["GENRE"], []string{"Rock"}) {
		t.Errorf("GENRE = %v, want [Rock]", props["GENRE"])
	}
	if engine.Calls["ReadProperties"] != 1 {
		t.Errorf("ReadProperties called %d times, want 1", engine.Calls["ReadProperties"])
	}
}

func TestCache_FetchErrorLeavesEntryRetryable(t *testing.T) {
	engine := enginetest.New("song.tagdb")
	engine.Tag = types.Tag{Title: "Sky"}
	engine.Fail["ReadTag"] = enginetest.ErrInjected

	cache := &Cache{}
	if _, _, err := cache.Tag(engine); !errors.Is(err, enginetest.ErrInjected) {
		t.Fatalf("Tag() error = %v, want injected failure", err)
	}

	delete(engine.Fail, "ReadTag")
	tag, ok, err := cache.Tag(engine)
	if err != nil || !ok || tag.Title != "Sky" {
		t.Errorf("Tag() after retry = %+v (ok=%v, err=%v), want Sky", tag, ok, err)
	}
	if engine.Calls["ReadTag"] != 2 {
		t.Errorf("ReadTag called %d times, want 2", engine.Calls["ReadTag"])
	}
}

func TestCache_ComplexFetchedPerKey(t *testing.T) {
	engine := enginetest.New("song.tagdb")
	engine.Complex = map[string][]types.VariantMap{
		"PICTURE": {{"mimeType": types.NewString("image/png")}},
		"CHAPTER": {{"title": types.NewString("One")}},
	}

	cache := &Cache{}
	for range 2 {
		entries, ok, err := cache.Complex(engine, "PICTURE")
		if err != nil || !ok || len(entries) != 1 {
			t.Fatalf("Complex(PICTURE) = %v (ok=%v, err=%v)", entries, ok, err)
		}
	}

	if engine.Calls["ReadComplex(PICTURE)"] != 1 {
		t.Errorf("ReadComplex(PICTURE) called %d times, want 1", engine.Calls["ReadComplex(PICTURE)"])
	}
	if engine.Calls["ReadComplex(CHAPTER)"] != 0 {
		t.Errorf("ReadComplex(CHAPTER) called %d times, want 0", engine.Calls["ReadComplex(CHAPTER)"])
	}
}

func TestCache_ComplexGatedByKnownKeys(t *testing.T) {
	engine := enginetest.New("song.tagdb")
	engine.Complex = map[string][]types.VariantMap{
		"PICTURE": {{"mimeType": types.NewString("image/png")}},
	}

	cache := &Cache{}
	if _, _, err := cache.ComplexKeys(engine); err != nil {
		t.Fatalf("ComplexKeys() error: %v", err)
	}

	// The key list is established: a key outside it must short-circuit
	// to absent without an engine read.
	_, ok, err := cache.Complex(engine, "LYRICS")
	if err != nil || ok {
		t.Fatalf("Complex(LYRICS) = ok=%v err=%v, want absent", ok, err)
	}
	if engine.Calls["ReadComplex(LYRICS)"] != 0 {
		t.Errorf("ReadComplex(LYRICS) called %d times, want 0", engine.Calls["ReadComplex(LYRICS)"])
	}
}

func TestCache_ComplexUngatedBeforeKeyList(t *testing.T) {
	engine := enginetest.New("song.tagdb")
	engine.Complex = map[string][]types.VariantMap{
		"PICTURE": {{"mimeType": types.NewString("image/png")}},
	}

	cache := &Cache{}
	// No key list yet: the entry fetch goes straight to the engine.
	entries, ok, err := cache.Complex(engine, "PICTURE")
	if err != nil || !ok || len(entries) != 1 {
		t.Fatalf("Complex(PICTURE) = %v (ok=%v, err=%v)", entries, ok, err)
	}
	if engine.Calls["ReadComplexKeys"] != 0 {
		t.Errorf("ReadComplexKeys called %d times, want 0", engine.Calls["ReadComplexKeys"])
	}
}

func TestCache_ResetKeepsKnownKeys(t *testing.T) {
	engine := enginetest.New("song.tagdb")
	engine.Tag = types.Tag{Title: "Sky"}
	engine.Complex = map[string][]types.VariantMap{
		"PICTURE": {{"mimeType": types.NewString("image/png")}},
	}

	cache := &Cache{}
	if _, _, err := cache.Tag(engine); err != nil {
		t.Fatal(err)
	}
	if _, _, err := cache.ComplexKeys(engine); err != nil {
		t.Fatal(err)
	}
	if _, _, err := cache.Complex(engine, "PICTURE"); err != nil {
		t.Fatal(err)
	}

	cache.Reset()
	cache.AddComplexKeys("LYRICS")

	// Tag and entries refetch after the reset.
	if _, _, err := cache.Tag(engine); err != nil {
		t.Fatal(err)
	}
	if engine.Calls["ReadTag"] != 2 {
		t.Errorf("ReadTag called %d times after reset, want 2", engine.Calls["ReadTag"])
	}

	// The known-key list survives the reset and grew additively.
	keys, established, err := cache.ComplexKeys(nil)
	if err != nil || !established {
		t.Fatalf("ComplexKeys(nil) = established=%v err=%v, want established", established, err)
	}
	slices.Sort(keys)
	want := []string{"LYRICS", "PICTURE"}
	if !slices.Equal(keys, want) {
		t.Errorf("known keys = %v, want %v", keys, want)
	}
	if engine.Calls["ReadComplexKeys"] != 1 {
		t.Errorf("ReadComplexKeys called %d times, want 1", engine.Calls["ReadComplexKeys"])
	}
}

func TestCache_AddComplexKeysNeedsEstablishedList(t *testing.T) {
	cache := &Cache{}
	cache.AddComplexKeys("PICTURE")

	// The list was never fetched, so it must stay unestablished rather
	// than pretend PICTURE is the whole story.
	_, established, err := cache.ComplexKeys(nil)
	if err != nil {
		t.Fatal(err)
	}
	if established {
		t.Error("known-key list should stay unestablished until fetched")
	}
}
