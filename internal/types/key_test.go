package types

import (
	"errors"
	"testing"
)

func TestResolveKey(t *testing.T) {
	tests := []struct {
		identifier string
		wantClass  KeyClass
		wantName   string
	}{
		{"title", ClassTag, "title"},
		{"artist", ClassTag, "artist"},
		{"album", ClassTag, "album"},
		{"genre", ClassTag, "genre"},
		{"comment", ClassTag, "comment"},
		{"year", ClassTag, "year"},
		{"track", ClassTag, "track"},
		{"length", ClassAudio, "length"},
		{"bitrate", ClassAudio, "bitrate"},
		{"sample_rate", ClassAudio, "sample_rate"},
		{"channels", ClassAudio, "channels"},
		{"TITLE", ClassProperty, "TITLE"},
		{"Title", ClassProperty, "Title"},
		{"MUSICBRAINZ_ALBUMID", ClassProperty, "MUSICBRAINZ_ALBUMID"},
		{"lowercase_unknown", ClassProperty, "lowercase_unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.identifier, func(t *testing.T) {
			key, err := ResolveKey(tc.identifier)
			if err != nil {
				t.Fatalf("ResolveKey(%q) error: %v", tc.identifier, err)
			}
			if key.Class() != tc.wantClass {
				t.Errorf("ResolveKey(%q).Class() = %v, want %v", tc.identifier, key.Class(), tc.wantClass)
			}
			if key.Name() != tc.wantName {
				t.Errorf("ResolveKey(%q).Name() = %q, want %q", tc.identifier, key.Name(), tc.wantName)
			}
		})
	}
}

func TestResolveKey_Empty(t *testing.T) {
	_, err := ResolveKey("")
	var invalid *InvalidKeyError
	if !errors.As(err, &invalid) {
		t.Errorf("ResolveKey(\"\") error = %v, want InvalidKeyError", err)
	}
}

func TestResolveKey_Deterministic(t *testing.T) {
	first, _ := ResolveKey("sample_rate")
	second, _ := ResolveKey("sample_rate")
	if first != second {
		t.Errorf("ResolveKey not deterministic: %v != %v", first, second)
	}
}

func TestMangle(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"title", "TITLE"},
		{"musicbrainz__album_id", "MUSICBRAINZ_ALBUMID"},
		{"album_artist", "ALBUMARTIST"},
		{"a___b", "A_B"},
		{"trailing_", "TRAILING"},
		{"__leading", "_LEADING"},
	}

	for _, tc := range tests {
		if got := Mangle(tc.name); got != tc.want {
			t.Errorf("Mangle(%q) = %q, want %q", tc.name, got, tc.want)
		}
		// Mangling is pure: repeating the call cannot change the answer.
		if got := Mangle(tc.name); got != tc.want {
			t.Errorf("Mangle(%q) second call = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolveAccessor(t *testing.T) {
	tests := []struct {
		accessor   string
		wantName   string
		wantAll    bool
		wantAssign bool
	}{
		{"title", "TITLE", false, false},
		{"title=", "TITLE", false, true},
		{"all_genre", "GENRE", true, false},
		{"all_genre=", "GENRE", true, true},
		{"musicbrainz__album_id", "MUSICBRAINZ_ALBUMID", false, false},
		{"all_musicbrainz__album_id", "MUSICBRAINZ_ALBUMID", true, false},
		// "all_" with nothing after it is the accessor for the ALL property.
		{"all_", "ALL", false, false},
		{"all_=", "ALL", false, true},
	}

	for _, tc := range tests {
		t.Run(tc.accessor, func(t *testing.T) {
			acc, err := ResolveAccessor(tc.accessor)
			if err != nil {
				t.Fatalf("ResolveAccessor(%q) error: %v", tc.accessor, err)
			}
			if acc.Key.Class() != ClassProperty {
				t.Errorf("class = %v, want %v", acc.Key.Class(), ClassProperty)
			}
			if acc.Key.Name() != tc.wantName {
				t.Errorf("name = %q, want %q", acc.Key.Name(), tc.wantName)
			}
			if acc.All != tc.wantAll {
				t.Errorf("all = %v, want %v", acc.All, tc.wantAll)
			}
			if acc.Assign != tc.wantAssign {
				t.Errorf("assign = %v, want %v", acc.Assign, tc.wantAssign)
			}
		})
	}
}

func TestResolveAccessor_Invalid(t *testing.T) {
	invalidNames := []string{"", "=", "Title", "track9", "with space", "semi;colon", "tit=le"}

	for _, name := range invalidNames {
		_, err := ResolveAccessor(name)
		var invalid *InvalidKeyError
		if !errors.As(err, &invalid) {
			t.Errorf("ResolveAccessor(%q) error = %v, want InvalidKeyError", name, err)
		}
	}
}

func TestKey_AsMapKey(t *testing.T) {
	entries := map[Key]int{
		TagKey(FieldTitle):    1,
		PropertyKey("TITLE"):  2,
		AudioKey(FieldLength): 3,
		PropertyKey("MBID"):   4,
	}

	if entries[TagKey(FieldTitle)] != 1 {
		t.Error("equal tag keys should address the same entry")
	}
	if entries[PropertyKey("TITLE")] != 2 {
		t.Error("the TITLE property key must stay distinct from the title tag key")
	}
	if len(entries) != 4 {
		t.Errorf("map has %d entries, want 4", len(entries))
	}
}
