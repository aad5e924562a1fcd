package main

import (
	"reflect"
	"testing"
)

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		values  []string
		want    any
		wantErr bool
	}{
		{name: "tag text", key: "title", values: []string{"Sky"}, want: "Sky"},
		{name: "tag number", key: "year", values: []string{"1998"}, want: 1998},
		{name: "tag number rejects text", key: "year", values: []string{"next"}, wantErr: true},
		{name: "tag rejects multiple values", key: "title", values: []string{"a", "b"}, wantErr: true},
		{name: "property single", key: "GENRE", values: []string{"Rock"}, want: "Rock"},
		{name: "property list", key: "GENRE", values: []string{"Rock", "Jazz"}, want: []string{"Rock", "Jazz"}},
		{name: "invalid key", key: "", values: []string{"x"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := coerceValue(tc.key, tc.values)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("coerceValue(%q, %v) = %v, want error", tc.key, tc.values, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("coerceValue(%q, %v) failed: %v", tc.key, tc.values, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("coerceValue(%q, %v) = %#v, want %#v", tc.key, tc.values, got, tc.want)
			}
		})
	}
}

func TestDecodeJSONValue(t *testing.T) {
	got, err := decodeJSONValue(`[{"title":"One","start":0}]`)
	if err != nil {
		t.Fatalf("decodeJSONValue failed: %v", err)
	}
	want := []any{map[string]any{"title": "One", "start": int64(0)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded = %#v, want %#v", got, want)
	}

	if _, err := decodeJSONValue(`3.5`); err == nil {
		t.Error("a fractional number must fail")
	}
	if _, err := decodeJSONValue(`{broken`); err == nil {
		t.Error("malformed JSON must fail")
	}
}
