package types

import (
	"testing"
	"time"
)

func TestAudioProperties_Field(t *testing.T) {
	props := AudioProperties{
		Length:     4*time.Minute + 33*time.Second,
		Bitrate:    320,
		SampleRate: 44100,
		Channels:   2,
	}

	tests := []struct {
		field AudioField
		want  int64
	}{
		{FieldLength, 273000},
		{FieldBitrate, 320},
		{FieldSampleRate, 44100},
		{FieldChannels, 2},
	}

	for _, tc := range tests {
		got, ok := props.Field(tc.field).Int()
		if !ok || got != tc.want {
			t.Errorf("Field(%v) = %d (ok=%v), want %d", tc.field, got, ok, tc.want)
		}
	}
}

func TestAudioProperties_String(t *testing.T) {
	props := AudioProperties{
		Length:     4*time.Minute + 33*time.Second,
		Bitrate:    320,
		SampleRate: 44100,
		Channels:   2,
	}
	want := "4m33s 320kb/s 44.1kHz stereo"
	if got := props.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got := (AudioProperties{}).String(); got != "" {
		t.Errorf("zero String() = %q, want empty", got)
	}
}

func TestAudioProperties_JSON(t *testing.T) {
	props := AudioProperties{Length: 1500 * time.Millisecond, Bitrate: 128}
	raw, err := props.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	want := `{"length":1500,"bitrate":128,"sample_rate":0,"channels":0}`
	if string(raw) != want {
		t.Errorf("MarshalJSON = %s, want %s", raw, want)
	}
}

func TestParseReadStyle(t *testing.T) {
	styles := []ReadStyle{ReadNone, ReadFast, ReadAverage, ReadAccurate}
	for _, style := range styles {
		parsed, err := ParseReadStyle(style.String())
		if err != nil {
			t.Fatalf("ParseReadStyle(%q) error: %v", style.String(), err)
		}
		if parsed != style {
			t.Errorf("ParseReadStyle(%q) = %v, want %v", style.String(), parsed, style)
		}
	}

	if _, err := ParseReadStyle("sloppy"); err == nil {
		t.Error("ParseReadStyle should reject unknown styles")
	}
}
