package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AudioProperties is the immutable technical description of the audio
// stream: duration, bitrate, sample rate, and channel count. It is read
// at most once, at open time, and survives both saves and close.
type AudioProperties struct {
	Length     time.Duration
	Bitrate    int // kb/s
	SampleRate int // Hz
	Channels   int
}

// Field returns one field as a KindInt Variant. Length is reported in
// integer milliseconds.
func (a AudioProperties) Field(field AudioField) Variant {
	switch field {
	case FieldLength:
		return NewInt(a.Length.Milliseconds())
	case FieldBitrate:
		return NewInt(int64(a.Bitrate))
	case FieldSampleRate:
		return NewInt(int64(a.SampleRate))
	case FieldChannels:
		return NewInt(int64(a.Channels))
	default:
		return Variant{}
	}
}

// MarshalJSON renders the duration as integer milliseconds, matching the
// value the length field reports.
func (a AudioProperties) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Length     int64 `json:"length"`
		Bitrate    int   `json:"bitrate"`
		SampleRate int   `json:"sample_rate"`
		Channels   int   `json:"channels"`
	}{a.Length.Milliseconds(), a.Bitrate, a.SampleRate, a.Channels})
}

// String returns a compact human-readable summary.
// Example output: "4m33s 320kb/s 44.1kHz stereo".
func (a AudioProperties) String() string {
	parts := make([]string, 0, 4)
	if a.Length > 0 {
		parts = append(parts, a.Length.Round(time.Second).String())
	}
	if a.Bitrate > 0 {
		parts = append(parts, fmt.Sprintf("%dkb/s", a.Bitrate))
	}
	if a.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(a.SampleRate)/1000))
	}
	if layout := channelLayout(a.Channels); layout != "" {
		parts = append(parts, layout)
	}
	return strings.Join(parts, " ")
}

// channelLayout returns a human-readable channel description.
func channelLayout(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 4:
		return "quad"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// ReadStyle selects how much effort the engine spends computing audio
// properties at open time. Engines may ignore the hint.
type ReadStyle int

const (
	// ReadNone skips audio properties entirely.
	ReadNone ReadStyle = iota
	// ReadFast accepts estimates.
	ReadFast
	// ReadAverage balances accuracy against cost.
	ReadAverage
	// ReadAccurate scans as much of the stream as needed for exact values.
	ReadAccurate
)

// String returns the style name.
func (s ReadStyle) String() string {
	switch s {
	case ReadNone:
		return "none"
	case ReadFast:
		return "fast"
	case ReadAverage:
		return "average"
	case ReadAccurate:
		return "accurate"
	default:
		return "unknown"
	}
}

// ParseReadStyle maps a config string to a ReadStyle.
func ParseReadStyle(s string) (ReadStyle, error) {
	switch strings.ToLower(s) {
	case "none":
		return ReadNone, nil
	case "fast":
		return ReadFast, nil
	case "average":
		return ReadAverage, nil
	case "accurate":
		return ReadAccurate, nil
	default:
		return ReadNone, fmt.Errorf("unknown audio read style %q", s)
	}
}
