package native

import (
	"errors"
	"fmt"
	"strconv"

	"go.senan.xyz/taglib"

	"github.com/lwoggardner/taglib-simple/internal/types"
)

var errReleased = errors.New("handle released")

// engine is a stateful handle over one media file. The binding itself
// is path-based and stateless, so merges accumulate in memory as the
// pending tag map and reach the file in a single write on Persist.
type engine struct {
	path     string
	readOnly bool
	released bool

	// pending maps property names to their staged replacement lists.
	// A nil list deletes the key. Tag-field merges land here too, under
	// their property names, after the property merges of the same save.
	pending    map[string][]string
	replaceAll bool
}

func (e *engine) usable() error {
	if e.released {
		return errReleased
	}
	return nil
}

func (e *engine) writable() error {
	if err := e.usable(); err != nil {
		return err
	}
	if e.readOnly {
		return fmt.Errorf("%s opened read-only", e.path)
	}
	return nil
}

// Valid implements types.Engine.
func (e *engine) Valid() bool { return !e.released }

// ReadOnly implements types.Engine.
func (e *engine) ReadOnly() bool { return e.readOnly }

// ReadAudioProperties implements types.Engine. The binding always
// scans exactly, so the style hint changes nothing here.
func (e *engine) ReadAudioProperties(types.ReadStyle) (*types.AudioProperties, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	read, err := taglib.ReadProperties(e.path)
	if err != nil {
		return nil, err
	}
	return &types.AudioProperties{
		Length:     read.Length,
		Bitrate:    int(read.Bitrate),
		SampleRate: int(read.SampleRate),
		Channels:   int(read.Channels),
	}, nil
}

// ReadTag implements types.Engine. The seven fields are projected out
// of the property map: first value per name, year and track parsed
// from their leading digits.
func (e *engine) ReadTag() (*types.Tag, error) {
	props, err := e.ReadProperties()
	if err != nil {
		return nil, err
	}
	tag := types.Tag{
		Title:   first(props, taglib.Title),
		Artist:  first(props, taglib.Artist),
		Album:   first(props, taglib.Album),
		Genre:   first(props, taglib.Genre),
		Comment: first(props, taglib.Comment),
		Year:    leadingNumber(first(props, taglib.Date)),
		Track:   leadingNumber(first(props, taglib.TrackNumber)),
	}
	tag = tag.Normalize()
	return &tag, nil
}

// ReadProperties implements types.Engine.
func (e *engine) ReadProperties() (types.PropertyMap, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	read, err := taglib.ReadTags(e.path)
	if err != nil {
		return nil, err
	}
	return types.PropertyMap(read), nil
}

// ReadComplexKeys implements types.Engine. Containers hold no
// structured properties through the binding.
func (e *engine) ReadComplexKeys() ([]string, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	return nil, nil
}

// ReadComplex implements types.Engine. Every key is absent.
func (e *engine) ReadComplex(string) ([]types.VariantMap, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	return nil, nil
}

// MergeTag implements types.Engine. Fields translate to their property
// names; a cleared field stages a deletion.
func (e *engine) MergeTag(patch types.TagPatch) error {
	if err := e.writable(); err != nil {
		return err
	}
	e.stageText(taglib.Title, patch.Title)
	e.stageText(taglib.Artist, patch.Artist)
	e.stageText(taglib.Album, patch.Album)
	e.stageText(taglib.Genre, patch.Genre)
	e.stageText(taglib.Comment, patch.Comment)
	e.stageNumber(taglib.Date, patch.Year)
	e.stageNumber(taglib.TrackNumber, patch.Track)
	return nil
}

func (e *engine) stageText(key string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		e.pending[key] = nil
		return
	}
	e.pending[key] = []string{*value}
}

func (e *engine) stageNumber(key string, value *int) {
	if value == nil {
		return
	}
	if *value <= 0 {
		e.pending[key] = nil
		return
	}
	e.pending[key] = []string{strconv.Itoa(*value)}
}

// MergeProperties implements types.Engine.
func (e *engine) MergeProperties(props types.PropertyMap, replaceAll bool) error {
	if err := e.writable(); err != nil {
		return err
	}
	if replaceAll {
		e.replaceAll = true
		clear(e.pending)
	}
	for key, values := range props {
		if len(values) == 0 {
			e.pending[key] = nil
			continue
		}
		e.pending[key] = append([]string(nil), values...)
	}
	return nil
}

// MergeComplex implements types.Engine. Only an empty merge can
// succeed: there is nowhere to put entries.
func (e *engine) MergeComplex(props map[string][]types.VariantMap, replaceAll bool) error {
	if err := e.writable(); err != nil {
		return err
	}
	if len(props) > 0 {
		return fmt.Errorf("%s: structured properties are not supported by media containers", e.path)
	}
	return nil
}

// Persist implements types.Engine. All accumulated merges reach the
// file in one write.
func (e *engine) Persist() error {
	if err := e.writable(); err != nil {
		return err
	}
	if len(e.pending) == 0 && !e.replaceAll {
		return nil
	}
	var err error
	if e.replaceAll {
		err = taglib.WriteTags(e.path, e.pending, taglib.Clear)
	} else {
		err = taglib.WriteTags(e.path, e.pending, 0)
	}
	if err != nil {
		return err
	}
	e.pending = map[string][]string{}
	e.replaceAll = false
	return nil
}

// Release implements types.Engine. Unpersisted merges are dropped.
func (e *engine) Release() error {
	e.released = true
	e.pending = nil
	return nil
}

func first(props types.PropertyMap, key string) string {
	if values := props[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// leadingNumber parses the leading digit run of s, so "1998-05-01"
// yields 1998 and "3/12" yields 3.
func leadingNumber(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
