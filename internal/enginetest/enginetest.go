// Package enginetest provides a scriptable in-memory Engine for tests:
// canned source data, per-method error injection, read counters, and an
// ordered merge log for asserting the save protocol.
package enginetest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Fake is a scriptable Engine backed by in-memory maps.
//
// Tests preload source data through the exported fields, inject failures
// through Fail, and afterwards assert on Calls and MergeLog. Merges
// accumulate invisibly and become readable only after Persist, so a
// test that re-reads after a save observes real persistence.
type Fake struct {
	Path    string
	Tag     types.Tag
	Props   types.PropertyMap
	Complex map[string][]types.VariantMap
	Audio   *types.AudioProperties

	// ReadOnlyMode makes the engine report itself read-only.
	ReadOnlyMode bool
	// Invalid makes the handle report itself unusable.
	Invalid bool

	// Fail injects an error per method name ("ReadTag", "Persist", ...).
	// The method returns the error without any other effect.
	Fail map[string]error

	// Calls counts invocations by method name; ReadComplex counts per
	// key as "ReadComplex(KEY)".
	Calls map[string]int

	// MergeLog records merge and persist calls in order, e.g.
	// "properties(replaceAll=false)", "complex(replaceAll=true)",
	// "tag", "persist".
	MergeLog []string

	// LastStyle records the style passed to ReadAudioProperties.
	LastStyle types.ReadStyle

	released bool

	staging *staging
}

// staging accumulates merges between the first merge and Persist.
type staging struct {
	tag     types.Tag
	props   types.PropertyMap
	complex map[string][]types.VariantMap
}

// New returns an empty, writable Fake for path.
func New(path string) *Fake {
	return &Fake{
		Path:    path,
		Props:   types.PropertyMap{},
		Complex: map[string][]types.VariantMap{},
		Fail:    map[string]error{},
		Calls:   map[string]int{},
	}
}

func (f *Fake) count(method string) {
	if f.Calls == nil {
		f.Calls = map[string]int{}
	}
	f.Calls[method]++
}

func (f *Fake) failure(method string) error {
	if f.Fail == nil {
		return nil
	}
	return f.Fail[method]
}

// Released reports whether Release has been called.
func (f *Fake) Released() bool { return f.released }

// Valid implements Engine.
func (f *Fake) Valid() bool { return !f.Invalid && !f.released }

// ReadOnly implements Engine.
func (f *Fake) ReadOnly() bool { return f.ReadOnlyMode }

// ReadAudioProperties implements Engine.
func (f *Fake) ReadAudioProperties(style types.ReadStyle) (*types.AudioProperties, error) {
	f.count("ReadAudioProperties")
	f.LastStyle = style
	if err := f.failure("ReadAudioProperties"); err != nil {
		return nil, err
	}
	if f.Audio == nil {
		return nil, nil
	}
	audio := *f.Audio
	return &audio, nil
}

// ReadTag implements Engine.
func (f *Fake) ReadTag() (*types.Tag, error) {
	f.count("ReadTag")
	if err := f.failure("ReadTag"); err != nil {
		return nil, err
	}
	tag := f.Tag
	return &tag, nil
}

// ReadProperties implements Engine.
func (f *Fake) ReadProperties() (types.PropertyMap, error) {
	f.count("ReadProperties")
	if err := f.failure("ReadProperties"); err != nil {
		return nil, err
	}
	return f.Props.Clone(), nil
}

// ReadComplexKeys implements Engine.
func (f *Fake) ReadComplexKeys() ([]string, error) {
	f.count("ReadComplexKeys")
	if err := f.failure("ReadComplexKeys"); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.Complex))
	for key := range f.Complex {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}

// ReadComplex implements Engine.
func (f *Fake) ReadComplex(key string) ([]types.VariantMap, error) {
	f.count(fmt.Sprintf("ReadComplex(%s)", key))
	if err := f.failure("ReadComplex"); err != nil {
		return nil, err
	}
	return types.CloneVariantMaps(f.Complex[key]), nil
}

func (f *Fake) stage() *staging {
	if f.staging == nil {
		f.staging = &staging{
			tag:     f.Tag,
			props:   f.Props.Clone(),
			complex: cloneComplex(f.Complex),
		}
		if f.staging.props == nil {
			f.staging.props = types.PropertyMap{}
		}
		if f.staging.complex == nil {
			f.staging.complex = map[string][]types.VariantMap{}
		}
	}
	return f.staging
}

// MergeTag implements Engine.
func (f *Fake) MergeTag(patch types.TagPatch) error {
	f.count("MergeTag")
	if err := f.failure("MergeTag"); err != nil {
		return err
	}
	f.MergeLog = append(f.MergeLog, "tag")
	s := f.stage()
	s.tag = patch.Apply(s.tag)
	return nil
}

// MergeProperties implements Engine.
func (f *Fake) MergeProperties(props types.PropertyMap, replaceAll bool) error {
	f.count("MergeProperties")
	if err := f.failure("MergeProperties"); err != nil {
		return err
	}
	f.MergeLog = append(f.MergeLog, fmt.Sprintf("properties(replaceAll=%v)", replaceAll))
	s := f.stage()
	s.props = s.props.Merge(props, replaceAll)
	return nil
}

// MergeComplex implements Engine.
func (f *Fake) MergeComplex(props map[string][]types.VariantMap, replaceAll bool) error {
	f.count("MergeComplex")
	if err := f.failure("MergeComplex"); err != nil {
		return err
	}
	f.MergeLog = append(f.MergeLog, fmt.Sprintf("complex(replaceAll=%v)", replaceAll))
	s := f.stage()
	if replaceAll {
		s.complex = map[string][]types.VariantMap{}
	}
	for key, entries := range props {
		if len(entries) == 0 {
			delete(s.complex, key)
			continue
		}
		s.complex[key] = types.CloneVariantMaps(entries)
	}
	return nil
}

// Persist implements Engine. Accumulated merges become readable.
func (f *Fake) Persist() error {
	f.count("Persist")
	if err := f.failure("Persist"); err != nil {
		return err
	}
	f.MergeLog = append(f.MergeLog, "persist")
	if f.staging != nil {
		f.Tag = f.staging.tag
		f.Props = f.staging.props
		f.Complex = f.staging.complex
		f.staging = nil
	}
	return nil
}

// Release implements Engine. Idempotent.
func (f *Fake) Release() error {
	f.count("Release")
	if err := f.failure("Release"); err != nil {
		return err
	}
	f.released = true
	return nil
}

// ErrInjected is a convenient sentinel for Fail entries.
var ErrInjected = errors.New("injected failure")

func cloneComplex(src map[string][]types.VariantMap) map[string][]types.VariantMap {
	if src == nil {
		return nil
	}
	out := make(map[string][]types.VariantMap, len(src))
	for key, entries := range src {
		out[key] = types.CloneVariantMaps(entries)
	}
	return out
}
