// Package store holds the lazily populated read cache and the staged
// mutation buffer that together give a media file its uniform view over
// the four metadata sources.
package store

import (
	"slices"

	"github.com/lwoggardner/taglib-simple/internal/types"
)

// fetchState makes "have we asked the engine yet" an explicit fact.
// Absent results are remembered just like present ones; only errors
// leave an entry unfetched so the read can be retried.
type fetchState int

const (
	stateUnfetched fetchState = iota
	statePresent
	stateAbsent
)

// Cache memoizes engine reads. Each source is fetched at most once per
// fetch generation: the tag, the standard property map, the known
// structured-key list, and each structured property key independently.
//
// Every method takes the engine to fetch through; passing nil disables
// fetching, so a closed store serves only what is already cached.
type Cache struct {
	tag        types.Tag
	tagState   fetchState
	props      types.PropertyMap
	propsState fetchState
	keys       []string
	keysState  fetchState
	complex    map[string]complexEntry
}

type complexEntry struct {
	state fetchState
	value []types.VariantMap
}

// Tag returns the cached tag, fetching it at most once. ok is false when
// the tag is absent, not yet fetchable, or empty.
func (c *Cache) Tag(engine types.Engine) (types.Tag, bool, error) {
	if c.tagState == stateUnfetched {
		if engine == nil {
			return types.Tag{}, false, nil
		}
		tag, err := engine.ReadTag()
		if err != nil {
			return types.Tag{}, false, err
		}
		if tag == nil || tag.IsZero() {
			c.tagState = stateAbsent
		} else {
			c.tag = tag.Normalize()
			c.tagState = statePresent
		}
	}
	return c.tag, c.tagState == statePresent, nil
}

// Properties returns the cached standard property map, fetching it at
// most once. The returned map is shared; callers must not mutate it.
func (c *Cache) Properties(engine types.Engine) (types.PropertyMap, bool, error) {
	if c.propsState == stateUnfetched {
		if engine == nil {
			return nil, false, nil
		}
		props, err := engine.ReadProperties()
		if err != nil {
			return nil, false, err
		}
		props = props.Clone().Prune()
		if len(props) == 0 {
			c.propsState = stateAbsent
		} else {
			c.props = props
			c.propsState = statePresent
		}
	}
	return c.props, c.propsState == statePresent, nil
}

// ComplexKeys returns the known structured property keys, fetching the
// list at most once. established is false only when the list has never
// been fetched and engine is nil.
func (c *Cache) ComplexKeys(engine types.Engine) (keys []string, established bool, err error) {
	if c.keysState == stateUnfetched {
		if engine == nil {
			return nil, false, nil
		}
		fetched, err := engine.ReadComplexKeys()
		if err != nil {
			return nil, false, err
		}
		c.keys = slices.Clone(fetched)
		c.keysState = statePresent
	}
	return slices.Clone(c.keys), true, nil
}

// Complex returns the entries for one structured property key, fetching
// each key at most once. Once the known-key list has been established, a
// key outside it short-circuits to absent without touching the engine.
func (c *Cache) Complex(engine types.Engine, key string) ([]types.VariantMap, bool, error) {
	if entry, ok := c.complex[key]; ok && entry.state != stateUnfetched {
		return entry.value, entry.state == statePresent, nil
	}
	if c.keysState == statePresent && !slices.Contains(c.keys, key) {
		c.setComplex(key, nil, stateAbsent)
		return nil, false, nil
	}
	if engine == nil {
		return nil, false, nil
	}
	value, err := engine.ReadComplex(key)
	if err != nil {
		return nil, false, err
	}
	if len(value) == 0 {
		c.setComplex(key, nil, stateAbsent)
		return nil, false, nil
	}
	value = types.CloneVariantMaps(value)
	c.setComplex(key, value, statePresent)
	return value, true, nil
}

// KnownComplex reports whether key is on the established known-key list.
// It never fetches; an unestablished list knows nothing.
func (c *Cache) KnownComplex(key string) bool {
	return c.keysState == statePresent && slices.Contains(c.keys, key)
}

// PresentComplex returns every structured entry already fetched and
// present, keyed by property name. It never fetches. The entries are
// shared with the cache and must not be modified.
func (c *Cache) PresentComplex() map[string][]types.VariantMap {
	out := make(map[string][]types.VariantMap, len(c.complex))
	for key, entry := range c.complex {
		if entry.state == statePresent {
			out[key] = entry.value
		}
	}
	return out
}

func (c *Cache) setComplex(key string, value []types.VariantMap, state fetchState) {
	if c.complex == nil {
		c.complex = make(map[string]complexEntry)
	}
	c.complex[key] = complexEntry{state: state, value: value}
}

// AddComplexKeys extends an established known-key list with keys that
// were just committed as structured properties. The list is additive
// only: nothing is ever removed, not even by a replace-all save. An
// unestablished list stays unestablished so a later read still asks the
// engine for the full picture.
func (c *Cache) AddComplexKeys(keys ...string) {
	if c.keysState != statePresent {
		return
	}
	for _, key := range keys {
		if !slices.Contains(c.keys, key) {
			c.keys = append(c.keys, key)
		}
	}
}

// Reset starts a new fetch generation after a successful save: the tag,
// the property map, and the structured entries are dropped. The known
// structured-key list survives.
func (c *Cache) Reset() {
	c.tag = types.Tag{}
	c.tagState = stateUnfetched
	c.props = nil
	c.propsState = stateUnfetched
	c.complex = nil
}
