package tagdb

import (
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/lwoggardner/taglib-simple/internal/types"
)

var (
	errReleased = errors.New("handle released")
	errReadOnly = errors.New("tag database opened read-only")
)

// dbtx is the intersection of sql.DB and sql.Tx that reads and merges
// need, so both can serve as the query target.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// engine is a stateful handle over one tag database. Merges execute
// inside a transaction begun at the first merge; Persist commits it,
// and Release rolls back whatever never persisted.
type engine struct {
	path     string
	db       *sql.DB
	tx       *sql.Tx
	readOnly bool
	released bool
}

func (e *engine) usable() error {
	if e.released || e.db == nil {
		return errReleased
	}
	return nil
}

func (e *engine) writable() error {
	if err := e.usable(); err != nil {
		return err
	}
	if e.readOnly {
		return errReadOnly
	}
	return nil
}

// querier returns the open merge transaction when there is one, so
// reads observe merged-but-unpersisted state, and the database itself
// otherwise.
func (e *engine) querier() dbtx {
	if e.tx != nil {
		return e.tx
	}
	return e.db
}

func (e *engine) begin() (*sql.Tx, error) {
	if e.tx == nil {
		tx, err := e.db.Begin()
		if err != nil {
			return nil, err
		}
		e.tx = tx
	}
	return e.tx, nil
}

// Valid implements types.Engine.
func (e *engine) Valid() bool { return !e.released && e.db != nil }

// ReadOnly implements types.Engine.
func (e *engine) ReadOnly() bool { return e.readOnly }

// ReadAudioProperties implements types.Engine. The style hint is
// ignored: stored values are exact, there is nothing to estimate.
func (e *engine) ReadAudioProperties(types.ReadStyle) (*types.AudioProperties, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	var props types.AudioProperties
	var lengthMS int64
	row := e.querier().QueryRow(`SELECT length_ms, bitrate, sample_rate, channels FROM audio WHERE id = 1`)
	err := row.Scan(&lengthMS, &props.Bitrate, &props.SampleRate, &props.Channels)
	if errors.Is(err, sql.ErrNoRows) {
		return &types.AudioProperties{}, nil
	}
	if err != nil {
		return nil, err
	}
	props.Length = time.Duration(lengthMS) * time.Millisecond
	return &props, nil
}

// ReadTag implements types.Engine.
func (e *engine) ReadTag() (*types.Tag, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	return readTag(e.querier())
}

func readTag(q dbtx) (*types.Tag, error) {
	var t types.Tag
	row := q.QueryRow(`SELECT title, artist, album, genre, comment, year, track FROM tag WHERE id = 1`)
	err := row.Scan(&t.Title, &t.Artist, &t.Album, &t.Genre, &t.Comment, &t.Year, &t.Track)
	if errors.Is(err, sql.ErrNoRows) {
		return &types.Tag{}, nil
	}
	if err != nil {
		return nil, err
	}
	t = t.Normalize()
	return &t, nil
}

// ReadProperties implements types.Engine.
func (e *engine) ReadProperties() (types.PropertyMap, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	rows, err := e.querier().Query(`SELECT key, value FROM property ORDER BY key, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	props := types.PropertyMap{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		props[key] = append(props[key], value)
	}
	return props, rows.Err()
}

// ReadComplexKeys implements types.Engine.
func (e *engine) ReadComplexKeys() ([]string, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	rows, err := e.querier().Query(`SELECT DISTINCT key FROM complex_property ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ReadComplex implements types.Engine.
func (e *engine) ReadComplex(key string) ([]types.VariantMap, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	rows, err := e.querier().Query(`SELECT entry FROM complex_property WHERE key = ? ORDER BY position`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.VariantMap
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		entry, err := decodeEntry(data)
		if err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", key, len(entries), err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MergeTag implements types.Engine. The stored row is patched as a
// whole: read, apply, write back.
func (e *engine) MergeTag(patch types.TagPatch) error {
	if err := e.writable(); err != nil {
		return err
	}
	tx, err := e.begin()
	if err != nil {
		return err
	}
	current, err := readTag(tx)
	if err != nil {
		return err
	}
	next := patch.Apply(*current)
	_, err = tx.Exec(
		`INSERT OR REPLACE INTO tag (id, title, artist, album, genre, comment, year, track) VALUES (1, ?, ?, ?, ?, ?, ?, ?)`,
		next.Title, next.Artist, next.Album, next.Genre, next.Comment, next.Year, next.Track,
	)
	return err
}

// MergeProperties implements types.Engine.
func (e *engine) MergeProperties(props types.PropertyMap, replaceAll bool) error {
	if err := e.writable(); err != nil {
		return err
	}
	tx, err := e.begin()
	if err != nil {
		return err
	}
	if replaceAll {
		if _, err := tx.Exec(`DELETE FROM property`); err != nil {
			return err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(props)) {
		if !replaceAll {
			if _, err := tx.Exec(`DELETE FROM property WHERE key = ?`, key); err != nil {
				return err
			}
		}
		for i, value := range props[key] {
			if _, err := tx.Exec(`INSERT INTO property (key, position, value) VALUES (?, ?, ?)`, key, i, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// MergeComplex implements types.Engine.
func (e *engine) MergeComplex(props map[string][]types.VariantMap, replaceAll bool) error {
	if err := e.writable(); err != nil {
		return err
	}
	tx, err := e.begin()
	if err != nil {
		return err
	}
	if replaceAll {
		if _, err := tx.Exec(`DELETE FROM complex_property`); err != nil {
			return err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(props)) {
		if !replaceAll {
			if _, err := tx.Exec(`DELETE FROM complex_property WHERE key = ?`, key); err != nil {
				return err
			}
		}
		for i, entry := range props[key] {
			data, err := encodeEntry(entry)
			if err != nil {
				return fmt.Errorf("encode %s entry %d: %w", key, i, err)
			}
			if _, err := tx.Exec(`INSERT INTO complex_property (key, position, entry) VALUES (?, ?, ?)`, key, i, data); err != nil {
				return err
			}
		}
	}
	return nil
}

// Persist implements types.Engine. Without an open transaction there
// is nothing to commit.
func (e *engine) Persist() error {
	if err := e.writable(); err != nil {
		return err
	}
	if e.tx == nil {
		return nil
	}
	tx := e.tx
	e.tx = nil
	return tx.Commit()
}

// Release implements types.Engine. An open transaction rolls back, so
// merges never reach the file without a Persist.
func (e *engine) Release() error {
	if e.released {
		return nil
	}
	e.released = true
	if e.tx != nil {
		_ = e.tx.Rollback()
		e.tx = nil
	}
	return e.db.Close()
}
