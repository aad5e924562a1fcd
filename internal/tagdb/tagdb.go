// Package tagdb stores media metadata in a standalone SQLite database,
// one ".tagdb" sidecar file per media item. It implements the full
// engine contract including structured properties, which makes it the
// storage of choice for metadata the media container cannot hold.
package tagdb

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/lwoggardner/taglib-simple/internal/registry"
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Extension is the file extension claimed by this engine.
const Extension = ".tagdb"

const schema = `
CREATE TABLE IF NOT EXISTS tag (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	title   TEXT    NOT NULL DEFAULT '',
	artist  TEXT    NOT NULL DEFAULT '',
	album   TEXT    NOT NULL DEFAULT '',
	genre   TEXT    NOT NULL DEFAULT '',
	comment TEXT    NOT NULL DEFAULT '',
	year    INTEGER NOT NULL DEFAULT 0,
	track   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS property (
	key      TEXT    NOT NULL,
	position INTEGER NOT NULL,
	value    TEXT    NOT NULL,
	PRIMARY KEY (key, position)
);

CREATE TABLE IF NOT EXISTS complex_property (
	key      TEXT    NOT NULL,
	position INTEGER NOT NULL,
	entry    TEXT    NOT NULL,
	PRIMARY KEY (key, position)
);

CREATE TABLE IF NOT EXISTS audio (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	length_ms   INTEGER NOT NULL DEFAULT 0,
	bitrate     INTEGER NOT NULL DEFAULT 0,
	sample_rate INTEGER NOT NULL DEFAULT 0,
	channels    INTEGER NOT NULL DEFAULT 0
);
`

// opener matches *.tagdb paths to the SQLite engine.
type opener struct{}

// Name implements registry.Opener.
func (opener) Name() string { return "tagdb" }

// Claims implements registry.Opener.
func (opener) Claims(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// Open implements registry.Opener. The file must already exist; Create
// initializes a new one.
func (opener) Open(path string, readOnly bool) (types.Engine, error) {
	return open(path, readOnly)
}

func open(path string, readOnly bool) (*engine, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	readOnly = readOnly || info.Mode().Perm()&0o200 == 0

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	if readOnly {
		// Probe instead of creating: the schema statement writes.
		var n int
		row := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'tag'`)
		if err := row.Scan(&n); err != nil {
			db.Close()
			return nil, err
		}
		if n == 0 {
			db.Close()
			return nil, fmt.Errorf("%s holds no tag database", path)
		}
	} else if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &engine{path: path, db: db, readOnly: readOnly}, nil
}

// Create initializes an empty tag database at path. It fails when the
// file already exists.
func Create(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return err
	}
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// init registers the tagdb engine
func init() {
	registry.Register(opener{})
}
