// Package native reads and writes metadata inside real media files
// through the TagLib WASM binding. It covers the standard property map
// and the normalized tag; media containers expose no structured
// property storage through the binding, so the structured key space is
// always empty here.
package native

import (
	"os"
	"path/filepath"
	"strings"

	"go.senan.xyz/taglib"

	"github.com/lwoggardner/taglib-simple/internal/registry"
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// extensions lists the container formats the binding handles.
var extensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".m4b":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".opus": true,
	".spx":  true,
	".wav":  true,
	".aif":  true,
	".aiff": true,
	".wv":   true,
	".ape":  true,
	".mpc":  true,
	".tta":  true,
	".wma":  true,
}

// opener matches media file paths to the TagLib engine.
type opener struct{}

// Name implements registry.Opener.
func (opener) Name() string { return "native" }

// Claims implements registry.Opener.
func (opener) Claims(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Open implements registry.Opener. The file is probed once so a
// corrupt or unsupported container fails here rather than on the first
// read.
func (opener) Open(path string, readOnly bool) (types.Engine, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if _, err := taglib.ReadTags(path); err != nil {
		return nil, err
	}
	return &engine{
		path:     path,
		readOnly: readOnly || info.Mode().Perm()&0o200 == 0,
		pending:  map[string][]string{},
	}, nil
}

// init registers the native engine
func init() {
	registry.Register(opener{})
}
