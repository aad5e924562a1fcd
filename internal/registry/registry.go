// Package registry matches media paths to the engines that can open them.
package registry

import (
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Opener is the interface engine packages implement to participate in
// path-based opening.
type Opener interface {
	// Name identifies the engine in logs and error messages.
	Name() string

	// Claims reports whether the opener recognizes path as one of its
	// own, typically by extension. Claiming a path does not guarantee
	// that Open will succeed.
	Claims(path string) bool

	// Open establishes an engine handle on the file at path. readOnly
	// requests a read-only handle; an engine may also downgrade to
	// read-only on its own, for example when the file mode forbids
	// writing.
	Open(path string, readOnly bool) (types.Engine, error)
}

// openers holds registered openers in registration order.
var openers []Opener

// Register adds an opener to the lookup chain.
// This is called by engine packages during initialization (init functions).
func Register(o Opener) {
	openers = append(openers, o)
}

// Lookup returns the most recently registered opener that claims path,
// so a later registration can override a built-in engine.
// Returns nil if no registered opener claims the path.
func Lookup(path string) Opener {
	for i := len(openers) - 1; i >= 0; i-- {
		if openers[i].Claims(path) {
			return openers[i]
		}
	}
	return nil
}

// Names returns the names of all registered openers in registration
// order. Used in diagnostics when no opener claims a path.
func Names() []string {
	names := make([]string, len(openers))
	for i, o := range openers {
		names[i] = o.Name()
	}
	return names
}
