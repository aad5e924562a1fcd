package taglib

import (
	"github.com/lwoggardner/taglib-simple/internal/registry"
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// Engine is an alias to types.Engine.
// Re-exported from internal/types to keep the public API in one package.
//
// An Engine is the low-level collaborator that actually reads and writes
// one media item's metadata. The built-in engines live under internal/
// and register themselves when imported:
//
//	import (
//	    _ "github.com/lwoggardner/taglib-simple/internal/native" // media files
//	    _ "github.com/lwoggardner/taglib-simple/internal/tagdb"  // .tagdb sidecars
//	)
//
// A custom Engine can be wrapped directly with New, or registered for
// path-based opening with RegisterOpener.
type Engine = types.Engine

// Opener is an alias to registry.Opener.
//
// An Opener claims paths and constructs Engine handles for them. Engine
// packages register their Opener from init().
type Opener = registry.Opener

// RegisterOpener adds an opener to the path-based lookup used by Open.
// The most recently registered opener claiming a path wins, so a later
// registration can override a built-in engine.
func RegisterOpener(o Opener) {
	registry.Register(o)
}
