package taglib

import (
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// CannotOpenError is an alias to types.CannotOpenError.
// Re-exported from internal/types to keep the public API in one package.
type CannotOpenError = types.CannotOpenError

// InvalidKeyError is an alias to types.InvalidKeyError.
// Re-exported from internal/types to keep the public API in one package.
type InvalidKeyError = types.InvalidKeyError

// InvalidValueTypeError is an alias to types.InvalidValueTypeError.
// Re-exported from internal/types to keep the public API in one package.
type InvalidValueTypeError = types.InvalidValueTypeError

// ReadOnlyFieldError is an alias to types.ReadOnlyFieldError.
// Re-exported from internal/types to keep the public API in one package.
type ReadOnlyFieldError = types.ReadOnlyFieldError

// NotWritableError is an alias to types.NotWritableError.
// Re-exported from internal/types to keep the public API in one package.
type NotWritableError = types.NotWritableError

// KeyNotFoundError is an alias to types.KeyNotFoundError.
// Re-exported from internal/types to keep the public API in one package.
type KeyNotFoundError = types.KeyNotFoundError

// NothingStagedError is an alias to types.NothingStagedError.
// Re-exported from internal/types to keep the public API in one package.
type NothingStagedError = types.NothingStagedError

// SaveError is an alias to types.SaveError.
// Re-exported from internal/types to keep the public API in one package.
type SaveError = types.SaveError
