package types

import "fmt"

// CannotOpenError is returned when a store cannot be constructed because
// no engine claims the path or the engine failed to establish a valid
// handle. Fatal: retrying the same open will fail the same way.
type CannotOpenError struct {
	Path string
	Err  error
}

func (e *CannotOpenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: cannot open: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: cannot open", e.Path)
}

func (e *CannotOpenError) Unwrap() error { return e.Err }

// InvalidKeyError is returned when an identifier cannot be resolved to a
// tag field, an audio field, or a property name.
type InvalidKeyError struct {
	Identifier string
	Reason     string
}

func (e *InvalidKeyError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid key %q: %s", e.Identifier, e.Reason)
	}
	return fmt.Sprintf("invalid key %q", e.Identifier)
}

// InvalidValueTypeError is returned when a value fails validation before
// staging. The mutation buffer is never modified when this is returned.
type InvalidValueTypeError struct {
	Key    string // resolved key name, empty when validating a bare value
	Value  any
	Reason string
}

func (e *InvalidValueTypeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("invalid value for %s: %s (got %T)", e.Key, e.Reason, e.Value)
	}
	return fmt.Sprintf("invalid value: %s (got %T)", e.Reason, e.Value)
}

// ReadOnlyFieldError is returned when a write is staged against an audio
// properties field.
type ReadOnlyFieldError struct {
	Field string
}

func (e *ReadOnlyFieldError) Error() string {
	return fmt.Sprintf("audio field %s is read-only", e.Field)
}

// NotWritableError is returned when a write or save is attempted on a
// store that is closed or was opened read-only.
type NotWritableError struct {
	Path   string
	Reason string // "closed" or "read-only"
}

func (e *NotWritableError) Error() string {
	return fmt.Sprintf("%s: not writable: %s", e.Path, e.Reason)
}

// KeyNotFoundError is returned by a fetch that misses every source and
// has no default to fall back on.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %s", e.Key)
}

// NothingStagedError is returned by a save on a writable store whose
// mutation buffer is empty. Saving nothing is caller misuse, not a no-op.
type NothingStagedError struct {
	Path string
}

func (e *NothingStagedError) Error() string {
	return fmt.Sprintf("%s: nothing staged to save", e.Path)
}

// SaveError is returned when the engine fails to merge or persist staged
// mutations. The mutation buffer is left intact so the save can be
// retried.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: save failed: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
