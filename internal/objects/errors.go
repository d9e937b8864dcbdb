package objects

import "errors"

// Failure classes. Every error returned by this package wraps exactly one of
// them, so callers can branch with errors.Is.
var (
	// ErrNotFound means no object file exists for the requested hash.
	ErrNotFound = errors.New("object not found")

	// ErrIO means the filesystem or the compression stream failed while
	// reading or writing an object file.
	ErrIO = errors.New("object i/o failure")

	// ErrInvalidData means stored or supplied bytes are not a well-formed object.
	ErrInvalidData = errors.New("invalid object data")

	// ErrInvalidInput means a caller-supplied argument was unusable, such as a
	// malformed hash or an unreadable source file.
	ErrInvalidInput = errors.New("invalid input")
)
