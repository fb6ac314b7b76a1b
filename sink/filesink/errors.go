package filesink

import "errors"

// Construction precondition violations. Everything else a sink returns
// is an I/O or formatter error, propagated unchanged.
var (
	// ErrEmptyFilename the destination path is required
	ErrEmptyFilename = errors.New("filesink: filename is required")

	// ErrNilFormatter the formatter collaborator is required
	ErrNilFormatter = errors.New("filesink: formatter is required")

	// ErrNegativeSizeLimit the size limit must be zero or positive
	ErrNegativeSizeLimit = errors.New("filesink: negative size limit")

	// ErrNilEntry Append was called with a nil entry
	ErrNilEntry = errors.New("filesink: nil entry")

	// ErrClosed the sink has been closed
	ErrClosed = errors.New("filesink: sink is closed")
)
