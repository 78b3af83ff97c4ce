package glade

import (
	"errors"
)

// Error kinds returned by the storage stack. Callers match them with errors.Is,
// context is attached by wrapping with %w.
var (
	ErrSyntax          = errors.New("syntax error")
	ErrInsert          = errors.New("insert error")
	ErrFetch           = errors.New("fetch error")
	ErrSelect          = errors.New("select error")
	ErrCorruptNode     = errors.New("corrupt node")
	ErrCellOutOfBounds = errors.New("cell index out of bounds")
	// ErrPageOverflow keeps the exact message existing clients compare against.
	ErrPageOverflow = errors.New("Cannot insert more records.")
)

var (
	errPagerClosed       = errors.New("pager is closed")
	errAppendOnly        = errors.New("rows can only be appended at the end of the table")
	errShortBuffer       = errors.New("buffer too short")
	errUnsupportedRoot   = errors.New("internal root node is not supported")
	errUnrecognizedKind  = errors.New("unrecognised statement kind")
	errUnrecognizedStore = errors.New("unrecognised storage layout")
)
