package storage

import "errors"

var (
	// ErrNotFound indicates no content exists for the given content id.
	ErrNotFound = errors.New("storage: content not found")

	// ErrInvalidContentID indicates the content id is not a 64-char hex string.
	ErrInvalidContentID = errors.New("storage: invalid content id")

	// ErrEmptyContent indicates an attempt to store empty content.
	ErrEmptyContent = errors.New("storage: content is empty")

	// ErrInvalidBaseDir indicates the base directory path is invalid.
	ErrInvalidBaseDir = errors.New("storage: invalid base directory")

	// ErrIOFailure indicates a file read/write error.
	ErrIOFailure = errors.New("storage: I/O failure")

	// ErrUnavailable indicates the content store is unreachable.
	ErrUnavailable = errors.New("storage: content store unavailable")
)
