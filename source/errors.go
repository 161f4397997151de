package source

import "errors"

var (
	// ErrFileMissing indicates a lookup referenced a SourceID or FileName
	// not present in the registry, or the UnknownID sentinel.
	ErrFileMissing = errors.New("file missing")
	// ErrIndexOutOfBounds indicates a byte offset or span outside the
	// file content.
	ErrIndexOutOfBounds = errors.New("byte index out of bounds")
	// ErrLineOutOfBounds indicates a line number past the end of the file.
	ErrLineOutOfBounds = errors.New("line out of bounds")
	// ErrColumnOutOfBounds indicates a column past the end of its line.
	ErrColumnOutOfBounds = errors.New("column out of bounds")
	// ErrInvalidUTF8 indicates file content that is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("source is not valid utf-8")
)
