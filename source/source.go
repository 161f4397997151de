// Package source provides the thread-safe source registry and the span
// algebra used to attach precise locations to compiler diagnostics.
package source

import (
	"fmt"

	"fortio.org/safecast"
)

// SourceID uniquely identifies a file registered in a CodeMap.
//
// Identifiers are dense, monotonically increasing, and never reused within
// a process. The zero value is UnknownID, which names no file: registry
// lookups against it fail with ErrFileMissing instead of resolving into a
// real entry.
type SourceID uint32

// UnknownID is the distinguished "no file" identifier.
const UnknownID SourceID = 0

// IsUnknown reports whether id is the UnknownID sentinel.
func (id SourceID) IsUnknown() bool { return id == UnknownID }

// Location is a human-readable position in a source file.
type Location struct {
	Line   uint32 // 1-based
	Column uint32 // 1-based, counted in runes from the line start
}

func mustUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
