package source

import "path/filepath"

// FileName is the display name of a registered source, retaining whether
// the source is a real file on disk or a virtual one that exists only in
// memory (REPL input, test fixtures, expanded macros).
//
// FileName is a comparable value and is used directly as a lookup key.
// The zero value is an empty virtual name.
type FileName struct {
	name string
	real bool
}

// RealName builds the FileName for a file on disk. The path is cleaned and
// slash-normalized so that the same file registered under equivalent paths
// shares one key.
func RealName(path string) FileName {
	return FileName{name: normalizePath(path), real: true}
}

// VirtualName builds the FileName for an in-memory source. Virtual names
// are never deduplicated by the registry.
func VirtualName(name string) FileName {
	return FileName{name: name}
}

// IsReal reports whether the name refers to a file on disk.
func (n FileName) IsReal() bool { return n.real }

// IsVirtual reports whether the name refers to an in-memory source.
func (n FileName) IsVirtual() bool { return !n.real }

func (n FileName) String() string { return n.name }

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
