package source

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"
)

// CodeMap is a thread-safe registry of source files and their contents,
// for use in diagnostics and parsing/compilation.
//
// It records a SourceFile per registered source, tracks the FileName each
// source was added under, deduplicates real files so a path is read from
// disk at most once, and assigns every entry a stable SourceID. Entries
// are never removed: the map is meant to live for the whole compilation
// pipeline so diagnostics can refer back to original sources at any point.
//
// A CodeMap may be shared freely across goroutines; every method is safe
// for concurrent use.
type CodeMap struct {
	files  sync.Map // SourceID -> *SourceFile
	names  sync.Map // FileName -> SourceID
	seen   sync.Map // normalized real path -> SourceID
	reads  singleflight.Group
	nextID atomic.Uint32
}

// NewCodeMap creates an empty CodeMap.
func NewCodeMap() *CodeMap {
	return &CodeMap{}
}

// Add registers in-memory content under name, returning the assigned id.
//
// Real names are deduplicated through the path index. Concurrent first
// registrations of the same path may mint more than one id; every minted
// id stays resolvable with correct content, while the path index converges
// on a single winner that all later path and name lookups observe.
//
// Virtual names skip the path index entirely and always insert fresh: the
// same virtual name may be registered repeatedly with different content,
// and the name index retains the most recent entry.
func (m *CodeMap) Add(name FileName, content string) SourceID {
	if !name.IsReal() {
		return m.insertFile(name, content, SourceSpan{})
	}
	path := name.String()
	if id, ok := m.seen.Load(path); ok {
		return id.(SourceID)
	}
	id := m.insertFile(name, content, SourceSpan{})
	winner, _ := m.seen.LoadOrStore(path, id)
	return winner.(SourceID)
}

// AddFile registers the file at path, reading it from disk only on the
// first registration of that path. Concurrent first registrations of one
// path share a single read.
//
// A read failure, or content that is not valid UTF-8, returns an error
// and leaves nothing registered for the path.
func (m *CodeMap) AddFile(path string) (SourceID, error) {
	name := RealName(path)
	key := name.String()
	if id, ok := m.seen.Load(key); ok {
		return id.(SourceID), nil
	}
	v, err, _ := m.reads.Do(key, func() (any, error) {
		if id, ok := m.seen.Load(key); ok {
			return id.(SourceID), nil
		}
		// #nosec G304 -- path is provided by the caller
		content, err := os.ReadFile(path)
		if err != nil {
			return UnknownID, err
		}
		if !utf8.Valid(content) {
			return UnknownID, fmt.Errorf("%w: %s", ErrInvalidUTF8, path)
		}
		id := m.insertFile(name, string(content), SourceSpan{})
		winner, _ := m.seen.LoadOrStore(key, id)
		return winner.(SourceID), nil
	})
	if err != nil {
		return UnknownID, err
	}
	return v.(SourceID), nil
}

// AddChild registers content whose origin is the parent span in another
// registered file, as with preprocessor-style inclusion. The lineage is
// recorded for the lifetime of the entry and every call inserts a new
// entry, even when an equal name is already present.
func (m *CodeMap) AddChild(name FileName, content string, parent SourceSpan) SourceID {
	return m.insertFile(name, content, parent)
}

// insertFile mints an id and publishes the file. The SourceFile is fully
// constructed before either index can observe it; the id entry becomes
// visible before the name entry, so a name lookup never yields an id that
// cannot be resolved.
func (m *CodeMap) insertFile(name FileName, content string, parent SourceSpan) SourceID {
	id := SourceID(m.nextID.Add(1))
	m.files.Store(id, newSourceFile(id, name, content, parent))
	m.names.Store(name, id)
	return id
}

// Get returns the SourceFile for id. Lookups with UnknownID, or an id
// never minted by this map, fail with ErrFileMissing.
func (m *CodeMap) Get(id SourceID) (*SourceFile, error) {
	if id == UnknownID {
		return nil, ErrFileMissing
	}
	f, ok := m.files.Load(id)
	if !ok {
		return nil, ErrFileMissing
	}
	return f.(*SourceFile), nil
}

// GetBySpan returns the SourceFile addressed by the span of spanned.
func (m *CodeMap) GetBySpan(spanned Spanned) (*SourceFile, error) {
	return m.Get(spanned.Span().Source())
}

// GetFileID returns the id registered for name.
func (m *CodeMap) GetFileID(name FileName) (SourceID, bool) {
	id, ok := m.names.Load(name)
	if !ok {
		return UnknownID, false
	}
	return id.(SourceID), true
}

// GetByName returns the SourceFile registered for name.
func (m *CodeMap) GetByName(name FileName) (*SourceFile, bool) {
	id, ok := m.GetFileID(name)
	if !ok {
		return nil, false
	}
	f, err := m.Get(id)
	if err != nil {
		return nil, false
	}
	return f, true
}

// Name returns the FileName for id.
func (m *CodeMap) Name(id SourceID) (FileName, error) {
	f, err := m.Get(id)
	if err != nil {
		return FileName{}, err
	}
	return f.Name(), nil
}

// NameFor returns the FileName addressed by the span of spanned.
func (m *CodeMap) NameFor(spanned Spanned) (FileName, error) {
	return m.Name(spanned.Span().Source())
}

// Parent returns the parent span recorded for id, when the entry was
// registered as a child.
func (m *CodeMap) Parent(id SourceID) (SourceSpan, bool) {
	f, err := m.Get(id)
	if err != nil {
		return SourceSpan{}, false
	}
	return f.Parent()
}

// SourceSpan returns the span covering the whole content of id.
func (m *CodeMap) SourceSpan(id SourceID) (SourceSpan, error) {
	f, err := m.Get(id)
	if err != nil {
		return SourceSpan{}, err
	}
	return f.SourceSpan(), nil
}

// SourceSlice returns the content covered by the span of spanned.
func (m *CodeMap) SourceSlice(spanned Spanned) (string, error) {
	span := spanned.Span()
	f, err := m.Get(span.Source())
	if err != nil {
		return "", err
	}
	return f.SourceSlice(span)
}

// Location resolves the start of the span of spanned to a 1-based line
// and column.
func (m *CodeMap) Location(spanned Spanned) (Location, error) {
	span := spanned.Span()
	f, err := m.Get(span.Source())
	if err != nil {
		return Location{}, err
	}
	return f.Location(span.StartOffset())
}

// LineSpan returns the span of the 1-based line in id, without the line
// terminator.
func (m *CodeMap) LineSpan(id SourceID, line uint32) (SourceSpan, error) {
	f, err := m.Get(id)
	if err != nil {
		return SourceSpan{}, err
	}
	return f.LineSpan(line)
}

// LineColumnToSpan resolves a 1-based line and column in id to the span
// covering exactly that position; callers extend the result if a range
// is desired.
func (m *CodeMap) LineColumnToSpan(id SourceID, line, column uint32) (SourceSpan, error) {
	f, err := m.Get(id)
	if err != nil {
		return SourceSpan{}, err
	}
	return f.LineColumnToSpan(line, column)
}
