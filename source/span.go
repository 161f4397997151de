package source

import (
	"fmt"
)

// SourceIndex is a byte position within a specific source file. Indices
// from different files are not comparable.
type SourceIndex struct {
	source SourceID
	offset uint32
}

// NewSourceIndex builds an index for the given file and byte offset.
func NewSourceIndex(id SourceID, offset uint32) SourceIndex {
	return SourceIndex{source: id, offset: offset}
}

// Source returns the id of the file this index addresses.
func (i SourceIndex) Source() SourceID { return i.source }

// Offset returns the byte offset within the file.
func (i SourceIndex) Offset() uint32 { return i.offset }

// SourceSpan is a byte range within a specific source file: a SourceID
// plus a half-open [start, end) pair of byte offsets.
//
// The zero value is the canonical unknown span, a safe default for syntax
// trees built without real sources. Registry lookups against it fail with
// ErrFileMissing rather than resolving into a real file.
type SourceSpan struct {
	source SourceID
	start  uint32
	end    uint32
}

// NewSourceSpan builds the span from start up to but not including end.
//
// Both indices must address the same file and start must not exceed end;
// violating either is a bug in the calling compiler stage and panics.
func NewSourceSpan(start, end SourceIndex) SourceSpan {
	if start.source != end.source {
		panic(fmt.Sprintf("source spans cannot start and end in different files: %d != %d", start.source, end.source))
	}
	if start.offset > end.offset {
		panic(fmt.Sprintf("source span start %d exceeds end %d", start.offset, end.offset))
	}
	return SourceSpan{source: start.source, start: start.offset, end: end.offset}
}

// IsUnknown reports whether this is the canonical unknown span.
func (s SourceSpan) IsUnknown() bool {
	return s == SourceSpan{}
}

// Source returns the id of the file this span addresses.
func (s SourceSpan) Source() SourceID { return s.source }

// Start returns the starting index of the span.
func (s SourceSpan) Start() SourceIndex {
	return SourceIndex{source: s.source, offset: s.start}
}

// End returns the ending index of the span (exclusive).
func (s SourceSpan) End() SourceIndex {
	return SourceIndex{source: s.source, offset: s.end}
}

// StartOffset returns the starting byte offset within the file.
func (s SourceSpan) StartOffset() uint32 { return s.start }

// EndOffset returns the ending byte offset within the file (exclusive).
func (s SourceSpan) EndOffset() uint32 { return s.end }

func (s SourceSpan) Len() uint32 {
	return s.end - s.start
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%d:%d-%d", s.source, s.start, s.end)
}

// ShrinkFront truncates n bytes from the start of the span.
func (s SourceSpan) ShrinkFront(n uint32) SourceSpan {
	s.start += n
	return s
}

// Merge returns the smallest span covering both s and other.
//
// Merging is commutative and associative. It reports false when either
// span is unknown or the spans address different files.
func (s SourceSpan) Merge(other SourceSpan) (SourceSpan, bool) {
	if s.IsUnknown() || other.IsUnknown() {
		return SourceSpan{}, false
	}
	if s.source != other.source {
		return SourceSpan{}, false
	}
	if other.start < s.start {
		s.start = other.start
	}
	if other.end > s.end {
		s.end = other.end
	}
	return s, true
}

// Span returns the span itself, satisfying Spanned.
func (s SourceSpan) Span() SourceSpan { return s }

// Spanned is implemented by values carrying a canonical SourceSpan.
type Spanned interface {
	Span() SourceSpan
}

// Span attaches a SourceSpan to a value that does not carry one of its
// own, for stamping tokens and syntax nodes.
type Span[T any] struct {
	span SourceSpan

	// Item is the wrapped value.
	Item T
}

// NewSpan wraps item with the given span.
func NewSpan[T any](span SourceSpan, item T) Span[T] {
	return Span[T]{span: span, Item: item}
}

// Span returns the source span attached to the item.
func (s Span[T]) Span() SourceSpan { return s.span }
