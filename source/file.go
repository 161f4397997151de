package source

import (
	"slices"
	"unicode/utf8"
)

// SourceFile is one registered source: its decoded text, display name,
// assigned id, and a derived line-start table for byte-offset to
// line/column resolution.
//
// Instances are immutable after construction and shared read-only across
// threads. The CodeMap is the sole constructor; entries live for the
// remainder of the process.
type SourceFile struct {
	id         SourceID
	name       FileName
	content    string
	lineStarts []uint32 // byte offset of the first byte of each line
	parent     SourceSpan
}

func newSourceFile(id SourceID, name FileName, content string, parent SourceSpan) *SourceFile {
	return &SourceFile{
		id:         id,
		name:       name,
		content:    content,
		lineStarts: buildLineStarts(content),
		parent:     parent,
	}
}

func buildLineStarts(content string) []uint32 {
	// The conversion below cannot overflow once the total length fits.
	mustUint32(len(content))

	starts := make([]uint32, 1, 16)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return starts
}

// ID returns the identifier assigned by the registry.
func (f *SourceFile) ID() SourceID { return f.id }

// Name returns the display name the file was registered under.
func (f *SourceFile) Name() FileName { return f.name }

// Source returns the full file content.
func (f *SourceFile) Source() string { return f.content }

// Parent returns the span in the including file from which this content
// logically originates, when the file was registered as a child.
func (f *SourceFile) Parent() (SourceSpan, bool) {
	return f.parent, !f.parent.IsUnknown()
}

// SourceSpan returns the span covering the entire file content.
func (f *SourceFile) SourceSpan() SourceSpan {
	return SourceSpan{source: f.id, start: 0, end: mustUint32(len(f.content))}
}

// SourceSlice returns the substring of the content covered by span.
func (f *SourceFile) SourceSlice(span SourceSpan) (string, error) {
	if span.source != f.id {
		return "", ErrFileMissing
	}
	if span.start > span.end || span.end > mustUint32(len(f.content)) {
		return "", ErrIndexOutOfBounds
	}
	return f.content[span.start:span.end], nil
}

// LineCount returns the number of lines. A trailing newline starts a
// final empty line, matching the line-start table.
func (f *SourceFile) LineCount() int { return len(f.lineStarts) }

// Line returns the text of the 1-based line, without its terminator.
func (f *SourceFile) Line(line uint32) (string, error) {
	span, err := f.LineSpan(line)
	if err != nil {
		return "", err
	}
	return f.content[span.start:span.end], nil
}

// LineSpan returns the span covering the 1-based line, excluding the
// line terminator.
func (f *SourceFile) LineSpan(line uint32) (SourceSpan, error) {
	if line == 0 || line > mustUint32(len(f.lineStarts)) {
		return SourceSpan{}, ErrLineOutOfBounds
	}
	idx := int(line) - 1
	start := f.lineStarts[idx]
	var end uint32
	if idx+1 < len(f.lineStarts) {
		end = f.lineStarts[idx+1] - 1 // drop the '\n'
	} else {
		end = mustUint32(len(f.content))
	}
	return SourceSpan{source: f.id, start: start, end: end}, nil
}

// Location resolves a byte offset to a 1-based line and column. The
// column counts runes from the line start. An offset equal to the content
// length addresses the position just past the final character.
func (f *SourceFile) Location(offset uint32) (Location, error) {
	if offset > mustUint32(len(f.content)) {
		return Location{}, ErrIndexOutOfBounds
	}
	line := f.lineIndex(offset)
	start := f.lineStarts[line]
	column := utf8.RuneCountInString(f.content[start:offset]) + 1
	return Location{Line: mustUint32(line + 1), Column: mustUint32(column)}, nil
}

// LineColumnToSpan resolves a 1-based line and column to the span covering
// exactly that position; callers extend the result if a range is desired.
// The column may address one position past the last character of the line,
// yielding an empty span there.
func (f *SourceFile) LineColumnToSpan(line, column uint32) (SourceSpan, error) {
	lineSpan, err := f.LineSpan(line)
	if err != nil {
		return SourceSpan{}, err
	}
	if column == 0 {
		return SourceSpan{}, ErrColumnOutOfBounds
	}
	rest := f.content[lineSpan.start:lineSpan.end]
	off := lineSpan.start
	for i := uint32(0); i < column-1; i++ {
		if rest == "" {
			return SourceSpan{}, ErrColumnOutOfBounds
		}
		_, n := utf8.DecodeRuneInString(rest)
		rest = rest[n:]
		off += uint32(n)
	}
	end := off
	if rest != "" {
		_, n := utf8.DecodeRuneInString(rest)
		end += uint32(n)
	}
	return SourceSpan{source: f.id, start: off, end: end}, nil
}

// lineIndex returns the 0-based line containing offset: the last line
// whose start does not exceed it.
func (f *SourceFile) lineIndex(offset uint32) int {
	i, found := slices.BinarySearch(f.lineStarts, offset)
	if found {
		return i
	}
	return i - 1
}
