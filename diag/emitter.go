package diag

import (
	"bytes"
	"os"
	"sync"

	"golang.org/x/term"
)

// Buffer is the rendering target an Emitter hands out: the rendered bytes
// of one emission plus whether ANSI styling may be written into them. It
// implements io.Writer.
type Buffer struct {
	buf  bytes.Buffer
	ansi bool
}

// ANSI reports whether ANSI escapes may be written to this buffer.
func (b *Buffer) ANSI() bool { return b.ansi }

func (b *Buffer) Write(p []byte) (int, error) { return b.buf.Write(p) }

func (b *Buffer) WriteString(s string) (int, error) { return b.buf.WriteString(s) }

func (b *Buffer) WriteByte(c byte) error { return b.buf.WriteByte(c) }

// Bytes returns the rendered contents. The slice is only valid until the
// next write.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

func (b *Buffer) Len() int { return b.buf.Len() }

func (b *Buffer) String() string { return b.buf.String() }

// Emitter owns the output stream for rendered diagnostics. Buffer yields
// a fresh buffer whose ANSI capability matches the stream; Print writes a
// completed buffer. Print must be safe for concurrent use so a shared
// Handler can emit from multiple goroutines.
type Emitter interface {
	Buffer() *Buffer
	Print(buf *Buffer) error
}

// DefaultEmitter writes rendered diagnostics to stderr.
type DefaultEmitter struct {
	ansi bool
}

// NewDefaultEmitter constructs the stderr emitter with the given color
// behavior.
func NewDefaultEmitter(color ColorChoice) *DefaultEmitter {
	return &DefaultEmitter{ansi: ansiEnabled(color, os.Stderr)}
}

func (e *DefaultEmitter) Buffer() *Buffer { return &Buffer{ansi: e.ansi} }

func (e *DefaultEmitter) Print(buf *Buffer) error {
	_, err := os.Stderr.Write(buf.Bytes())
	return err
}

// CaptureEmitter accumulates everything printed, for tests and tools that
// assert on rendered output. Captured buffers carry no ANSI styling.
type CaptureEmitter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func NewCaptureEmitter() *CaptureEmitter { return &CaptureEmitter{} }

func (e *CaptureEmitter) Buffer() *Buffer { return &Buffer{} }

func (e *CaptureEmitter) Print(buf *Buffer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.buf.Write(buf.Bytes())
	return err
}

// Captured returns everything printed so far.
func (e *CaptureEmitter) Captured() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.String()
}

// NullEmitter discards everything printed. It still negotiates ANSI
// capability against stdout so rendering costs stay realistic.
type NullEmitter struct {
	ansi bool
}

func NewNullEmitter(color ColorChoice) *NullEmitter {
	return &NullEmitter{ansi: ansiEnabled(color, os.Stdout)}
}

func (e *NullEmitter) Buffer() *Buffer { return &Buffer{ansi: e.ansi} }

func (e *NullEmitter) Print(*Buffer) error { return nil }

func ansiEnabled(color ColorChoice, f *os.File) bool {
	switch color {
	case ColorNever:
		return false
	case ColorAlways, ColorAlwaysAnsi:
		return true
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}
