package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestCaptureEmitter_Accumulates(t *testing.T) {
	e := NewCaptureEmitter()

	buf := e.Buffer()
	if buf.ANSI() {
		t.Fatal("capture buffers must not advertise ANSI support")
	}
	buf.WriteString("first\n")
	if err := e.Print(buf); err != nil {
		t.Fatalf("Print() error: %v", err)
	}

	second := e.Buffer()
	second.WriteString("second\n")
	if err := e.Print(second); err != nil {
		t.Fatalf("Print() error: %v", err)
	}

	if got, want := e.Captured(), "first\nsecond\n"; got != want {
		t.Fatalf("Captured() = %q, want %q", got, want)
	}
}

func TestCaptureEmitter_ConcurrentPrints(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping concurrency test in short mode")
	}

	const numGoroutines = 100
	e := NewCaptureEmitter()

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := e.Buffer()
			fmt.Fprintf(buf, "line %d\n", i)
			if err := e.Print(buf); err != nil {
				t.Errorf("Print() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := strings.Count(e.Captured(), "\n"); got != numGoroutines {
		t.Fatalf("captured %d lines, want %d", got, numGoroutines)
	}
}

func TestNullEmitter_Discards(t *testing.T) {
	e := NewNullEmitter(ColorNever)

	buf := e.Buffer()
	if buf.ANSI() {
		t.Fatal("ColorNever buffer advertises ANSI support")
	}
	buf.WriteString("dropped")
	if err := e.Print(buf); err != nil {
		t.Fatalf("Print() error: %v", err)
	}
}

func TestBuffer_Writes(t *testing.T) {
	var buf Buffer

	buf.WriteString("ab")
	if err := buf.WriteByte('c'); err != nil {
		t.Fatalf("WriteByte() error: %v", err)
	}
	fmt.Fprintf(&buf, "%d", 7)

	if got, want := buf.String(), "abc7"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if buf.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", buf.Len())
	}
	if string(buf.Bytes()) != "abc7" {
		t.Fatalf("Bytes() = %q", buf.Bytes())
	}
}

func TestAnsiEnabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stream"))
	if err != nil {
		t.Fatalf("creating stream file: %v", err)
	}
	defer f.Close()

	tests := []struct {
		name  string
		color ColorChoice
		want  bool
	}{
		{"never", ColorNever, false},
		{"always", ColorAlways, true},
		{"always ansi", ColorAlwaysAnsi, true},
		{"auto on a regular file", ColorAuto, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansiEnabled(tt.color, f); got != tt.want {
				t.Errorf("ansiEnabled(%v) = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}
