package diag

import (
	"strings"
	"testing"

	"github.com/0xMiden/miden-diagnostics/source"
)

func TestBag_AddAndCap(t *testing.T) {
	b := NewBag(2)

	if !b.Add(NewDiagnostic(SevError, "first")) {
		t.Fatal("Add() = false with room left")
	}
	if !b.Add(NewDiagnostic(SevWarning, "second")) {
		t.Fatal("Add() = false with room left")
	}
	if b.Add(NewDiagnostic(SevNote, "third")) {
		t.Fatal("Add() = true past the cap")
	}

	if b.Len() != 2 || b.Cap() != 2 {
		t.Fatalf("Len() = %d, Cap() = %d, want 2, 2", b.Len(), b.Cap())
	}
}

func TestBag_HasErrorsAndWarnings(t *testing.T) {
	b := NewBag(4)

	b.Add(NewDiagnostic(SevNote, "n"))
	if b.HasErrors() || b.HasWarnings() {
		t.Fatal("notes alone should not count as errors or warnings")
	}

	b.Add(NewDiagnostic(SevWarning, "w"))
	if b.HasErrors() {
		t.Fatal("HasErrors() = true without errors")
	}
	if !b.HasWarnings() {
		t.Fatal("HasWarnings() = false with a warning")
	}

	b.Add(NewDiagnostic(SevError, "e"))
	if !b.HasErrors() {
		t.Fatal("HasErrors() = false with an error")
	}
}

func TestBag_MergeGrowsLimit(t *testing.T) {
	b := NewBag(1)
	b.Add(NewDiagnostic(SevError, "mine"))

	other := NewBag(2)
	other.Add(NewDiagnostic(SevWarning, "theirs one"))
	other.Add(NewDiagnostic(SevNote, "theirs two"))

	b.Merge(other)

	if b.Len() != 3 {
		t.Fatalf("Len() = %d after merge, want 3", b.Len())
	}
	if b.Cap() != 3 {
		t.Fatalf("Cap() = %d after merge, want 3", b.Cap())
	}
	b.Merge(nil)
	if b.Len() != 3 {
		t.Fatalf("Len() = %d after nil merge, want 3", b.Len())
	}
}

func TestBag_SortOrdersDeterministically(t *testing.T) {
	codemap := source.NewCodeMap()
	idA := codemap.Add(source.VirtualName("a.src"), "one\ntwo\n")
	idB := codemap.Add(source.VirtualName("b.src"), "three\n")

	spanA1, err := codemap.LineSpan(idA, 1)
	if err != nil {
		t.Fatalf("LineSpan() error: %v", err)
	}
	spanA2, err := codemap.LineSpan(idA, 2)
	if err != nil {
		t.Fatalf("LineSpan() error: %v", err)
	}
	spanB1, err := codemap.LineSpan(idB, 1)
	if err != nil {
		t.Fatalf("LineSpan() error: %v", err)
	}

	b := NewBag(8)
	b.Add(NewDiagnostic(SevWarning, "same span warning").WithLabel(NewLabel(LabelPrimary, spanA2)))
	b.Add(NewDiagnostic(SevError, "second code").WithCode("E2").WithLabel(NewLabel(LabelPrimary, spanB1)))
	b.Add(NewDiagnostic(SevNote, "first line").WithLabel(NewLabel(LabelPrimary, spanA1)))
	b.Add(NewDiagnostic(SevError, "no span"))
	b.Add(NewDiagnostic(SevError, "same span error").WithLabel(NewLabel(LabelPrimary, spanA2)))
	b.Add(NewDiagnostic(SevError, "first code").WithCode("E1").WithLabel(NewLabel(LabelPrimary, spanB1)))

	b.Sort()

	want := []string{
		"no span",
		"first line",
		"same span error",
		"same span warning",
		"first code",
		"second code",
	}
	items := b.Items()
	if len(items) != len(want) {
		t.Fatalf("Len() = %d, want %d", len(items), len(want))
	}
	for i, msg := range want {
		if items[i].Message != msg {
			t.Errorf("items[%d].Message = %q, want %q", i, items[i].Message, msg)
		}
	}
}

func TestBag_DedupRemovesRepeats(t *testing.T) {
	span := testSpan(1, 0, 5)

	dup := NewDiagnostic(SevError, "duplicate").WithCode("E1").WithLabel(NewLabel(LabelPrimary, span))

	b := NewBag(8)
	b.Add(dup)
	b.Add(dup)
	b.Add(NewDiagnostic(SevError, "different message").WithCode("E1").WithLabel(NewLabel(LabelPrimary, span)))
	b.Add(NewDiagnostic(SevError, "duplicate").WithCode("E1")) // no primary span

	b.Dedup()

	if b.Len() != 3 {
		t.Fatalf("Len() = %d after dedup, want 3", b.Len())
	}
	if b.Items()[0].Message != "duplicate" || b.Items()[1].Message != "different message" {
		t.Fatalf("dedup broke first-seen order: %+v", b.Items())
	}
}

func TestBag_FlushEmitsAndEmpties(t *testing.T) {
	h, emitter, _ := newTestHandler(Config{})

	b := NewBag(4)
	b.Add(NewDiagnostic(SevError, "one"))
	b.Add(NewDiagnostic(SevWarning, "two"))

	b.Flush(h)

	if b.Len() != 0 {
		t.Fatalf("Len() = %d after flush, want 0", b.Len())
	}
	if got := h.ErrorCount(); got != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", got)
	}
	out := emitter.Captured()
	if !strings.Contains(out, "error: one") || !strings.Contains(out, "warning: two") {
		t.Fatalf("Captured() = %q", out)
	}
}

func TestBag_EmitCopies(t *testing.T) {
	b := NewBag(2)

	d := NewDiagnostic(SevError, "original")
	b.Emit(&d)
	d.Message = "mutated"

	if got := b.Items()[0].Message; got != "original" {
		t.Fatalf("bag entry = %q, want %q", got, "original")
	}

	b.Emit(nil)
	if b.Len() != 1 {
		t.Fatalf("Len() = %d after nil emit, want 1", b.Len())
	}
}
