package source

import (
	"testing"
)

func span(id SourceID, start, end uint32) SourceSpan {
	return NewSourceSpan(NewSourceIndex(id, start), NewSourceIndex(id, end))
}

func TestNewSourceSpan(t *testing.T) {
	s := span(1, 10, 20)
	if s.Source() != 1 {
		t.Errorf("Source() = %d, want 1", s.Source())
	}
	if s.StartOffset() != 10 || s.EndOffset() != 20 {
		t.Errorf("offsets = %d..%d, want 10..20", s.StartOffset(), s.EndOffset())
	}
	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}
	if s.IsUnknown() {
		t.Error("constructed span should not be unknown")
	}
	if s.Start() != NewSourceIndex(1, 10) || s.End() != NewSourceIndex(1, 20) {
		t.Errorf("Start()/End() = %+v/%+v", s.Start(), s.End())
	}
}

func TestNewSourceSpan_CrossFilePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("constructing a span across two files should panic")
		}
	}()
	NewSourceSpan(NewSourceIndex(1, 0), NewSourceIndex(2, 5))
}

func TestNewSourceSpan_ReversedPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("constructing a span with start > end should panic")
		}
	}()
	NewSourceSpan(NewSourceIndex(1, 10), NewSourceIndex(1, 5))
}

func TestSourceSpan_ZeroValueIsUnknown(t *testing.T) {
	var s SourceSpan
	if !s.IsUnknown() {
		t.Error("zero value should be the unknown span")
	}
	if s.Source() != UnknownID {
		t.Errorf("Source() = %d, want UnknownID", s.Source())
	}
	if !s.Source().IsUnknown() {
		t.Error("zero value source id should be unknown")
	}
}

func TestSourceSpan_Merge(t *testing.T) {
	tests := []struct {
		name     string
		a, b     SourceSpan
		expected SourceSpan
		ok       bool
	}{
		{
			name:     "overlapping spans",
			a:        span(1, 10, 20),
			b:        span(1, 15, 30),
			expected: span(1, 10, 30),
			ok:       true,
		},
		{
			name:     "disjoint spans cover the gap",
			a:        span(1, 0, 5),
			b:        span(1, 10, 15),
			expected: span(1, 0, 15),
			ok:       true,
		},
		{
			name:     "contained span",
			a:        span(1, 0, 100),
			b:        span(1, 40, 60),
			expected: span(1, 0, 100),
			ok:       true,
		},
		{
			name:     "identical spans",
			a:        span(1, 3, 7),
			b:        span(1, 3, 7),
			expected: span(1, 3, 7),
			ok:       true,
		},
		{
			name: "different files",
			a:    span(1, 0, 5),
			b:    span(2, 0, 5),
			ok:   false,
		},
		{
			name: "unknown left operand",
			a:    SourceSpan{},
			b:    span(1, 0, 5),
			ok:   false,
		},
		{
			name: "unknown right operand",
			a:    span(1, 0, 5),
			b:    SourceSpan{},
			ok:   false,
		},
		{
			name: "both unknown",
			a:    SourceSpan{},
			b:    SourceSpan{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, ok := tt.a.Merge(tt.b)
			if ok != tt.ok {
				t.Fatalf("Merge() ok = %v, want %v", ok, tt.ok)
			}
			if ok && merged != tt.expected {
				t.Errorf("Merge() = %+v, want %+v", merged, tt.expected)
			}

			// Merge order must not matter.
			reversed, rok := tt.b.Merge(tt.a)
			if rok != ok || (ok && reversed != merged) {
				t.Errorf("Merge is not commutative: %+v/%v vs %+v/%v", merged, ok, reversed, rok)
			}
		})
	}
}

func TestSourceSpan_MergeAssociative(t *testing.T) {
	a := span(1, 0, 5)
	b := span(1, 20, 30)
	c := span(1, 10, 12)

	ab, ok := a.Merge(b)
	if !ok {
		t.Fatal("merge a+b failed")
	}
	left, ok := ab.Merge(c)
	if !ok {
		t.Fatal("merge (a+b)+c failed")
	}

	bc, ok := b.Merge(c)
	if !ok {
		t.Fatal("merge b+c failed")
	}
	right, ok := a.Merge(bc)
	if !ok {
		t.Fatal("merge a+(b+c) failed")
	}

	if left != right {
		t.Errorf("merge not associative: %+v != %+v", left, right)
	}
	if left != span(1, 0, 30) {
		t.Errorf("merged = %+v, want %+v", left, span(1, 0, 30))
	}
}

func TestSourceSpan_ShrinkFront(t *testing.T) {
	tests := []struct {
		name     string
		span     SourceSpan
		n        uint32
		expected SourceSpan
	}{
		{
			name:     "shrink by 3",
			span:     span(1, 10, 20),
			n:        3,
			expected: span(1, 13, 20),
		},
		{
			name:     "shrink by 0",
			span:     span(1, 10, 20),
			n:        0,
			expected: span(1, 10, 20),
		},
		{
			name:     "shrink to empty",
			span:     span(1, 10, 20),
			n:        10,
			expected: span(1, 20, 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.ShrinkFront(tt.n)
			if result != tt.expected {
				t.Errorf("ShrinkFront(%d) = %+v, want %+v", tt.n, result, tt.expected)
			}
			// The receiver is a value; the original must be untouched.
			if tt.span.StartOffset() != tt.expected.StartOffset()-tt.n {
				t.Errorf("original span mutated: %+v", tt.span)
			}
		})
	}
}

func TestSpanWrapper(t *testing.T) {
	s := span(3, 4, 9)
	wrapped := NewSpan(s, "token")
	if wrapped.Span() != s {
		t.Errorf("Span() = %+v, want %+v", wrapped.Span(), s)
	}
	if wrapped.Item != "token" {
		t.Errorf("Item = %q, want %q", wrapped.Item, "token")
	}

	// Span[T] satisfies Spanned, as does SourceSpan itself.
	var sp Spanned = wrapped
	if sp.Span() != s {
		t.Errorf("Spanned.Span() = %+v, want %+v", sp.Span(), s)
	}
	sp = s
	if sp.Span() != s {
		t.Errorf("SourceSpan.Span() = %+v, want %+v", sp.Span(), s)
	}
}
