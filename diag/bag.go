package diag

import "sort"

// Bag is a bounded, append-only collection of diagnostics, for phases
// that aggregate findings and flush them at a boundary instead of
// emitting one at a time. A Bag is not safe for concurrent use.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics.
func NewBag(max int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, max), max: max}
}

// Emit adds a copy of d, so a Bag can stand in for a Handler behind the
// Reporter interface. Overflow is dropped.
func (b *Bag) Emit(d *Diagnostic) {
	if d == nil {
		return
	}
	b.Add(*d)
}

// Add appends d, reporting false when the bag is already full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap returns the maximum number of diagnostics the bag accepts.
func (b *Bag) Cap() int { return b.max }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the collected diagnostics. The slice aliases the bag's
// backing array; callers must not mutate it.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether the bag holds any error diagnostics.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether the bag holds any warning-or-worse
// diagnostics.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Merge appends every diagnostic from other, growing the limit when the
// combined count exceeds it.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Flush emits every diagnostic to r in the bag's current order and
// empties the bag.
func (b *Bag) Flush(r Reporter) {
	for i := range b.items {
		r.Emit(&b.items[i])
	}
	b.items = b.items[:0]
}

// Sort orders diagnostics by primary span file, start, end, then
// severity (most severe first), then code, for deterministic flushes.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := &b.items[i], &b.items[j]
		si, sj := di.PrimarySpan(), dj.PrimarySpan()
		if si.Source() != sj.Source() {
			return si.Source() < sj.Source()
		}
		if si.StartOffset() != sj.StartOffset() {
			return si.StartOffset() < sj.StartOffset()
		}
		if si.EndOffset() != sj.EndOffset() {
			return si.EndOffset() < sj.EndOffset()
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup removes diagnostics repeating the severity, code, primary span,
// and message of an earlier entry, preserving first-seen order.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	kept := make([]Diagnostic, 0, len(b.items))
	for i := range b.items {
		key := newDedupKey(&b.items[i])
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, b.items[i])
	}
	b.items = kept
}
