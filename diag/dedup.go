package diag

import "github.com/0xMiden/miden-diagnostics/source"

type dedupKey struct {
	severity Severity
	code     string
	span     source.SourceSpan
	message  string
}

func newDedupKey(d *Diagnostic) dedupKey {
	return dedupKey{
		severity: d.Severity,
		code:     d.Code,
		span:     d.PrimarySpan(),
		message:  d.Message,
	}
}

// Dedup wraps another Reporter and suppresses diagnostics repeating the
// severity, code, primary span, and message of one already forwarded.
// Useful in front of a Handler when a pass revisits the same nodes. Not
// safe for concurrent use.
type Dedup struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedup returns a Reporter forwarding only unique diagnostics to next.
func NewDedup(next Reporter) *Dedup {
	return &Dedup{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *Dedup) Emit(d *Diagnostic) {
	if r == nil || d == nil {
		return
	}
	key := newDedupKey(d)
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Emit(d)
	}
}

// Seen returns how many unique diagnostics passed through.
func (r *Dedup) Seen() int {
	if r == nil {
		return 0
	}
	return len(r.seen)
}
