package diag

// Reporter receives finished diagnostics from pipeline phases. Handler
// emits them immediately; Bag collects them for a later flush; Dedup
// filters repeats in front of another Reporter.
type Reporter interface {
	Emit(d *Diagnostic)
}

var (
	_ Reporter = (*Handler)(nil)
	_ Reporter = (*Bag)(nil)
	_ Reporter = (*Dedup)(nil)
)
