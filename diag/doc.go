// Package diag provides the diagnostic model and emission pipeline of the
// compiler front-end.
//
// # Purpose
//
//   - Model findings (Severity, Label, Diagnostic) produced by lexer,
//     parser, and semantic passes, with spans resolved against a
//     source.CodeMap.
//   - Arbitrate severity centrally: verbosity filtering, warning
//     suppression, warnings-as-errors promotion, and error counting live
//     in the Handler, not in the producers.
//   - Decouple producers from presentation: the Handler renders through a
//     pluggable RenderFunc and writes through a pluggable Emitter, so the
//     same producer code drives terminals, tests, and silent runs.
//
// # Emitting diagnostics
//
// Phases hold a shared *Handler. The short-lived entry points (Error,
// Warn, Note) cover one-message diagnostics; richer ones are assembled
// with the fluent builder:
//
//	h.Diagnostic(diag.SevError).
//		WithMessage("unexpected end of expression").
//		WithPrimaryLabel(span, "expected an operand here").
//		WithNote("expressions cannot end with a trailing operator").
//		Emit()
//
// Phases that aggregate before flushing collect into a Bag, optionally
// behind a Dedup filter; both satisfy Reporter, as does the Handler.
//
// A Handler is safe to share across goroutines: its policy is fixed at
// construction and its only mutable state is an atomic error counter.
package diag
