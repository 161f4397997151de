package diag

import "github.com/0xMiden/miden-diagnostics/source"

// InFlightDiagnostic accumulates one diagnostic's message, labels, and
// notes before handing it to its Handler. Builders are single-use and not
// safe for concurrent use; Emit forwards at most once.
type InFlightDiagnostic struct {
	handler *Handler
	fileID  source.SourceID
	diag    Diagnostic
	emitted bool
}

func newInFlightDiagnostic(h *Handler, severity Severity) *InFlightDiagnostic {
	return &InFlightDiagnostic{
		handler: h,
		diag:    Diagnostic{Severity: severity},
	}
}

// Severity returns the severity the diagnostic was started with.
func (b *InFlightDiagnostic) Severity() Severity {
	return b.diag.Severity
}

// Verbose reports whether the handler renders rich source snippets, for
// callers that tailor message detail to the display style.
func (b *InFlightDiagnostic) Verbose() bool {
	return b.handler.display.Style == DisplayRich
}

// WithMessage sets the diagnostic message.
func (b *InFlightDiagnostic) WithMessage(message string) *InFlightDiagnostic {
	b.diag.Message = message
	return b
}

// WithCode tags the diagnostic with a stable machine-readable code.
func (b *InFlightDiagnostic) WithCode(code string) *InFlightDiagnostic {
	b.diag.Code = code
	return b
}

// SetSourceFile scopes subsequent WithPrimaryLabelAt calls to the file
// registered under name. An unregistered name leaves the scope unknown,
// and the scoped labels are dropped.
func (b *InFlightDiagnostic) SetSourceFile(name source.FileName) *InFlightDiagnostic {
	id, _ := b.handler.codemap.GetFileID(name)
	b.fileID = id
	return b
}

// WithPrimarySpan adds an uncaptioned primary label over span.
func (b *InFlightDiagnostic) WithPrimarySpan(span source.SourceSpan) *InFlightDiagnostic {
	b.diag.Labels = append(b.diag.Labels, Label{Style: LabelPrimary, Span: span})
	return b
}

// WithPrimaryLabel adds a primary label: the source the diagnostic is
// about.
func (b *InFlightDiagnostic) WithPrimaryLabel(span source.SourceSpan, message string) *InFlightDiagnostic {
	b.diag.Labels = append(b.diag.Labels, Label{Style: LabelPrimary, Span: span, Message: message})
	return b
}

// WithSecondaryLabel adds a secondary label: a related location that is
// not itself the origin.
func (b *InFlightDiagnostic) WithSecondaryLabel(span source.SourceSpan, message string) *InFlightDiagnostic {
	b.diag.Labels = append(b.diag.Labels, Label{Style: LabelSecondary, Span: span, Message: message})
	return b
}

// WithPrimaryLabelAt adds a primary label in the file scoped by
// SetSourceFile, covering the whole 1-based line. Unresolvable labels are
// dropped silently.
func (b *InFlightDiagnostic) WithPrimaryLabelAt(line, column uint32, message string) *InFlightDiagnostic {
	return b.withLabelAt(LabelPrimary, b.fileID, line, column, message)
}

// WithLabelAt adds a label in the file registered under name, covering
// the whole 1-based line. The column is accepted for call-site symmetry;
// the label always spans the line. Labels that fail to resolve, because
// the name is unregistered or the line is out of bounds, are dropped
// silently rather than failing the diagnostic that reports the real
// problem.
func (b *InFlightDiagnostic) WithLabelAt(style LabelStyle, name source.FileName, line, column uint32, message string) *InFlightDiagnostic {
	id, ok := b.handler.codemap.GetFileID(name)
	if !ok {
		return b
	}
	return b.withLabelAt(style, id, line, column, message)
}

func (b *InFlightDiagnostic) withLabelAt(style LabelStyle, id source.SourceID, line, _ uint32, message string) *InFlightDiagnostic {
	if id.IsUnknown() {
		return b
	}
	span, err := b.handler.codemap.LineSpan(id, line)
	if err != nil {
		return b
	}
	b.diag.Labels = append(b.diag.Labels, Label{Style: style, Span: span, Message: message})
	return b
}

// WithNote appends a note: a free-standing explanation rendered after the
// labeled source.
func (b *InFlightDiagnostic) WithNote(note string) *InFlightDiagnostic {
	b.diag.Notes = append(b.diag.Notes, note)
	return b
}

// AddNote appends a note where the fluent style is cumbersome.
func (b *InFlightDiagnostic) AddNote(note string) {
	b.diag.Notes = append(b.diag.Notes, note)
}

// Take extracts the assembled diagnostic without emitting it.
func (b *InFlightDiagnostic) Take() Diagnostic {
	return b.diag
}

// Emit hands the diagnostic to the handler. Repeat calls are no-ops.
func (b *InFlightDiagnostic) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	b.handler.Emit(&b.diag)
}
