package diag

import "github.com/0xMiden/miden-diagnostics/source"

// LabelStyle distinguishes the origin of a finding from related context.
type LabelStyle uint8

const (
	// LabelPrimary marks the span the diagnostic is about.
	LabelPrimary LabelStyle = iota
	// LabelSecondary marks a related span that is not itself the origin.
	LabelSecondary
)

// Label ties a styled, optionally captioned message to a source span.
type Label struct {
	Style   LabelStyle
	Span    source.SourceSpan
	Message string
}

// NewLabel creates a label over span with the given style and no message.
func NewLabel(style LabelStyle, span source.SourceSpan) Label {
	return Label{Style: style, Span: span}
}

// WithMessage returns a copy of the label carrying message as its caption.
func (l Label) WithMessage(message string) Label {
	l.Message = message
	return l
}

// Source returns the id of the file the label addresses.
func (l Label) Source() source.SourceID {
	return l.Span.Source()
}

// Diagnostic is one finding: a severity, an optional stable code, a
// message, labeled source spans, and free-standing notes. Labels and notes
// render in insertion order.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Labels   []Label
	Notes    []string
}

// NewDiagnostic creates a diagnostic of the given severity.
func NewDiagnostic(severity Severity, message string) Diagnostic {
	return Diagnostic{Severity: severity, Message: message}
}

// WithCode tags the diagnostic with a stable machine-readable code.
func (d Diagnostic) WithCode(code string) Diagnostic {
	d.Code = code
	return d
}

// WithLabel appends a label.
func (d Diagnostic) WithLabel(l Label) Diagnostic {
	d.Labels = append(d.Labels, l)
	return d
}

// WithNote appends a note rendered after the labeled source.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// PrimarySpan returns the span of the first primary label, or the unknown
// span when the diagnostic has none.
func (d *Diagnostic) PrimarySpan() source.SourceSpan {
	for _, l := range d.Labels {
		if l.Style == LabelPrimary {
			return l.Span
		}
	}
	return source.SourceSpan{}
}
