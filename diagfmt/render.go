// Package diagfmt renders diagnostics into human-readable text: a rich
// style with source snippets and underlines, a plain one-line-per-entry
// style, and a stable short listing for golden files.
//
// Render satisfies diag.RenderFunc and is the renderer most handlers are
// constructed with.
package diagfmt

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/0xMiden/miden-diagnostics/diag"
	"github.com/0xMiden/miden-diagnostics/source"
)

// Render draws one diagnostic into buf, resolving label spans against
// codemap. A label whose span does not resolve fails the render; the
// handler treats that as a programmer error.
func Render(buf *diag.Buffer, cfg diag.DisplayConfig, codemap *source.CodeMap, d *diag.Diagnostic) error {
	if cfg.Style == diag.DisplayPlain {
		return renderPlain(buf, codemap, d)
	}
	return renderRich(buf, codemap, d)
}

// renderPlain writes one "path:line:col: severity[code]: message" line per
// primary label, or a bare header when the diagnostic has none. Secondary
// labels and notes are omitted.
func renderPlain(buf *diag.Buffer, codemap *source.CodeMap, d *diag.Diagnostic) error {
	st := newStyles(d.Severity, buf.ANSI())

	printed := false
	for _, label := range d.Labels {
		if label.Style != diag.LabelPrimary {
			continue
		}
		loc, file, err := resolveStart(codemap, label.Span)
		if err != nil {
			return err
		}
		st.location.Fprintf(buf, "%s:%d:%d: ", file.Name(), loc.Line, loc.Column)
		writeHeader(buf, st, d)
		printed = true
	}
	if !printed {
		writeHeader(buf, st, d)
	}
	return nil
}

func renderRich(buf *diag.Buffer, codemap *source.CodeMap, d *diag.Diagnostic) error {
	st := newStyles(d.Severity, buf.ANSI())
	writeHeader(buf, st, d)

	width := gutterWidth(codemap, d)
	gutter := strings.Repeat(" ", width)

	if span := headerSpan(d); !span.IsUnknown() {
		loc, file, err := resolveStart(codemap, span)
		if err != nil {
			return err
		}
		st.location.Fprintf(buf, "%s--> %s:%d:%d\n", gutter, file.Name(), loc.Line, loc.Column)
	}

	for _, label := range d.Labels {
		if err := writeSnippet(buf, st, codemap, label, width); err != nil {
			return err
		}
	}
	if len(d.Labels) > 0 {
		st.gutter.Fprintf(buf, "%s |\n", gutter)
	}

	for _, note := range d.Notes {
		fmt.Fprint(buf, gutter)
		st.note.Fprint(buf, " = note: ")
		fmt.Fprintln(buf, note)
	}

	// Blank line between consecutive diagnostics.
	fmt.Fprintln(buf)
	return nil
}

func writeHeader(buf *diag.Buffer, st *styles, d *diag.Diagnostic) {
	st.header.Fprint(buf, d.Severity.String())
	if d.Code != "" {
		st.header.Fprintf(buf, "[%s]", d.Code)
	}
	st.message.Fprintf(buf, ": %s\n", d.Message)
}

// writeSnippet prints the source excerpt for one label: a gutter
// separator, the line text, and an underline carrying the label message.
func writeSnippet(buf *diag.Buffer, st *styles, codemap *source.CodeMap, label diag.Label, width int) error {
	file, err := codemap.Get(label.Span.Source())
	if err != nil {
		return err
	}
	start, err := file.Location(label.Span.StartOffset())
	if err != nil {
		return err
	}
	end, err := endLocation(file, label.Span)
	if err != nil {
		return err
	}

	st.gutter.Fprintf(buf, "%s |\n", strings.Repeat(" ", width))

	if end.Line == start.Line {
		return writeSingleLine(buf, st, file, label, start, width)
	}
	return writeMultiLine(buf, st, file, label, start, end, width)
}

func writeSingleLine(buf *diag.Buffer, st *styles, file *source.SourceFile, label diag.Label, start source.Location, width int) error {
	text, err := file.Line(start.Line)
	if err != nil {
		return err
	}
	lineSpan, err := file.LineSpan(start.Line)
	if err != nil {
		return err
	}

	st.gutter.Fprintf(buf, "%*d | ", width, start.Line)
	fmt.Fprintln(buf, displayText(text))

	startInLine := label.Span.StartOffset() - lineSpan.StartOffset()
	endInLine := min(label.Span.EndOffset(), lineSpan.EndOffset()) - lineSpan.StartOffset()

	padding := runewidth.StringWidth(displayText(text[:startInLine]))
	length := max(runewidth.StringWidth(displayText(text[startInLine:endInLine])), 1)

	pen, char := labelPen(st, label, length)
	st.gutter.Fprintf(buf, "%s | ", strings.Repeat(" ", width))
	fmt.Fprint(buf, strings.Repeat(" ", padding))
	pen.Fprint(buf, strings.Repeat(char, length))
	if label.Message != "" {
		pen.Fprintf(buf, " %s", label.Message)
	}
	fmt.Fprintln(buf)
	return nil
}

// writeMultiLine underlines the spanned tail of the first line and the
// spanned head of the last, eliding the lines between.
func writeMultiLine(buf *diag.Buffer, st *styles, file *source.SourceFile, label diag.Label, start, end source.Location, width int) error {
	startText, err := file.Line(start.Line)
	if err != nil {
		return err
	}
	startSpan, err := file.LineSpan(start.Line)
	if err != nil {
		return err
	}
	endText, err := file.Line(end.Line)
	if err != nil {
		return err
	}
	endSpan, err := file.LineSpan(end.Line)
	if err != nil {
		return err
	}

	pen, char := labelPen(st, label, 2)
	gutter := strings.Repeat(" ", width)

	startInLine := label.Span.StartOffset() - startSpan.StartOffset()
	padding := runewidth.StringWidth(displayText(startText[:startInLine]))
	length := max(runewidth.StringWidth(displayText(startText[startInLine:])), 1)

	st.gutter.Fprintf(buf, "%*d | ", width, start.Line)
	fmt.Fprintln(buf, displayText(startText))
	st.gutter.Fprintf(buf, "%s | ", gutter)
	fmt.Fprint(buf, strings.Repeat(" ", padding))
	pen.Fprintln(buf, strings.Repeat(char, length))

	if end.Line-start.Line > 1 {
		st.gutter.Fprintf(buf, "%s...\n", gutter)
	}

	endInLine := min(label.Span.EndOffset(), endSpan.EndOffset()) - endSpan.StartOffset()
	endLength := max(runewidth.StringWidth(displayText(endText[:endInLine])), 1)

	st.gutter.Fprintf(buf, "%*d | ", width, end.Line)
	fmt.Fprintln(buf, displayText(endText))
	st.gutter.Fprintf(buf, "%s | ", gutter)
	pen.Fprint(buf, strings.Repeat(char, endLength))
	if label.Message != "" {
		pen.Fprintf(buf, " %s", label.Message)
	}
	fmt.Fprintln(buf)
	return nil
}

// gutterWidth sizes the line-number gutter to the widest line number any
// label in the diagnostic touches.
func gutterWidth(codemap *source.CodeMap, d *diag.Diagnostic) int {
	var maxLine uint32
	for _, label := range d.Labels {
		file, err := codemap.Get(label.Span.Source())
		if err != nil {
			continue
		}
		if loc, err := endLocation(file, label.Span); err == nil && loc.Line > maxLine {
			maxLine = loc.Line
		}
	}
	if maxLine == 0 {
		return 1
	}
	return len(fmt.Sprintf("%d", maxLine))
}

// headerSpan picks the span the location line points at: the first
// primary label, falling back to the first label of any style.
func headerSpan(d *diag.Diagnostic) source.SourceSpan {
	if span := d.PrimarySpan(); !span.IsUnknown() {
		return span
	}
	if len(d.Labels) > 0 {
		return d.Labels[0].Span
	}
	return source.SourceSpan{}
}

func resolveStart(codemap *source.CodeMap, span source.SourceSpan) (source.Location, *source.SourceFile, error) {
	file, err := codemap.Get(span.Source())
	if err != nil {
		return source.Location{}, nil, err
	}
	loc, err := file.Location(span.StartOffset())
	if err != nil {
		return source.Location{}, nil, err
	}
	return loc, file, nil
}

// endLocation locates the last byte a span covers, so exclusive ends that
// fall exactly on a line boundary do not spill onto the next line.
func endLocation(file *source.SourceFile, span source.SourceSpan) (source.Location, error) {
	off := span.EndOffset()
	if off > span.StartOffset() {
		off--
	}
	return file.Location(off)
}

// displayText normalizes a source line for printing: tabs widen to four
// spaces and a trailing carriage return is dropped. Underline math runs
// on the same normalization so columns stay aligned.
func displayText(s string) string {
	s = strings.TrimSuffix(s, "\r")
	return strings.ReplaceAll(s, "\t", "    ")
}
