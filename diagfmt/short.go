package diagfmt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/0xMiden/miden-diagnostics/diag"
	"github.com/0xMiden/miden-diagnostics/source"
)

// shortLine is one row of the stable short listing.
type shortLine struct {
	severity string
	code     string
	path     string
	line     uint32
	column   uint32
	message  string
}

// Short renders diagnostics one line per entry as
//
//	severity code path:line:col message
//
// sorted by path, line, column, severity, code, then message, with no
// trailing newline. Multi-line messages collapse to one line. Entries
// whose primary span does not resolve keep their severity, code, and
// message but carry no location and sort first. The output is stable for
// identical input, which makes it suitable for golden files and
// non-interactive logs.
func Short(diags []diag.Diagnostic, codemap *source.CodeMap, includeNotes bool) string {
	if codemap == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortLine, 0, len(diags))
	for i := range diags {
		rendered = appendShort(rendered, &diags[i], codemap, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		li, lj := rendered[i], rendered[j]
		if li.path != lj.path {
			return li.path < lj.path
		}
		if li.line != lj.line {
			return li.line < lj.line
		}
		if li.column != lj.column {
			return li.column < lj.column
		}
		if li.severity != lj.severity {
			return li.severity < lj.severity
		}
		if li.code != lj.code {
			return li.code < lj.code
		}
		return li.message < lj.message
	})

	var b strings.Builder
	for i, l := range rendered {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.severity)
		if l.code != "" {
			b.WriteByte(' ')
			b.WriteString(l.code)
		}
		if l.path != "" {
			fmt.Fprintf(&b, " %s:%d:%d", l.path, l.line, l.column)
		}
		if l.message != "" {
			b.WriteByte(' ')
			b.WriteString(l.message)
		}
	}
	return b.String()
}

func appendShort(out []shortLine, d *diag.Diagnostic, codemap *source.CodeMap, includeNotes bool) []shortLine {
	entry := shortLine{
		severity: d.Severity.String(),
		code:     d.Code,
		message:  sanitizeMessage(d.Message),
	}
	if loc, file, err := resolveStart(codemap, d.PrimarySpan()); err == nil {
		entry.path = file.Name().String()
		entry.line = loc.Line
		entry.column = loc.Column
	}
	out = append(out, entry)

	if includeNotes {
		// Notes have no spans of their own; they ride on the primary
		// location.
		for _, note := range d.Notes {
			out = append(out, shortLine{
				severity: "note",
				code:     d.Code,
				path:     entry.path,
				line:     entry.line,
				column:   entry.column,
				message:  sanitizeMessage(note),
			})
		}
	}
	return out
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
