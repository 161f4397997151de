package diagfmt

import (
	"github.com/fatih/color"

	"github.com/0xMiden/miden-diagnostics/diag"
)

// styles is the color set for one rendering pass, pinned to the target
// buffer's ANSI capability rather than the package-global color.NoColor.
type styles struct {
	header    *color.Color
	message   *color.Color
	location  *color.Color
	gutter    *color.Color
	primary   *color.Color
	secondary *color.Color
	note      *color.Color
}

func newStyles(severity diag.Severity, ansi bool) *styles {
	s := &styles{
		header:    severityStyle(severity),
		message:   color.New(color.Bold),
		location:  color.New(color.FgBlue),
		gutter:    color.New(color.FgHiBlack),
		primary:   severityStyle(severity),
		secondary: color.New(color.FgBlue),
		note:      color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{s.header, s.message, s.location, s.gutter, s.primary, s.secondary, s.note} {
		if ansi {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func severityStyle(severity diag.Severity) *color.Color {
	switch severity {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	case diag.SevNote:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

// labelPen picks the underline color and character for a label: carets and
// tildes in the severity color for primaries, dashes in blue for
// secondaries.
func labelPen(st *styles, label diag.Label, length int) (*color.Color, string) {
	if label.Style != diag.LabelPrimary {
		return st.secondary, "-"
	}
	if length == 1 {
		return st.primary, "^"
	}
	return st.primary, "~"
}
