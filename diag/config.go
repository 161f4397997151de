package diag

import "github.com/0xMiden/miden-diagnostics/source"

// Verbosity is the handler's output threshold. Higher values suppress
// more; the zero value shows everything.
type Verbosity uint8

const (
	VerbosityDebug Verbosity = iota
	VerbosityInfo
	VerbosityWarning
	VerbosityError
	// VerbositySilent suppresses all diagnostics, including their error
	// counting. The Failed status line still prints and counts, so fatal
	// outcomes stay observable.
	VerbositySilent
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityDebug:
		return "debug"
	case VerbosityInfo:
		return "info"
	case VerbosityWarning:
		return "warning"
	case VerbosityError:
		return "error"
	case VerbositySilent:
		return "silent"
	}
	return "unknown"
}

// DisplayStyle selects how much source context rendering includes.
type DisplayStyle uint8

const (
	// DisplayRich renders headers, source snippets, and label underlines.
	DisplayRich DisplayStyle = iota
	// DisplayPlain renders one location-prefixed line per diagnostic.
	DisplayPlain
)

// ColorChoice controls ANSI styling in emitted output.
type ColorChoice uint8

const (
	// ColorAuto enables styling only when the emitter's stream is a
	// terminal.
	ColorAuto ColorChoice = iota
	ColorAlways
	// ColorAlwaysAnsi behaves like ColorAlways; it exists for parity with
	// terminals that only accept ANSI escapes.
	ColorAlwaysAnsi
	ColorNever
)

// DisplayConfig describes how diagnostics are rendered.
type DisplayConfig struct {
	Style DisplayStyle
	Color ColorChoice
}

// RenderFunc renders one diagnostic into buf, resolving label spans
// against codemap. Rendering must be deterministic for identical inputs
// and must not retain buf.
type RenderFunc func(buf *Buffer, cfg DisplayConfig, codemap *source.CodeMap, d *Diagnostic) error

// Config fixes a Handler's policy at construction time.
type Config struct {
	Verbosity        Verbosity
	WarningsAsErrors bool
	// NoWarn drops warnings outright. It wins over WarningsAsErrors.
	NoWarn  bool
	Display DisplayConfig
	// Render overrides the diagnostic renderer. When nil the handler
	// falls back to a bare header/notes rendering without source
	// snippets; most callers wire diagfmt.Render here.
	Render RenderFunc
}
