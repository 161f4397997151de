package diag

import (
	"fmt"
	"sync/atomic"

	"github.com/fatih/color"

	"github.com/0xMiden/miden-diagnostics/source"
)

// Handler arbitrates and emits diagnostics for every phase of a
// compilation. Severity policy is applied centrally here, so producers
// report what they found and never decide what is shown.
//
// A Handler is safe to share across goroutines: configuration is fixed at
// construction and the error counter is atomic.
type Handler struct {
	emitter          Emitter
	codemap          *source.CodeMap
	errCount         atomic.Uint32
	verbosity        Verbosity
	warningsAsErrors bool
	noWarn           bool
	silent           bool
	display          DisplayConfig
	render           RenderFunc
}

// NewHandler creates a handler resolving spans against codemap and
// writing through emitter. Verbosity above warning implies warning
// suppression.
func NewHandler(cfg Config, codemap *source.CodeMap, emitter Emitter) *Handler {
	render := cfg.Render
	if render == nil {
		render = renderBare
	}
	return &Handler{
		emitter:          emitter,
		codemap:          codemap,
		verbosity:        cfg.Verbosity,
		warningsAsErrors: cfg.WarningsAsErrors,
		noWarn:           cfg.NoWarn || cfg.Verbosity > VerbosityWarning,
		silent:           cfg.Verbosity == VerbositySilent,
		display:          cfg.Display,
		render:           render,
	}
}

// CodeMap returns the registry this handler resolves spans against.
func (h *Handler) CodeMap() *source.CodeMap { return h.codemap }

// LookupFileID returns the id registered for name in the handler's
// registry.
func (h *Handler) LookupFileID(name source.FileName) (source.SourceID, bool) {
	return h.codemap.GetFileID(name)
}

// HasErrors reports whether any error diagnostics were emitted.
func (h *Handler) HasErrors() bool {
	return h.errCount.Load() > 0
}

// ErrorCount returns the number of error diagnostics emitted so far,
// including promoted warnings and Failed status lines.
func (h *Handler) ErrorCount() int {
	return int(h.errCount.Load())
}

// AbortIfErrors raises FatalError when any error diagnostics were
// emitted. Call it at phase boundaries, behind a RecoverFatal.
func (h *Handler) AbortIfErrors() {
	if h.HasErrors() {
		FatalError{}.Raise()
	}
}

// Fatal reports message as an error and returns the FatalError stop
// condition for the caller to raise.
func (h *Handler) Fatal(message string) FatalError {
	h.Error(message)
	return FatalError{}
}

// Error emits an error diagnostic with the given message.
func (h *Handler) Error(message string) {
	d := NewDiagnostic(SevError, message)
	h.Emit(&d)
}

// Warn emits a warning diagnostic, promoted to an error when the handler
// treats warnings as errors.
func (h *Handler) Warn(message string) {
	if h.warningsAsErrors {
		h.Error(message)
		return
	}
	d := NewDiagnostic(SevWarning, message)
	h.Emit(&d)
}

// Note emits a note diagnostic.
func (h *Handler) Note(message string) {
	d := NewDiagnostic(SevNote, message)
	h.Emit(&d)
}

// Diagnostic starts a diagnostic of the given severity; finish it with
// Emit or Take on the returned builder.
func (h *Handler) Diagnostic(severity Severity) *InFlightDiagnostic {
	return newInFlightDiagnostic(h, severity)
}

// Emit applies severity policy to d and, when it survives, renders and
// prints it.
//
// Policy, in order: a silent handler discards everything; notes are
// dropped when verbosity is stricter than info; warnings are dropped
// under no-warn, or promoted to errors under warnings-as-errors; error
// diagnostics, including promoted ones, increment the error counter.
//
// Rendering or printing failures panic. A handler whose output stream is
// broken cannot degrade gracefully, and producers do not expect Emit to
// return.
func (h *Handler) Emit(d *Diagnostic) {
	if h.silent {
		return
	}

	switch {
	case d.Severity == SevNote && h.verbosity > VerbosityInfo:
		return
	case d.Severity == SevWarning && h.noWarn:
		return
	case d.Severity == SevWarning && h.warningsAsErrors:
		promoted := *d
		promoted.Severity = SevError
		d = &promoted
	}

	if d.Severity == SevError {
		h.errCount.Add(1)
	}

	buf := h.emitter.Buffer()
	if err := h.render(buf, h.display, h.codemap, d); err != nil {
		panic(fmt.Errorf("failed to render diagnostic: %w", err))
	}
	h.print(buf)
}

// Info writes a raw "info: ..." line, bypassing the diagnostic model.
// Shown at info verbosity and below.
func (h *Handler) Info(message string) {
	if h.verbosity > VerbosityInfo {
		return
	}
	h.writeHeader(severityColor(SevHelp), "info", message)
}

// Debug writes a raw "debug: ..." line, shown only at debug verbosity.
func (h *Handler) Debug(message string) {
	if h.verbosity > VerbosityDebug {
		return
	}
	h.writeHeader(color.New(color.FgBlue, color.Bold), "debug", message)
}

// Notice writes a status line with a right-aligned prefix, such as
//
//	"   Compiling parser"
//
// Shown at info verbosity and below; never counted as an error.
func (h *Handler) Notice(prefix, message string) {
	if h.verbosity > VerbosityInfo {
		return
	}
	h.writePrefixed(severityColor(SevWarning), prefix, message)
}

// Success writes a status line for a completed step. Suppressed only
// when the handler is silent.
func (h *Handler) Success(prefix, message string) {
	if h.silent {
		return
	}
	h.writePrefixed(severityColor(SevNote), prefix, message)
}

// Failed writes a status line for a failed step and counts it as an
// error. It is never suppressed: a silent run still reports failure.
func (h *Handler) Failed(prefix, message string) {
	h.errCount.Add(1)
	h.writePrefixed(severityColor(SevError), prefix, message)
}

func (h *Handler) writeHeader(c *color.Color, prefix, message string) {
	buf := h.emitter.Buffer()
	paint(c, buf.ANSI()).Fprint(buf, prefix)
	paint(color.New(color.Bold), buf.ANSI()).Fprintf(buf, ": %s\n", message)
	h.print(buf)
}

func (h *Handler) writePrefixed(c *color.Color, prefix, message string) {
	buf := h.emitter.Buffer()
	paint(c, buf.ANSI()).Fprintf(buf, "%12s ", prefix)
	fmt.Fprintln(buf, message)
	h.print(buf)
}

func (h *Handler) print(buf *Buffer) {
	if err := h.emitter.Print(buf); err != nil {
		panic(fmt.Errorf("failed to write diagnostic: %w", err))
	}
}

// renderBare is the fallback renderer: severity header, message, and
// notes, with no source snippets.
func renderBare(buf *Buffer, _ DisplayConfig, _ *source.CodeMap, d *Diagnostic) error {
	header := paint(severityColor(d.Severity), buf.ANSI())
	header.Fprint(buf, d.Severity.String())
	if d.Code != "" {
		header.Fprintf(buf, "[%s]", d.Code)
	}
	paint(color.New(color.Bold), buf.ANSI()).Fprintf(buf, ": %s\n", d.Message)
	for _, note := range d.Notes {
		fmt.Fprintf(buf, "  = note: %s\n", note)
	}
	return nil
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SevError:
		return color.New(color.FgRed, color.Bold)
	case SevWarning:
		return color.New(color.FgYellow, color.Bold)
	case SevNote:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

// paint pins c to the buffer's ANSI capability instead of the package
// global color.NoColor, which sniffs the wrong stream.
func paint(c *color.Color, ansi bool) *color.Color {
	if ansi {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
