package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0xMiden/miden-diagnostics/diag"
	"github.com/0xMiden/miden-diagnostics/diagfmt"
	"github.com/0xMiden/miden-diagnostics/source"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file:line[:col[-endcol]]>",
	Short: "Render a sample diagnostic at a source location",
	Long: `Render a sample diagnostic against a real source file to inspect renderer output.

The target selects the primary label: file:line underlines the whole line,
file:line:col points at a single column, and file:line:col-endcol covers an
inclusive column range.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

// init registers CLI flags for the render command used by runRender.
func init() {
	renderCmd.Flags().String("message", "example diagnostic", "diagnostic message")
	renderCmd.Flags().String("severity", "error", "diagnostic severity (error|warning|note|help)")
	renderCmd.Flags().String("code", "", "diagnostic code shown in the header")
	renderCmd.Flags().String("label", "", "message attached to the primary label")
	renderCmd.Flags().StringArray("secondary", nil, "secondary label as file:line[:col[-endcol]]=message (repeatable)")
	renderCmd.Flags().StringArray("note", nil, "note appended below the snippet (repeatable)")
	renderCmd.Flags().String("style", "", "display style (rich|plain|short); defaults to diagview.toml, then rich on terminals")
	renderCmd.Flags().String("verbosity", "", "handler verbosity (debug|info|warning|error|silent)")
	renderCmd.Flags().Bool("no-warnings", false, "drop warning diagnostics")
	renderCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	renderCmd.Flags().Bool("with-notes", false, "include notes in short output")
}

// runRender executes the "render" command: it resolves the target location in
// a fresh code map, assembles a diagnostic from the flags, emits it through a
// handler wired to the configured renderer, and exits with a non-zero status
// when the handler counted errors.
func runRender(cmd *cobra.Command, args []string) error {
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return fmt.Errorf("failed to get message flag: %w", err)
	}

	severityStr, err := cmd.Flags().GetString("severity")
	if err != nil {
		return fmt.Errorf("failed to get severity flag: %w", err)
	}

	code, err := cmd.Flags().GetString("code")
	if err != nil {
		return fmt.Errorf("failed to get code flag: %w", err)
	}

	labelMessage, err := cmd.Flags().GetString("label")
	if err != nil {
		return fmt.Errorf("failed to get label flag: %w", err)
	}

	secondarySpecs, err := cmd.Flags().GetStringArray("secondary")
	if err != nil {
		return fmt.Errorf("failed to get secondary flag: %w", err)
	}

	notes, err := cmd.Flags().GetStringArray("note")
	if err != nil {
		return fmt.Errorf("failed to get note flag: %w", err)
	}

	styleStr, err := cmd.Flags().GetString("style")
	if err != nil {
		return fmt.Errorf("failed to get style flag: %w", err)
	}

	verbosityStr, err := cmd.Flags().GetString("verbosity")
	if err != nil {
		return fmt.Errorf("failed to get verbosity flag: %w", err)
	}

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	var severity diag.Severity
	switch severityStr {
	case "error":
		severity = diag.SevError
	case "warning":
		severity = diag.SevWarning
	case "note":
		severity = diag.SevNote
	case "help":
		severity = diag.SevHelp
	default:
		return fmt.Errorf("unknown severity value: %s", severityStr)
	}

	// Debug by default so every severity the flags can ask for is shown.
	verbosity := diag.VerbosityDebug
	switch verbosityStr {
	case "":
	case "debug":
		verbosity = diag.VerbosityDebug
	case "info":
		verbosity = diag.VerbosityInfo
	case "warning":
		verbosity = diag.VerbosityWarning
	case "error":
		verbosity = diag.VerbosityError
	case "silent":
		verbosity = diag.VerbositySilent
	default:
		return fmt.Errorf("unknown verbosity value: %s", verbosityStr)
	}

	manifest, haveManifest, err := loadDisplayManifest(".")
	if err != nil {
		return err
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if !cmd.Root().PersistentFlags().Changed("color") && haveManifest && manifest.Config.Display.Color != "" {
		colorFlag = manifest.Config.Display.Color
	}
	var colorChoice diag.ColorChoice
	switch colorFlag {
	case "auto":
		colorChoice = diag.ColorAuto
	case "on":
		colorChoice = diag.ColorAlways
	case "off":
		colorChoice = diag.ColorNever
	default:
		return fmt.Errorf("unknown color value: %s", colorFlag)
	}

	if styleStr == "" && haveManifest {
		styleStr = manifest.Config.Display.Style
	}
	if styleStr == "" {
		// Rich snippets on terminals, plain one-liners in pipes.
		styleStr = "plain"
		if isTerminal(os.Stderr) {
			styleStr = "rich"
		}
	}

	codemap := source.NewCodeMap()

	primary, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	primarySpan, err := resolveTarget(codemap, primary)
	if err != nil {
		return err
	}

	type secondaryLabel struct {
		span    source.SourceSpan
		message string
	}
	secondaries := make([]secondaryLabel, 0, len(secondarySpecs))
	for _, spec := range secondarySpecs {
		targetStr, msg, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("secondary %q must look like file:line[:col[-endcol]]=message", spec)
		}
		st, err := parseTarget(targetStr)
		if err != nil {
			return err
		}
		span, err := resolveTarget(codemap, st)
		if err != nil {
			return err
		}
		secondaries = append(secondaries, secondaryLabel{span: span, message: msg})
	}

	cfg := diag.Config{
		Verbosity:        verbosity,
		WarningsAsErrors: warningsAsErrors,
		NoWarn:           noWarnings,
		Display:          diag.DisplayConfig{Color: colorChoice},
		Render:           diagfmt.Render,
	}
	switch styleStr {
	case "rich":
		cfg.Display.Style = diag.DisplayRich
	case "plain":
		cfg.Display.Style = diag.DisplayPlain
	case "short":
		cfg.Render = func(buf *diag.Buffer, _ diag.DisplayConfig, cm *source.CodeMap, d *diag.Diagnostic) error {
			line := diagfmt.Short([]diag.Diagnostic{*d}, cm, withNotes)
			if line == "" {
				return nil
			}
			_, err := buf.WriteString(line + "\n")
			return err
		}
	default:
		return fmt.Errorf("unknown style value: %s", styleStr)
	}

	handler := diag.NewHandler(cfg, codemap, diag.NewDefaultEmitter(colorChoice))

	b := handler.Diagnostic(severity).
		WithMessage(message).
		WithPrimaryLabel(primarySpan, labelMessage)
	if code != "" {
		b.WithCode(code)
	}
	for _, s := range secondaries {
		b.WithSecondaryLabel(s.span, s.message)
	}
	for _, n := range notes {
		b.WithNote(n)
	}
	b.Emit()

	if handler.HasErrors() {
		// Suppress cobra usage output; the diagnostic is already printed.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// target is a parsed file:line[:col[-endcol]] argument. A zero column
// addresses the whole line; a zero endCol leaves the span one column wide.
type target struct {
	path   string
	line   uint32
	column uint32
	endCol uint32
}

// parseTarget splits a target argument from the right so the path part may
// carry colons of its own (drive letters, URLs).
func parseTarget(arg string) (target, error) {
	head, last, ok := cutLast(arg, ":")
	if !ok {
		return target{}, fmt.Errorf("target %q must look like file:line[:col[-endcol]]", arg)
	}

	// file:line:col form: the middle field must be a line number.
	if head2, mid, ok := cutLast(head, ":"); ok {
		if line, err := parsePosition(mid); err == nil {
			t := target{path: head2, line: line}
			lo, hi, ranged := strings.Cut(last, "-")
			col, err := parsePosition(lo)
			if err != nil {
				return target{}, fmt.Errorf("target %q has invalid column %q", arg, last)
			}
			t.column = col
			if ranged {
				end, err := parsePosition(hi)
				if err != nil || end < col {
					return target{}, fmt.Errorf("target %q has invalid column range %q", arg, last)
				}
				t.endCol = end
			}
			return t, nil
		}
	}

	line, err := parsePosition(last)
	if err != nil {
		return target{}, fmt.Errorf("target %q has invalid line %q", arg, last)
	}
	return target{path: head, line: line}, nil
}

// resolveTarget loads the target's file into codemap and produces the span
// the target addresses.
func resolveTarget(codemap *source.CodeMap, t target) (source.SourceSpan, error) {
	id, err := codemap.AddFile(t.path)
	if err != nil {
		return source.SourceSpan{}, fmt.Errorf("failed to load %s: %w", t.path, err)
	}
	if t.column == 0 {
		span, err := codemap.LineSpan(id, t.line)
		if err != nil {
			return source.SourceSpan{}, fmt.Errorf("%s:%d: %w", t.path, t.line, err)
		}
		return span, nil
	}
	span, err := codemap.LineColumnToSpan(id, t.line, t.column)
	if err != nil {
		return source.SourceSpan{}, fmt.Errorf("%s:%d:%d: %w", t.path, t.line, t.column, err)
	}
	if t.endCol > t.column {
		endSpan, err := codemap.LineColumnToSpan(id, t.line, t.endCol)
		if err != nil {
			return source.SourceSpan{}, fmt.Errorf("%s:%d:%d: %w", t.path, t.line, t.endCol, err)
		}
		if merged, ok := span.Merge(endSpan); ok {
			span = merged
		}
	}
	return span, nil
}

func parsePosition(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("positions are 1-based")
	}
	return uint32(n), nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
