package diag

// Severity classifies a diagnostic, ordered from least to most severe.
type Severity uint8

const (
	// SevHelp suggests a change or clarifies output; never actionable on
	// its own.
	SevHelp Severity = iota
	// SevNote is informational commentary attached to the main findings.
	SevNote
	// SevWarning flags code that is suspect but does not fail the build,
	// unless the handler promotes warnings to errors.
	SevWarning
	// SevError flags code that fails the build.
	SevError
)

// String returns the lowercase label used in rendered headers.
func (s Severity) String() string {
	switch s {
	case SevHelp:
		return "help"
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
