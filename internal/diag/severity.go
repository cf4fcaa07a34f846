package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHelp is for suggestions on how to fix an issue.
	SevHelp Severity = iota
	// SevNote is for informational diagnostics.
	SevNote
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
	// SevBug marks an unexpected failure in the tool itself.
	SevBug
)

// String returns the lowercase name used as the rendered header prefix.
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
	case SevBug:
		return "bug"
	}
	return "unknown"
}
