package diag

// Severity orders diagnostics from hint to error; comparisons rely on the
// order.
type Severity uint8

const (
	SevSuggestion Severity = iota // shown by editors, ignored by builds
	SevInfo
	SevWarning
	SevError
)

var severityNames = [...]string{"SUGGESTION", "INFO", "WARNING", "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
