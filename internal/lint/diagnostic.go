package lint

// Severity indicates the severity level of a diagnostic.
type Severity string

// Severity levels.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Rank returns the numeric importance of a severity: error > warning > info.
// Unknown severities rank 0 and are dropped by any non-trivial filter.
func (s Severity) Rank() int {
	switch s {
	case Error:
		return 3
	case Warning:
		return 2
	case Info:
		return 1
	default:
		return 0
	}
}

// Diagnostic represents a single lint finding. Line is absolute and 1-based
// across the whole notebook; CellLine is the line within the originating
// cell. Element is an opaque handle supplied by the caller alongside the
// cell; the engine only carries it through, it never inspects it.
type Diagnostic struct {
	File      string
	Line      int
	Column    int
	RuleID    string
	RuleName  string
	Severity  Severity
	Message   string
	CellIndex int
	CellLine  int
	Element   any
}
