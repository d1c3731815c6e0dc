package rule

import "github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"

// Rule is a single heuristic check run against one cell's code. Check
// receives the cell's code and the cumulative line offset of all preceding
// cells, and reports diagnostics with absolute 1-based line numbers.
type Rule interface {
	ID() string
	Name() string
	Check(code string, offset int) []lint.Diagnostic
}

// Result is the outcome of a context-aware rule invocation: diagnostics
// plus any names the cell newly defines. DefinedNames may be nil when the
// rule introduces nothing.
type Result struct {
	Errors       []lint.Diagnostic
	DefinedNames map[string]struct{}
}

// ContextRule is a Rule that consumes the accumulated cross-cell naming
// context and may extend it. The engine calls CheckContext instead of Check
// for rules implementing this interface.
type ContextRule interface {
	Rule
	CheckContext(code string, offset int, ctx *lint.Context) Result
}

// Resettable is implemented by rules carrying internal incremental state.
// ResetContext is called once at the start of every notebook pass.
type Resettable interface {
	ResetContext()
}

// NameExtractor exposes a rule's defined-name extraction so the engine can
// backfill the running context after each cell, even when a rule's primary
// result omitted a binding.
type NameExtractor interface {
	ExtractDefinedNames(code string) map[string]struct{}
}

// NotebookRule is a rule that needs the raw cell, index included, and is
// exempt from the empty/magic cell short-circuit. The empty-cell detector
// is the canonical implementation.
type NotebookRule interface {
	Rule
	CheckCell(cell lint.Cell, offset int) []lint.Diagnostic
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}
