package emptycells

import (
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule reports code cells with no content. It needs the raw cell rather
// than just its code, because empty cells are exactly what the engine's
// cell-boundary short-circuit hides from every other rule.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL009" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "empty-cells" }

// Check implements rule.Rule. Standalone per-code checks cannot see cell
// boundaries, so this rule only fires through CheckCell.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic { return nil }

// CheckCell implements rule.NotebookRule.
func (r *Rule) CheckCell(cell lint.Cell, offset int) []lint.Diagnostic {
	if strings.TrimSpace(cell.Code) != "" {
		return nil
	}
	return []lint.Diagnostic{{
		Line:     offset + 1,
		Column:   1,
		RuleID:   r.ID(),
		RuleName: r.Name(),
		Severity: lint.Info,
		Message:  "cell is empty",
	}}
}
