package duplicatefunc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/pysrc"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags a def or class that rebinds a name already defined at the
// same indentation within the cell. Same-name defs at different indents
// are left alone: methods of different classes legitimately share names.
type Rule struct{}

var bindRe = regexp.MustCompile(`^(\s*)(?:async\s+)?(def|class)\s+([A-Za-z_]\w*)`)

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL004" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "duplicate-function" }

// Check implements rule.Rule.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic {
	if pysrc.IsMagic(code) {
		return nil
	}
	type binding struct {
		kind string
		line int
	}
	seen := make(map[string]binding)
	var diags []lint.Diagnostic

	lines := strings.Split(pysrc.StripStringsAndComments(code), "\n")
	for i, line := range lines {
		m := bindRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := fmt.Sprintf("%d:%s", len(m[1]), m[3])
		if prev, ok := seen[key]; ok {
			diags = append(diags, lint.Diagnostic{
				Line:     offset + i + 1,
				Column:   len(m[1]) + 1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message:  fmt.Sprintf("%s %q already defined on line %d", m[2], m[3], offset+prev.line),
			})
			continue
		}
		seen[key] = binding{kind: m[2], line: i + 1}
	}
	return diags
}
