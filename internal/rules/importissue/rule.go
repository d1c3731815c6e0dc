package importissue

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

// Rule flags wildcard imports and repeated imports of the same module
// within one cell.
type Rule struct{}

var (
	wildcardRe = regexp.MustCompile(`^\s*from\s+(\S+)\s+import\s+\*`)
	importRe   = regexp.MustCompile(`^\s*import\s+(.+)$`)
	fromRe     = regexp.MustCompile(`^\s*from\s+(\S+)\s+import\s`)
)

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL005" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "import-issue" }

// Check implements rule.Rule.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic {
	if pysrc.IsMagic(code) {
		return nil
	}
	var diags []lint.Diagnostic
	seen := make(map[string]int) // module -> first line

	lines := strings.Split(pysrc.StripStringsAndComments(code), "\n")
	for i, line := range lines {
		if pysrc.IsMagicLine(line) {
			continue
		}
		if m := wildcardRe.FindStringSubmatch(line); m != nil {
			diags = append(diags, lint.Diagnostic{
				Line:     offset + i + 1,
				Column:   pysrc.Indent(line) + 1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message:  fmt.Sprintf("wildcard import from %q makes defined names untrackable", m[1]),
			})
		}
		var modules []string
		if m := importRe.FindStringSubmatch(line); m != nil {
			for _, part := range strings.Split(m[1], ",") {
				mod := strings.TrimSpace(part)
				if as := strings.Index(mod, " as "); as >= 0 {
					mod = mod[:as]
				}
				modules = append(modules, strings.TrimSpace(mod))
			}
		} else if fromRe.MatchString(line) {
			// Two from-imports of one module with different names are
			// fine; only an identical repeated statement is flagged.
			modules = append(modules, strings.Join(strings.Fields(line), " "))
		}
		for _, mod := range modules {
			if mod == "" {
				continue
			}
			if first, ok := seen[mod]; ok {
				diags = append(diags, lint.Diagnostic{
					Line:     offset + i + 1,
					Column:   pysrc.Indent(line) + 1,
					RuleID:   r.ID(),
					RuleName: r.Name(),
					Severity: lint.Warning,
					Message:  fmt.Sprintf("duplicate import of %q (first imported on line %d)", mod, offset+first),
				})
				continue
			}
			seen[mod] = i + 1
		}
	}
	return diags
}
