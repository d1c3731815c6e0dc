package redefinedbuiltin

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/pysrc"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags assignments, defs and classes that shadow a Python builtin.
// Kaggle notebooks are full of `list = [...]` followed much later by a
// confused `list(...)` call; catching the shadowing where it happens is
// kinder than the eventual TypeError.
type Rule struct{}

var bindRe = regexp.MustCompile(`^\s*(?:async\s+)?(?:def|class)\s+([A-Za-z_]\w*)`)

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL008" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "redefined-builtin" }

// Check implements rule.Rule.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic {
	if pysrc.IsMagic(code) {
		return nil
	}
	var diags []lint.Diagnostic
	for i, line := range strings.Split(pysrc.StripStringsAndComments(code), "\n") {
		if pysrc.IsMagicLine(line) {
			continue
		}
		for _, name := range boundNames(line) {
			// Names like self or _ are in the builtin table for the
			// undefined-name rule's benefit but are not shadowable
			// builtins in any meaningful sense.
			if name == "self" || name == "cls" || name == "_" {
				continue
			}
			if !pysrc.IsBuiltin(name) {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				Line:     offset + i + 1,
				Column:   pysrc.Indent(line) + 1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message:  fmt.Sprintf("%q shadows a Python builtin", name),
			})
		}
	}
	return diags
}

// boundNames returns the names a single line binds through def, class or
// plain assignment. It reuses the cell-level extractor on the isolated
// line so target handling (tuples, annotations) stays consistent.
func boundNames(line string) []string {
	if m := bindRe.FindStringSubmatch(line); m != nil {
		return []string{m[1]}
	}
	if !strings.Contains(line, "=") {
		return nil
	}
	var names []string
	for name := range pysrc.ExtractDefinedNames(line) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
