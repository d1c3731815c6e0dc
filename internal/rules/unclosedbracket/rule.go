package unclosedbracket

import (
	"fmt"
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/pysrc"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule tracks bracket balance across the whole cell (strings and comments
// blanked first). An unmatched closer is flagged where it appears; an
// opener still unmatched at the end of the cell is flagged at the line it
// opened on.
type Rule struct{}

type open struct {
	char byte
	line int
	col  int
}

var pairs = map[byte]byte{')': '(', ']': '[', '}': '{'}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL007" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "unclosed-bracket" }

// Check implements rule.Rule.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic {
	if pysrc.IsMagic(code) {
		return nil
	}
	var diags []lint.Diagnostic
	var stack []open

	for li, line := range strings.Split(pysrc.StripStringsAndComments(code), "\n") {
		if pysrc.IsMagicLine(line) {
			continue
		}
		for ci := 0; ci < len(line); ci++ {
			c := line[ci]
			switch c {
			case '(', '[', '{':
				stack = append(stack, open{char: c, line: li + 1, col: ci + 1})
			case ')', ']', '}':
				if len(stack) == 0 {
					diags = append(diags, lint.Diagnostic{
						Line:     offset + li + 1,
						Column:   ci + 1,
						RuleID:   r.ID(),
						RuleName: r.Name(),
						Severity: lint.Error,
						Message:  fmt.Sprintf("unmatched %q", string(c)),
					})
					continue
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.char != pairs[c] {
					diags = append(diags, lint.Diagnostic{
						Line:     offset + li + 1,
						Column:   ci + 1,
						RuleID:   r.ID(),
						RuleName: r.Name(),
						Severity: lint.Error,
						Message:  fmt.Sprintf("mismatched %q closing %q opened on line %d", string(c), string(top.char), offset+top.line),
					})
				}
			}
		}
	}
	for _, o := range stack {
		diags = append(diags, lint.Diagnostic{
			Line:     offset + o.line,
			Column:   o.col,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Error,
			Message:  fmt.Sprintf("unclosed %q", string(o.char)),
		})
	}
	return diags
}
