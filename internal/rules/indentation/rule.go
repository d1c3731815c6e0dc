package indentation

import (
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/pysrc"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags two indentation problems: tabs mixed with spaces inside one
// line's leading whitespace, and an indent increase after a line that opens
// no block. Lines inside unclosed brackets are skipped, since continuation
// indentation is free-form there.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL006" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "indentation" }

// Check implements rule.Rule.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic {
	if pysrc.IsMagic(code) {
		return nil
	}
	var diags []lint.Diagnostic

	stripped := strings.Split(pysrc.StripStringsAndComments(code), "\n")
	raw := strings.Split(code, "\n")

	depth := 0
	prevIndent := 0
	prevOpens := true // first line of a cell may start anywhere
	prevContinues := false

	for i, line := range stripped {
		if pysrc.IsBlank(line) || pysrc.IsMagicLine(line) {
			depth = clamp(depth + bracketDelta(line))
			continue
		}
		leading := raw[i][:pysrc.Indent(raw[i])]
		inBrackets := depth > 0 || prevContinues

		if strings.Contains(leading, " ") && strings.Contains(leading, "\t") {
			diags = append(diags, lint.Diagnostic{
				Line:     offset + i + 1,
				Column:   1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message:  "mixed tabs and spaces in indentation",
			})
		}

		ind := pysrc.Indent(line)
		if !inBrackets {
			if ind > prevIndent && !prevOpens {
				diags = append(diags, lint.Diagnostic{
					Line:     offset + i + 1,
					Column:   1,
					RuleID:   r.ID(),
					RuleName: r.Name(),
					Severity: lint.Warning,
					Message:  "unexpected indent",
				})
			}
			trimmed := strings.TrimRight(strings.TrimSpace(line), " \t")
			prevOpens = strings.HasSuffix(trimmed, ":")
			prevContinues = strings.HasSuffix(trimmed, "\\")
			prevIndent = ind
		} else {
			prevContinues = strings.HasSuffix(strings.TrimSpace(line), "\\")
		}
		depth = clamp(depth + bracketDelta(line))
	}
	return diags
}

func bracketDelta(line string) int {
	delta := 0
	for _, c := range line {
		switch c {
		case '(', '[', '{':
			delta++
		case ')', ']', '}':
			delta--
		}
	}
	return delta
}

func clamp(depth int) int {
	if depth < 0 {
		return 0
	}
	return depth
}
