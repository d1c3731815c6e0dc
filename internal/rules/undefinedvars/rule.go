package undefinedvars

import (
	"fmt"
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/pysrc"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"
)

func init() {
	rule.Register(New())
}

// Rule flags identifier uses that are neither builtins, nor bound anywhere
// in the current cell, nor present in the accumulated cross-cell context.
// It also reports the names a cell defines so later cells see them.
type Rule struct {
	// extracted memoizes ExtractDefinedNames per cell code for the
	// duration of one notebook pass; the engine re-queries the extraction
	// for its context backfill and the memo keeps that cheap.
	extracted map[string]map[string]struct{}
}

// New returns a Rule with an empty memo.
func New() *Rule {
	return &Rule{extracted: make(map[string]map[string]struct{})}
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "undefined-variables" }

// Check implements rule.Rule; without context only cell-local bindings
// count as defined.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic {
	return r.CheckContext(code, offset, nil).Errors
}

// CheckContext implements rule.ContextRule.
func (r *Rule) CheckContext(code string, offset int, ctx *lint.Context) rule.Result {
	if pysrc.IsMagic(code) {
		return rule.Result{}
	}
	defined := r.ExtractDefinedNames(code)
	stripped := pysrc.StripStringsAndComments(code)

	var diags []lint.Diagnostic
	for i, line := range strings.Split(stripped, "\n") {
		if pysrc.IsMagicLine(line) || skipLine(line) {
			continue
		}
		// One diagnostic per distinct undefined name per statement.
		reported := make(map[string]bool)
		for _, id := range pysrc.Identifiers(line) {
			switch {
			case id.Attr(), id.KeywordArg():
				continue
			case pysrc.IsKeyword(id.Name), pysrc.IsBuiltin(id.Name):
				continue
			}
			if _, ok := defined[id.Name]; ok {
				continue
			}
			if ctx.Has(id.Name) || reported[id.Name] {
				continue
			}
			reported[id.Name] = true
			diags = append(diags, lint.Diagnostic{
				Line:     offset + i + 1,
				Column:   id.Col,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Error,
				Message:  fmt.Sprintf("name %q is not defined", id.Name),
			})
		}
	}
	return rule.Result{Errors: diags, DefinedNames: defined}
}

// ExtractDefinedNames implements rule.NameExtractor.
func (r *Rule) ExtractDefinedNames(code string) map[string]struct{} {
	if names, ok := r.extracted[code]; ok {
		return names
	}
	names := pysrc.ExtractDefinedNames(code)
	r.extracted[code] = names
	return names
}

// ResetContext implements rule.Resettable: the memo is only valid within
// one notebook pass.
func (r *Rule) ResetContext() {
	r.extracted = make(map[string]map[string]struct{})
}

// skipLine reports lines whose identifiers are module paths or scope
// declarations, not variable uses.
func skipLine(line string) bool {
	t := strings.TrimSpace(line)
	for _, prefix := range []string{"import ", "from ", "global ", "nonlocal ", "del "} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
