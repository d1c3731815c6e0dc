// Package report derives filtered and grouped views over the flat
// diagnostic list a notebook pass produces.
package report

import "github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"

// FilterBySeverity keeps diagnostics at or above min. Severities outside
// the known set rank zero, so any real threshold excludes them.
func FilterBySeverity(diags []lint.Diagnostic, min lint.Severity) []lint.Diagnostic {
	floor := min.Rank()
	if floor == 0 {
		out := make([]lint.Diagnostic, len(diags))
		copy(out, diags)
		return out
	}
	out := make([]lint.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity.Rank() >= floor {
			out = append(out, d)
		}
	}
	return out
}

// CellGroups is a stable multimap of diagnostics keyed by cell index.
// Order records each cell in order of its first diagnostic.
type CellGroups struct {
	Order  []int
	ByCell map[int][]lint.Diagnostic
}

// GroupByCell groups diagnostics by originating cell, preserving the input
// order within and across groups.
func GroupByCell(diags []lint.Diagnostic) CellGroups {
	g := CellGroups{ByCell: make(map[int][]lint.Diagnostic)}
	for _, d := range diags {
		if _, seen := g.ByCell[d.CellIndex]; !seen {
			g.Order = append(g.Order, d.CellIndex)
		}
		g.ByCell[d.CellIndex] = append(g.ByCell[d.CellIndex], d)
	}
	return g
}

// RuleGroups is a stable multimap of diagnostics keyed by rule ID.
type RuleGroups struct {
	Order  []string
	ByRule map[string][]lint.Diagnostic
}

// GroupByRule groups diagnostics by the rule that produced them, preserving
// the input order within and across groups.
func GroupByRule(diags []lint.Diagnostic) RuleGroups {
	g := RuleGroups{ByRule: make(map[string][]lint.Diagnostic)}
	for _, d := range diags {
		if _, seen := g.ByRule[d.RuleID]; !seen {
			g.Order = append(g.Order, d.RuleID)
		}
		g.ByRule[d.RuleID] = append(g.ByRule[d.RuleID], d)
	}
	return g
}

// Summary holds aggregate counts over one diagnostic list. BySeverity
// always carries all three known buckets, zero-valued when empty.
type Summary struct {
	Total      int
	ByRule     map[string]int
	BySeverity map[lint.Severity]int
}

// Stats summarizes diagnostics by rule and severity.
func Stats(diags []lint.Diagnostic) Summary {
	s := Summary{
		ByRule: make(map[string]int),
		BySeverity: map[lint.Severity]int{
			lint.Error:   0,
			lint.Warning: 0,
			lint.Info:    0,
		},
	}
	for _, d := range diags {
		s.Total++
		s.ByRule[d.RuleID]++
		s.BySeverity[d.Severity]++
	}
	return s
}
