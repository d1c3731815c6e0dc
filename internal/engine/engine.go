package engine

import (
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/log"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/pysrc"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"
)

// Engine runs a registered rule set over single cells or whole notebooks.
// It owns the cross-cell Context for the duration of a notebook pass,
// assigns absolute line numbers, tags diagnostics with their originating
// rule and cell, and isolates per-rule faults so one broken heuristic never
// takes the pass down.
type Engine struct {
	rules []rule.Rule
	log   *log.Logger
}

// New returns an Engine with no rules. A nil logger disables fault logging.
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = &log.Logger{}
	}
	return &Engine{log: logger}
}

// Register appends a rule. Registration order fixes diagnostic ordering
// within a cell.
func (e *Engine) Register(r rule.Rule) {
	e.rules = append(e.rules, r)
}

// Rules returns the registered rules in registration order.
func (e *Engine) Rules() []rule.Rule {
	out := make([]rule.Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// LintCell runs every per-cell rule against one cell's code. Diagnostics
// come back with absolute line numbers (offset applied by the rules) and
// are tagged with cellIndex. The returned name set contains every name the
// cell defines according to context-aware rules; the caller merges it into
// its running context. Empty and magic cells short-circuit here so no rule
// has to re-implement the convention.
func (e *Engine) LintCell(code string, offset, cellIndex int, ctx *lint.Context) ([]lint.Diagnostic, map[string]struct{}) {
	if skipCell(code) {
		return nil, nil
	}

	var diags []lint.Diagnostic
	newNames := make(map[string]struct{})

	for _, r := range e.rules {
		if _, ok := r.(rule.NotebookRule); ok {
			// Notebook-scoped rules need the raw cell; they run through
			// LintNotebook only.
			continue
		}
		res := e.invoke(r, code, offset, ctx)
		tag(res.Errors, r, cellIndex)
		diags = append(diags, res.Errors...)
		for n := range res.DefinedNames {
			newNames[n] = struct{}{}
		}
	}
	return diags, newNames
}

// LintNotebook processes cells strictly in slice order, accumulating
// defined names so a later cell may use anything an earlier cell defined.
// Diagnostics for cell i always precede diagnostics for cell i+1; within a
// cell, rules fire in registration order.
func (e *Engine) LintNotebook(cells []lint.Cell) []lint.Diagnostic {
	for _, r := range e.rules {
		if res, ok := r.(rule.Resettable); ok {
			res.ResetContext()
		}
	}

	ctx := lint.NewContext()
	offset := 0
	var all []lint.Diagnostic

	for _, cell := range cells {
		skip := skipCell(cell.Code)
		var cellDiags []lint.Diagnostic
		newNames := make(map[string]struct{})

		for _, r := range e.rules {
			if nr, ok := r.(rule.NotebookRule); ok {
				d := e.invokeCell(nr, cell, offset)
				tag(d, r, cell.Index)
				cellDiags = append(cellDiags, d...)
				continue
			}
			if skip {
				continue
			}
			// Every rule in this cell sees the same incoming context;
			// names the cell defines become visible from the next cell.
			res := e.invoke(r, cell.Code, offset, ctx)
			tag(res.Errors, r, cell.Index)
			cellDiags = append(cellDiags, res.Errors...)
			for n := range res.DefinedNames {
				newNames[n] = struct{}{}
			}
		}
		ctx.Merge(newNames)

		// Backfill: re-run every name extractor over the full cell so
		// the context stays complete even if a rule's primary result
		// dropped a binding.
		if !skip {
			for _, r := range e.rules {
				if ne, ok := r.(rule.NameExtractor); ok {
					ctx.Merge(ne.ExtractDefinedNames(cell.Code))
				}
			}
		}

		for i := range cellDiags {
			cellDiags[i].CellLine = cellDiags[i].Line - offset
			cellDiags[i].Element = cell.Element
		}
		all = append(all, cellDiags...)
		offset += cell.LineCount()
	}
	return all
}

// invoke runs one rule against one cell with panic isolation. A faulting
// rule contributes nothing for that cell; the fault is logged and the pass
// continues.
func (e *Engine) invoke(r rule.Rule, code string, offset int, ctx *lint.Context) (res rule.Result) {
	defer func() {
		if v := recover(); v != nil {
			e.log.Printf("rule %s failed on cell at offset %d: %v", r.ID(), offset, v)
			res = rule.Result{}
		}
	}()
	if cr, ok := r.(rule.ContextRule); ok {
		if ctx == nil {
			ctx = lint.NewContext()
		}
		return cr.CheckContext(code, offset, ctx)
	}
	return rule.Result{Errors: r.Check(code, offset)}
}

func (e *Engine) invokeCell(r rule.NotebookRule, cell lint.Cell, offset int) (diags []lint.Diagnostic) {
	defer func() {
		if v := recover(); v != nil {
			e.log.Printf("rule %s failed on cell %d: %v", r.ID(), cell.Index, v)
			diags = nil
		}
	}()
	return r.CheckCell(cell, offset)
}

func tag(diags []lint.Diagnostic, r rule.Rule, cellIndex int) {
	for i := range diags {
		diags[i].RuleID = r.ID()
		diags[i].RuleName = r.Name()
		diags[i].CellIndex = cellIndex
	}
}

// skipCell implements the cell-boundary convention: whitespace-only cells
// and cells starting with a cell magic or shell escape are not Python.
func skipCell(code string) bool {
	return strings.TrimSpace(code) == "" || pysrc.IsMagic(code)
}
