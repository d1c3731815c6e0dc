package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/emptycells"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/missingreturn"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/undefinedvars"
)

// lineRule fires one diagnostic on every line of a cell.
type lineRule struct {
	id string
}

func (r *lineRule) ID() string   { return r.id }
func (r *lineRule) Name() string { return "line-rule-" + r.id }
func (r *lineRule) Check(code string, offset int) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for i := range strings.Split(code, "\n") {
		diags = append(diags, lint.Diagnostic{
			Line:     offset + i + 1,
			Severity: lint.Warning,
			Message:  "line noted",
		})
	}
	return diags
}

// panicRule always panics.
type panicRule struct{}

func (r *panicRule) ID() string   { return "NB666" }
func (r *panicRule) Name() string { return "panic-rule" }
func (r *panicRule) Check(code string, offset int) []lint.Diagnostic {
	panic("heuristic exploded")
}

func newUndefEngine() *Engine {
	e := New(nil)
	e.Register(undefinedvars.New())
	return e
}

func TestLintCell_UndefinedName(t *testing.T) {
	e := newUndefEngine()
	diags, _ := e.LintCell("x = y + 1", 0, 0, lint.NewContext())
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.Severity != lint.Error {
		t.Errorf("expected severity error, got %s", d.Severity)
	}
	if !strings.Contains(d.Message, `"y"`) {
		t.Errorf("expected message mentioning y, got %q", d.Message)
	}
	if d.RuleID != "KL001" {
		t.Errorf("expected diagnostic tagged KL001, got %s", d.RuleID)
	}
}

func TestLintCell_MagicCellShortCircuit(t *testing.T) {
	e := New(nil)
	e.Register(&lineRule{id: "NB100"})
	e.Register(undefinedvars.New())
	diags, names := e.LintCell("%%capture\nprint(undefined_thing)", 0, 0, lint.NewContext())
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics for magic cell, got %d", len(diags))
	}
	if len(names) != 0 {
		t.Errorf("expected no new names for magic cell, got %v", names)
	}
}

func TestLintCell_EmptyCellShortCircuit(t *testing.T) {
	e := New(nil)
	e.Register(&lineRule{id: "NB100"})
	diags, _ := e.LintCell("   \n  ", 0, 0, lint.NewContext())
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics for empty cell, got %d", len(diags))
	}
}

func TestLintCell_Idempotent(t *testing.T) {
	e := newUndefEngine()
	ctx := lint.NewContext()
	first, _ := e.LintCell("a = b + c", 0, 0, ctx)
	second, _ := e.LintCell("a = b + c", 0, 0, ctx)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output on repeated call:\n%v\n%v", first, second)
	}
}

func TestLintCell_FaultIsolation(t *testing.T) {
	e := New(nil)
	e.Register(&panicRule{})
	e.Register(undefinedvars.New())
	diags, _ := e.LintCell("x = y + 1", 0, 0, lint.NewContext())
	if len(diags) != 1 {
		t.Fatalf("expected surviving rule to report, got %d diagnostics", len(diags))
	}
	if diags[0].RuleID != "KL001" {
		t.Errorf("expected KL001 diagnostic, got %s", diags[0].RuleID)
	}
}

func TestLintNotebook_ContextAcrossCells(t *testing.T) {
	e := newUndefEngine()
	diags := e.LintNotebook([]lint.Cell{
		{Code: "x = 1", Index: 0},
		{Code: "y = x + 1", Index: 1},
	})
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d: %v", len(diags), diags)
	}
}

func TestLintNotebook_NoForwardReferences(t *testing.T) {
	e := newUndefEngine()
	diags := e.LintNotebook([]lint.Cell{
		{Code: "y = x + 1", Index: 0},
		{Code: "x = 1", Index: 1},
	})
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic for use before definition, got %d", len(diags))
	}
	if diags[0].CellIndex != 0 {
		t.Errorf("expected diagnostic in cell 0, got %d", diags[0].CellIndex)
	}
}

func TestLintNotebook_OffsetCorrectness(t *testing.T) {
	e := newUndefEngine()
	// Cell 0 has 3 lines, so the error on cell 1 line 2 is absolute 5.
	diags := e.LintNotebook([]lint.Cell{
		{Code: "a = 1\nb = 2\nc = 3", Index: 0},
		{Code: "d = 4\ne = missing + 1", Index: 1},
	})
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	d := diags[0]
	if d.Line != 5 {
		t.Errorf("expected absolute line 5, got %d", d.Line)
	}
	if d.CellLine != 2 {
		t.Errorf("expected cell-local line 2, got %d", d.CellLine)
	}
}

func TestLintNotebook_CellOrderPrecedence(t *testing.T) {
	e := newUndefEngine()
	diags := e.LintNotebook([]lint.Cell{
		{Code: "a = zig + 1", Index: 0},
		{Code: "b = zag + 1", Index: 1},
	})
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].CellIndex != 0 || diags[1].CellIndex != 1 {
		t.Errorf("expected cell 0 diagnostics before cell 1, got %d then %d",
			diags[0].CellIndex, diags[1].CellIndex)
	}
}

func TestLintNotebook_RegistrationOrderWithinCell(t *testing.T) {
	e := New(nil)
	e.Register(&lineRule{id: "NB101"})
	e.Register(&lineRule{id: "NB102"})
	diags := e.LintNotebook([]lint.Cell{{Code: "x = 1", Index: 0}})
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].RuleID != "NB101" || diags[1].RuleID != "NB102" {
		t.Errorf("expected registration order NB101, NB102; got %s, %s",
			diags[0].RuleID, diags[1].RuleID)
	}
}

func TestLintNotebook_EmptyCellRuleStillRuns(t *testing.T) {
	e := New(nil)
	e.Register(&emptycells.Rule{})
	e.Register(undefinedvars.New())
	diags := e.LintNotebook([]lint.Cell{
		{Code: "x = 1", Index: 0},
		{Code: "", Index: 4},
	})
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	d := diags[0]
	if d.RuleID != "KL009" {
		t.Errorf("expected empty-cells diagnostic, got %s", d.RuleID)
	}
	if d.CellIndex != 4 {
		t.Errorf("expected sparse cell index 4 preserved, got %d", d.CellIndex)
	}
	if d.Line != 2 {
		t.Errorf("expected absolute line 2, got %d", d.Line)
	}
}

func TestLintNotebook_ElementForwarded(t *testing.T) {
	type handle struct{ id int }
	e := newUndefEngine()
	ref := &handle{id: 7}
	diags := e.LintNotebook([]lint.Cell{{Code: "x = nope", Index: 0, Element: ref}})
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Element != any(ref) {
		t.Error("expected opaque element reference forwarded untouched")
	}
}

func TestLintNotebook_FunctionScenario(t *testing.T) {
	e := New(nil)
	e.Register(undefinedvars.New())
	e.Register(&missingreturn.Rule{})
	diags := e.LintNotebook([]lint.Cell{{Code: "def foo():\n    return x + 1", Index: 0}})
	if len(diags) != 1 {
		t.Fatalf("expected only the undefined-name diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].RuleID != "KL001" {
		t.Errorf("expected KL001, got %s", diags[0].RuleID)
	}
}

func TestLintNotebook_MonotonicContext(t *testing.T) {
	// The second cell defines nothing through the undefined-variables
	// rule's primary result path (magic line), but the backfill keeps the
	// accumulated context growing rather than shrinking.
	uv := undefinedvars.New()
	e := New(nil)
	e.Register(uv)
	diags := e.LintNotebook([]lint.Cell{
		{Code: "alpha = 1", Index: 0},
		{Code: "beta = 2", Index: 1},
		{Code: "c = alpha + beta", Index: 2},
	})
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d: %v", len(diags), diags)
	}
}

func TestLintNotebook_ResetBetweenPasses(t *testing.T) {
	e := newUndefEngine()
	first := e.LintNotebook([]lint.Cell{{Code: "x = 1", Index: 0}})
	if len(first) != 0 {
		t.Fatalf("expected clean first pass, got %v", first)
	}
	// x from the previous pass must not leak into a fresh pass.
	second := e.LintNotebook([]lint.Cell{{Code: "y = x + 1", Index: 0}})
	if len(second) != 1 {
		t.Fatalf("expected 1 diagnostic in fresh pass, got %d", len(second))
	}
}
