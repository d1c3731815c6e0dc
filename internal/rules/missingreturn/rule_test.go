package missingreturn

import (
	"strings"
	"testing"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
)

func TestCheck_ResultAssignmentWithoutReturn(t *testing.T) {
	code := "def process(items):\n    result = []\n    for i in items:\n        result.append(i)\n"
	r := &Rule{}
	diags := r.Check(code, 0)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.Line != 1 {
		t.Errorf("expected diagnostic at def line 1, got %d", d.Line)
	}
	if d.Severity != lint.Warning {
		t.Errorf("expected severity warning, got %s", d.Severity)
	}
	if !strings.Contains(d.Message, `"process"`) {
		t.Errorf("expected message to name the function, got %q", d.Message)
	}
}

func TestCheck_HasReturnNotFlagged(t *testing.T) {
	code := "def add(a, b):\n    total = a + b\n    return total\n"
	r := &Rule{}
	if diags := r.Check(code, 0); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestCheck_ValuePrefixName(t *testing.T) {
	code := "def get_name(user):\n    print(user)\n"
	r := &Rule{}
	diags := r.Check(code, 0)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic for get_ prefix, got %d", len(diags))
	}
}

func TestCheck_AugmentedAssignment(t *testing.T) {
	code := "def tally(xs):\n    n = 0\n    for x in xs:\n        n += x\n"
	r := &Rule{}
	diags := r.Check(code, 0)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic for augmented assignment body, got %d", len(diags))
	}
}

func TestCheck_SideEffectFunctionNotFlagged(t *testing.T) {
	code := "def log_it(msg):\n    print(msg)\n"
	r := &Rule{}
	if diags := r.Check(code, 0); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestCheck_DunderExempt(t *testing.T) {
	code := "def __init__(self, v):\n    self.value = v\n"
	r := &Rule{}
	if diags := r.Check(code, 0); len(diags) != 0 {
		t.Fatalf("expected __init__ exempt, got %d diagnostics", len(diags))
	}
}

func TestCheck_SetterDecoratorExempt(t *testing.T) {
	code := "@value.setter\ndef value(self, v):\n    self._value = v\n"
	r := &Rule{}
	if diags := r.Check(code, 0); len(diags) != 0 {
		t.Fatalf("expected .setter exempt, got %d diagnostics", len(diags))
	}
}

func TestCheck_GeneratorExempt(t *testing.T) {
	code := "def get_items(xs):\n    for x in xs:\n        yield x\n"
	r := &Rule{}
	if diags := r.Check(code, 0); len(diags) != 0 {
		t.Fatalf("expected generator exempt, got %d diagnostics", len(diags))
	}
}

func TestCheck_OnePerFunction(t *testing.T) {
	code := "def get_a():\n    result = 1\n    total = 2\n    print(result)\n"
	r := &Rule{}
	diags := r.Check(code, 0)
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic per function, got %d", len(diags))
	}
}

func TestCheck_OffsetApplied(t *testing.T) {
	code := "def get_x():\n    result = 1\n"
	r := &Rule{}
	diags := r.Check(code, 5)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Line != 6 {
		t.Errorf("expected line 6, got %d", diags[0].Line)
	}
}

func TestApplySettings_ExtraPrefixes(t *testing.T) {
	r := &Rule{}
	if err := r.ApplySettings(map[string]any{"prefixes": []any{"derive_"}}); err != nil {
		t.Fatal(err)
	}
	code := "def derive_key(seed):\n    print(seed)\n"
	if diags := r.Check(code, 0); len(diags) != 1 {
		t.Fatalf("expected configured prefix to flag, got %d diagnostics", len(diags))
	}
}

func TestApplySettings_RejectsNonList(t *testing.T) {
	r := &Rule{}
	if err := r.ApplySettings(map[string]any{"prefixes": "derive_"}); err == nil {
		t.Error("expected error for non-list prefixes setting")
	}
}
