package pysrc

import "testing"

func TestScanFunctions_Simple(t *testing.T) {
	code := "def foo():\n    x = 1\n    return x\n"
	funcs := ScanFunctions(code)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	f := funcs[0]
	if f.Name != "foo" {
		t.Errorf("expected name foo, got %s", f.Name)
	}
	if f.StartLine != 1 {
		t.Errorf("expected start line 1, got %d", f.StartLine)
	}
	if f.EndLine != 3 {
		t.Errorf("expected end line 3, got %d", f.EndLine)
	}
	if f.BodyIndent != 4 {
		t.Errorf("expected body indent 4, got %d", f.BodyIndent)
	}
	if !f.HasReturn {
		t.Error("expected HasReturn true")
	}
}

func TestScanFunctions_NoReturn(t *testing.T) {
	code := "def bar():\n    x = 1\n    print(x)\n"
	funcs := ScanFunctions(code)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	if funcs[0].HasReturn {
		t.Error("expected HasReturn false")
	}
}

func TestScanFunctions_CommentedReturnIgnored(t *testing.T) {
	code := "def bar():\n    # return x\n    print(1)\n"
	funcs := ScanFunctions(code)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	if funcs[0].HasReturn {
		t.Error("expected commented return not to count")
	}
}

func TestScanFunctions_BlankLinesInBody(t *testing.T) {
	code := "def foo():\n    x = 1\n\n    return x\nprint('after')\n"
	funcs := ScanFunctions(code)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	f := funcs[0]
	if f.EndLine != 4 {
		t.Errorf("expected end line 4, got %d", f.EndLine)
	}
	if !f.HasReturn {
		t.Error("expected HasReturn true across blank line")
	}
}

func TestScanFunctions_Decorators(t *testing.T) {
	code := "@app.route\n@cached\ndef handler():\n    pass\n"
	funcs := ScanFunctions(code)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	f := funcs[0]
	if len(f.Decorators) != 2 {
		t.Fatalf("expected 2 decorators, got %d", len(f.Decorators))
	}
	if f.Decorators[0] != "app.route" || f.Decorators[1] != "cached" {
		t.Errorf("unexpected decorators: %v", f.Decorators)
	}
}

func TestScanFunctions_TerminatorStartsNextChain(t *testing.T) {
	code := "def a():\n    pass\n@prop.setter\ndef b(v):\n    pass\n"
	funcs := ScanFunctions(code)
	if len(funcs) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(funcs))
	}
	if funcs[1].Name != "b" {
		t.Errorf("expected second function b, got %s", funcs[1].Name)
	}
	if len(funcs[1].Decorators) != 1 || funcs[1].Decorators[0] != "prop.setter" {
		t.Errorf("expected decorator prop.setter on b, got %v", funcs[1].Decorators)
	}
}

func TestScanFunctions_MethodIndent(t *testing.T) {
	code := "class C:\n    def method(self):\n        return 1\nx = 2\n"
	funcs := ScanFunctions(code)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	f := funcs[0]
	if f.Indent != 4 {
		t.Errorf("expected indent 4, got %d", f.Indent)
	}
	if f.BodyIndent != 8 {
		t.Errorf("expected body indent 8, got %d", f.BodyIndent)
	}
}

func TestScanFunctions_ReturnInStringIgnored(t *testing.T) {
	code := "def foo():\n    s = 'return nothing'\n    print(s)\n"
	funcs := ScanFunctions(code)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	if funcs[0].HasReturn {
		t.Error("expected return inside string not to count")
	}
}
