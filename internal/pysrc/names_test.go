package pysrc

import "testing"

func has(t *testing.T, names map[string]struct{}, want ...string) {
	t.Helper()
	for _, w := range want {
		if _, ok := names[w]; !ok {
			t.Errorf("expected %q to be extracted, got %v", w, names)
		}
	}
}

func hasNot(t *testing.T, names map[string]struct{}, not ...string) {
	t.Helper()
	for _, n := range not {
		if _, ok := names[n]; ok {
			t.Errorf("expected %q not to be extracted", n)
		}
	}
}

func TestExtract_Assignment(t *testing.T) {
	names := ExtractDefinedNames("x = 1\ny, z = 2, 3")
	has(t, names, "x", "y", "z")
}

func TestExtract_AnnotatedAssignment(t *testing.T) {
	names := ExtractDefinedNames("count: int = 0")
	has(t, names, "count")
	hasNot(t, names, "int")
}

func TestExtract_AugmentedAssignmentDoesNotBind(t *testing.T) {
	names := ExtractDefinedNames("total += 1")
	hasNot(t, names, "total")
}

func TestExtract_DefAndParams(t *testing.T) {
	names := ExtractDefinedNames("def add(a, b=1, *args, **kwargs):\n    return a + b")
	has(t, names, "add", "a", "b", "args", "kwargs")
}

func TestExtract_Class(t *testing.T) {
	names := ExtractDefinedNames("class Model:\n    pass")
	has(t, names, "Model")
}

func TestExtract_Imports(t *testing.T) {
	names := ExtractDefinedNames("import numpy as np\nimport os.path\nfrom collections import Counter, defaultdict as dd")
	has(t, names, "np", "os", "Counter", "dd")
	hasNot(t, names, "numpy", "path", "defaultdict")
}

func TestExtract_ForLoopTargets(t *testing.T) {
	names := ExtractDefinedNames("for i, (a, b) in enumerate(pairs):\n    pass")
	has(t, names, "i", "a", "b")
}

func TestExtract_WithAndExceptAliases(t *testing.T) {
	names := ExtractDefinedNames("with open('f') as fh:\n    pass\ntry:\n    pass\nexcept ValueError as err:\n    pass")
	has(t, names, "fh", "err")
}

func TestExtract_Walrus(t *testing.T) {
	names := ExtractDefinedNames("if (n := len(data)) > 10:\n    pass")
	has(t, names, "n")
}

func TestExtract_SubscriptAndAttributeTargetsSkipped(t *testing.T) {
	names := ExtractDefinedNames("d[key] = 1\nobj.attr = 2")
	hasNot(t, names, "d", "key", "obj", "attr")
}

func TestExtract_ComparisonIsNotAssignment(t *testing.T) {
	names := ExtractDefinedNames("a == b")
	hasNot(t, names, "a", "b")
}

func TestExtract_MagicLineSkipped(t *testing.T) {
	names := ExtractDefinedNames("%time x = slow()")
	hasNot(t, names, "x")
}

func TestExtract_StringContentsIgnored(t *testing.T) {
	names := ExtractDefinedNames("s = 'fake = 1'")
	has(t, names, "s")
	hasNot(t, names, "fake")
}
