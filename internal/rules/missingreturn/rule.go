package missingreturn

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/pysrc"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags functions that look like they compute a value but never
// return one. Two signals qualify a return-less function: its body assigns
// to a conventionally meaningful accumulator name (or uses augmented
// assignment), or its own name carries a value-returning prefix such as
// get_ or calculate_.
type Rule struct {
	extraPrefixes []string
}

// exemptNames are functions with side-effect contracts: object lifecycle
// and attribute-protocol dunders, test fixture hooks, and script entry
// points.
var exemptNames = map[string]struct{}{
	"__init__": {}, "__new__": {}, "__del__": {}, "__setattr__": {},
	"__delattr__": {}, "__set_name__": {}, "__init_subclass__": {},
	"__post_init__": {}, "__enter__": {}, "__exit__": {},
	"setUp": {}, "tearDown": {}, "setUpClass": {}, "tearDownClass": {},
	"setup_method": {}, "teardown_method": {},
	"main": {},
}

var resultNames = []string{
	"result", "total", "sum", "count", "output", "value", "answer",
	"res", "ret", "data",
}

var valuePrefixes = []string{
	"get_", "calculate_", "compute_", "find_", "create_", "build_",
	"make_", "generate_", "parse_", "convert_", "transform_",
	"extract_", "fetch_", "load_", "read_",
}

var (
	resultAssignRe = regexp.MustCompile(`^\s*(` + strings.Join(resultNames, "|") + `)\s*=[^=]`)
	augAssignRe    = regexp.MustCompile(`^\s*[A-Za-z_][\w.\[\]'"]*\s*(\+|-|\*|/|//|%|\*\*|&|\||\^|>>|<<)=`)
	yieldRe        = regexp.MustCompile(`^\s*yield\b`)
)

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL002" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "missing-return" }

// Check implements rule.Rule.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic {
	if pysrc.IsMagic(code) {
		return nil
	}
	var diags []lint.Diagnostic
	for _, fn := range pysrc.ScanFunctions(code) {
		if fn.HasReturn || r.exempt(fn) {
			continue
		}
		if !r.producesValue(fn) {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			Line:     offset + fn.StartLine,
			Column:   fn.Indent + 1,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Warning,
			Message:  fmt.Sprintf("function %q appears to compute a value but has no return statement", fn.Name),
		})
	}
	return diags
}

func (r *Rule) exempt(fn pysrc.FunctionInfo) bool {
	if _, ok := exemptNames[fn.Name]; ok {
		return true
	}
	for _, d := range fn.Decorators {
		if strings.HasSuffix(d, ".setter") {
			return true
		}
	}
	// Generators yield their values; a return would be wrong.
	for _, line := range strings.Split(fn.Body, "\n") {
		if yieldRe.MatchString(line) {
			return true
		}
	}
	return false
}

func (r *Rule) producesValue(fn pysrc.FunctionInfo) bool {
	for _, p := range valuePrefixes {
		if strings.HasPrefix(fn.Name, p) {
			return true
		}
	}
	for _, p := range r.extraPrefixes {
		if strings.HasPrefix(fn.Name, p) {
			return true
		}
	}
	body := pysrc.StripStringsAndComments(fn.Body)
	for _, line := range strings.Split(body, "\n") {
		if resultAssignRe.MatchString(line) || augAssignRe.MatchString(line) {
			return true
		}
	}
	return false
}

// ApplySettings implements rule.Configurable. The "prefixes" setting adds
// project-specific value-returning name prefixes.
func (r *Rule) ApplySettings(settings map[string]any) error {
	v, ok := settings["prefixes"]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("prefixes must be a list of strings, got %T", v)
	}
	r.extraPrefixes = nil
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return fmt.Errorf("prefixes must be a list of strings, got %T element", item)
		}
		r.extraPrefixes = append(r.extraPrefixes, s)
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{"prefixes": []any{}}
}
