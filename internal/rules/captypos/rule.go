package captypos

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

// Rule flags identifiers whose case-folded form matches a known name but
// whose exact casing differs: `true` for `True`, `dataframe` for
// `DataFrame`. The known-name table merges a fixed vocabulary with names
// the cell itself defines, so a local `Model = ...` makes `model` a typo
// candidate too.
type Rule struct{}

// canonicalNames maps case-folded spellings to their canonical casing:
// constants, builtins commonly mistyped by people coming from other
// languages, exception classes, and frequently used library types.
var canonicalNames = map[string]string{
	"true":  "True",
	"false": "False",
	"none":  "None",

	"exception":           "Exception",
	"baseexception":       "BaseException",
	"valueerror":          "ValueError",
	"typeerror":           "TypeError",
	"keyerror":            "KeyError",
	"indexerror":          "IndexError",
	"attributeerror":      "AttributeError",
	"nameerror":           "NameError",
	"runtimeerror":        "RuntimeError",
	"stopiteration":       "StopIteration",
	"zerodivisionerror":   "ZeroDivisionError",
	"filenotfounderror":   "FileNotFoundError",
	"notimplementederror": "NotImplementedError",
	"importerror":         "ImportError",
	"keyboardinterrupt":   "KeyboardInterrupt",

	"dataframe":   "DataFrame",
	"series":      "Series",
	"counter":     "Counter",
	"ordereddict": "OrderedDict",
	"namedtuple":  "namedtuple",
	"defaultdict": "defaultdict",
	"path":        "Path",
	"thread":      "Thread",
	"process":     "Process",
	"decimal":     "Decimal",
	"fraction":    "Fraction",
}

// typingNames are legitimately capitalized typing-module names whose
// lowercase twins (list, dict, ...) are builtins; neither direction is a
// typo, so the tokens are excluded outright.
var typingNames = map[string]struct{}{
	"List": {}, "Dict": {}, "Set": {}, "Tuple": {}, "FrozenSet": {},
	"Optional": {}, "Union": {}, "Any": {}, "Callable": {}, "Iterator": {},
	"Iterable": {}, "Sequence": {}, "Mapping": {}, "MutableMapping": {},
	"Type": {}, "TypeVar": {}, "Generic": {}, "Literal": {}, "Final": {},
	"ClassVar": {}, "Annotated": {}, "Protocol": {}, "NamedTuple": {},
	"TypedDict": {}, "Text": {}, "IO": {}, "Generator": {},
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "KL003" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "capitalization-typos" }

// Check implements rule.Rule.
func (r *Rule) Check(code string, offset int) []lint.Diagnostic {
	if pysrc.IsMagic(code) {
		return nil
	}
	known := r.knownNames(code)
	stripped := pysrc.StripStringsAndComments(code)

	var diags []lint.Diagnostic
	for _, id := range pysrc.Identifiers(stripped) {
		if id.Attr() {
			continue
		}
		if _, ok := typingNames[id.Name]; ok {
			continue
		}
		canonical, ok := known[strings.ToLower(id.Name)]
		if !ok || canonical == id.Name {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			Line:     offset + id.Line,
			Column:   id.Col,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Warning,
			Message:  fmt.Sprintf("%q should probably be %q", id.Name, canonical),
		})
	}
	return diags
}

// knownNames merges the fixed vocabulary with names this cell defines via
// def, class or plain assignment. Local definitions win: a user who really
// defines `true` gets to use it.
func (r *Rule) knownNames(code string) map[string]string {
	known := make(map[string]string, len(canonicalNames))
	for k, v := range canonicalNames {
		known[k] = v
	}
	for name := range pysrc.ExtractDefinedNames(code) {
		known[strings.ToLower(name)] = name
	}
	return known
}
