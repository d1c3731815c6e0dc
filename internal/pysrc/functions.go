package pysrc

import (
	"regexp"
	"strings"
)

// FunctionInfo describes one function found by ScanFunctions. BodyIndent is
// the indentation column of the first non-blank body line, or -1 when the
// function has no body lines. Decorators are the dotted names of the `@`
// lines immediately preceding the `def`, in source order.
type FunctionInfo struct {
	Name       string
	StartLine  int // 1-based line of the `def`
	EndLine    int // 1-based line of the last non-blank body line
	Body       string
	Decorators []string
	Indent     int
	BodyIndent int
	HasReturn  bool
}

var (
	decoratorRe = regexp.MustCompile(`^\s*@([A-Za-z_][\w.]*)`)
	defStartRe  = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	returnRe    = regexp.MustCompile(`^\s*return\b`)
)

// ScanFunctions segments cell code into functions using indentation alone.
// A function's body is every following line more indented than its `def`;
// the first non-blank line at or below the `def` indentation ends it, and
// may itself be a decorator for the next function. Blank lines belong to
// the body without affecting indentation tracking. Nested defs are swallowed
// into the enclosing body, a known limitation of the line-based approach.
func ScanFunctions(code string) []FunctionInfo {
	lines := strings.Split(StripStringsAndComments(code), "\n")
	rawLines := strings.Split(code, "\n")

	var funcs []FunctionInfo
	var pending []string
	var cur *FunctionInfo
	var body []string

	finish := func() {
		if cur == nil {
			return
		}
		cur.Body = strings.Join(body, "\n")
		funcs = append(funcs, *cur)
		cur = nil
		body = nil
	}

	for i, line := range lines {
		if cur != nil {
			if IsBlank(line) {
				body = append(body, rawLines[i])
				continue
			}
			ind := Indent(line)
			if ind > cur.Indent {
				if cur.BodyIndent < 0 {
					cur.BodyIndent = ind
				}
				body = append(body, rawLines[i])
				cur.EndLine = i + 1
				if !strings.HasPrefix(strings.TrimSpace(rawLines[i]), "#") && returnRe.MatchString(line) {
					cur.HasReturn = true
				}
				continue
			}
			finish()
			// Fall through: the terminating line may start the next
			// decorator/def chain.
		}
		if m := decoratorRe.FindStringSubmatch(line); m != nil {
			pending = append(pending, m[1])
			continue
		}
		if m := defStartRe.FindStringSubmatch(line); m != nil {
			cur = &FunctionInfo{
				Name:       m[2],
				StartLine:  i + 1,
				EndLine:    i + 1,
				Decorators: pending,
				Indent:     len(m[1]),
				BodyIndent: -1,
			}
			pending = nil
			continue
		}
		if !IsBlank(line) {
			pending = nil
		}
	}
	finish()
	return funcs
}
