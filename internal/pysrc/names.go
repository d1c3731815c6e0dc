package pysrc

import (
	"regexp"
	"strings"
)

var (
	defRe     = regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(([^)]*)`)
	classRe   = regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`)
	importRe  = regexp.MustCompile(`^\s*import\s+(.+)$`)
	fromRe    = regexp.MustCompile(`^\s*from\s+\S+\s+import\s+(.+)$`)
	forRe     = regexp.MustCompile(`\bfor\s+(.+?)\s+in\b`)
	asNameRe  = regexp.MustCompile(`\bas\s+([A-Za-z_]\w*)`)
	scopeRe   = regexp.MustCompile(`^\s*(?:global|nonlocal)\s+(.+)$`)
	lambdaRe  = regexp.MustCompile(`\blambda\s+([^:]+):`)
	walrusRe  = regexp.MustCompile(`\b([A-Za-z_]\w*)\s*:=`)
	identOnly = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// ExtractDefinedNames returns every name the given cell code binds: plain
// and annotated assignment targets (including tuple/list unpacking),
// def/class names, function parameters, import bindings, loop variables,
// with/except aliases, walrus targets and lambda parameters. The extraction
// is line-based; bindings inside multi-line statements past the first line
// are missed, a known limitation shared with the rest of the heuristics.
func ExtractDefinedNames(code string) map[string]struct{} {
	names := make(map[string]struct{})
	stripped := StripStringsAndComments(code)

	for _, line := range strings.Split(stripped, "\n") {
		if IsMagicLine(line) {
			continue
		}
		if m := defRe.FindStringSubmatch(line); m != nil {
			names[m[1]] = struct{}{}
			addParams(names, m[2])
			continue
		}
		if m := classRe.FindStringSubmatch(line); m != nil {
			names[m[1]] = struct{}{}
			continue
		}
		if m := importRe.FindStringSubmatch(line); m != nil {
			addImportBindings(names, m[1])
			continue
		}
		if m := fromRe.FindStringSubmatch(line); m != nil {
			addFromBindings(names, m[1])
			continue
		}
		if m := scopeRe.FindStringSubmatch(line); m != nil {
			for _, part := range strings.Split(m[1], ",") {
				addIdent(names, part)
			}
			continue
		}
		// Both for statements and comprehension clauses bind their targets.
		for _, m := range forRe.FindAllStringSubmatch(line, -1) {
			addTargets(names, m[1])
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "with ") || strings.HasPrefix(trimmed, "except ") ||
			strings.HasPrefix(trimmed, "async with ") {
			for _, m := range asNameRe.FindAllStringSubmatch(line, -1) {
				names[m[1]] = struct{}{}
			}
		}
		for _, m := range walrusRe.FindAllStringSubmatch(line, -1) {
			names[m[1]] = struct{}{}
		}
		for _, m := range lambdaRe.FindAllStringSubmatch(line, -1) {
			addParams(names, m[1])
		}
		if lhs, ok := assignmentLHS(line); ok {
			addTargets(names, lhs)
		}
	}
	return names
}

// assignmentLHS finds the left side of a plain (or annotated) assignment.
// Augmented assignments and comparisons are excluded by inspecting the byte
// before the '='.
func assignmentLHS(line string) (string, bool) {
	for i := 0; i < len(line); i++ {
		if line[i] != '=' {
			continue
		}
		if i+1 < len(line) && line[i+1] == '=' {
			i++ // skip '=='
			continue
		}
		if i > 0 && strings.IndexByte("=!<>+-*/%&|^:@~", line[i-1]) >= 0 {
			continue
		}
		return line[:i], true
	}
	return "", false
}

// addTargets handles comma-separated assignment or loop targets, including
// starred names and parenthesized tuples. Attribute and subscript targets
// bind no new name and are skipped.
func addTargets(names map[string]struct{}, lhs string) {
	for _, part := range strings.Split(lhs, ",") {
		part = strings.TrimSpace(part)
		if colon := strings.IndexByte(part, ':'); colon >= 0 {
			part = part[:colon] // annotated assignment target
		}
		part = strings.Trim(part, " \t()[]*")
		if strings.ContainsAny(part, ".([") {
			continue
		}
		addIdent(names, part)
	}
}

func addParams(names map[string]struct{}, params string) {
	for _, p := range strings.Split(params, ",") {
		p = strings.TrimSpace(p)
		p = strings.TrimLeft(p, "*")
		if eq := strings.IndexByte(p, '='); eq >= 0 {
			p = p[:eq]
		}
		if colon := strings.IndexByte(p, ':'); colon >= 0 {
			p = p[:colon]
		}
		addIdent(names, p)
	}
}

// addImportBindings handles `import a.b, c as d`: a dotted module binds its
// first component, an alias binds the alias instead.
func addImportBindings(names map[string]struct{}, clause string) {
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if m := asNameRe.FindStringSubmatch(part); m != nil {
			names[m[1]] = struct{}{}
			continue
		}
		if dot := strings.IndexByte(part, '.'); dot >= 0 {
			part = part[:dot]
		}
		addIdent(names, part)
	}
}

// addFromBindings handles `from m import a, b as c`; a wildcard import
// binds nothing we can name.
func addFromBindings(names map[string]struct{}, clause string) {
	clause = strings.Trim(clause, " \t()")
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if part == "*" {
			continue
		}
		if m := asNameRe.FindStringSubmatch(part); m != nil {
			names[m[1]] = struct{}{}
			continue
		}
		addIdent(names, part)
	}
}

func addIdent(names map[string]struct{}, s string) {
	s = strings.TrimSpace(s)
	if s == "" || s == "_" || !identOnly.MatchString(s) {
		return
	}
	names[s] = struct{}{}
}
