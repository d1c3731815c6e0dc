package pysrc

import "strings"

// IsMagic reports whether an entire cell is notebook tooling syntax (a cell
// magic or a shell escape) rather than Python code. Such cells are skipped
// by every rule at the cell-processing boundary.
func IsMagic(code string) bool {
	t := strings.TrimSpace(code)
	return strings.HasPrefix(t, "%%") || strings.HasPrefix(t, "!")
}

// IsMagicLine reports whether a single line is a line magic or shell escape.
func IsMagicLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "%") || strings.HasPrefix(t, "!")
}

// StripStringsAndComments replaces the contents of string literals
// (including triple-quoted blocks) and comments with spaces. The result has
// exactly the same length and line structure as the input, so line and
// column positions computed on it map directly back to the source. This is
// the foundation every token-scanning heuristic builds on: brackets, colons
// and identifiers inside strings must never count.
func StripStringsAndComments(code string) string {
	b := []byte(code)
	out := make([]byte, len(b))
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c == '#':
			for i < len(b) && b[i] != '\n' {
				out[i] = ' '
				i++
			}
		case c == '\'' || c == '"':
			quote := c
			// Blank literal prefixes (f"", rb'', u'') so they do not
			// later scan as identifier tokens.
			j := i - 1
			for j >= 0 && i-j <= 2 && strings.IndexByte("rRbBfFuU", b[j]) >= 0 {
				j--
			}
			if j < i-1 && (j < 0 || !isIdentByte(b[j])) {
				for k := j + 1; k < i; k++ {
					out[k] = ' '
				}
			}
			if i+2 < len(b) && b[i+1] == quote && b[i+2] == quote {
				// Triple-quoted: blank everything up to the closing
				// triple, keeping newlines so line numbers survive.
				out[i], out[i+1], out[i+2] = ' ', ' ', ' '
				i += 3
				for i < len(b) {
					if b[i] == quote && i+2 < len(b) && b[i+1] == quote && b[i+2] == quote {
						out[i], out[i+1], out[i+2] = ' ', ' ', ' '
						i += 3
						break
					}
					if b[i] == '\n' {
						out[i] = '\n'
					} else {
						out[i] = ' '
					}
					i++
				}
			} else {
				// Single-quoted: ends at the matching quote, an escaped
				// quote does not end it, a newline ends it (unterminated).
				out[i] = ' '
				i++
				for i < len(b) && b[i] != '\n' {
					if b[i] == '\\' && i+1 < len(b) && b[i+1] != '\n' {
						out[i], out[i+1] = ' ', ' '
						i += 2
						continue
					}
					done := b[i] == quote
					out[i] = ' '
					i++
					if done {
						break
					}
				}
			}
		default:
			out[i] = c
			i++
		}
	}
	return string(out)
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Indent returns the leading whitespace width of line, counting every
// whitespace byte as one column. Tabs therefore count as one; mixing tabs
// and spaces is flagged by its own rule rather than normalized here.
func Indent(line string) int {
	n := 0
	for _, c := range line {
		if c != ' ' && c != '\t' {
			break
		}
		n++
	}
	return n
}

// IsBlank reports whether line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
