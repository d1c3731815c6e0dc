package pysrc

import (
	"regexp"
	"strings"
)

var identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// Ident is one identifier token found in stripped source text.
type Ident struct {
	Name string
	Line int // 1-based line within the scanned text
	Col  int // 1-based byte column
	Prev byte // nearest preceding non-space byte on the line, 0 at line start
	Next byte // nearest following non-space byte on the line, 0 at line end
	Peek byte // the byte immediately after Next, 0 when absent
}

// Attr reports whether the token is an attribute access (`obj.name`).
func (id Ident) Attr() bool { return id.Prev == '.' }

// KeywordArg reports whether the token looks like a keyword-argument or
// assignment target (`name=` but not `name==`).
func (id Ident) KeywordArg() bool { return id.Next == '=' && id.Peek != '=' }

// Identifiers scans stripped source text and returns every identifier token
// with its position and immediate punctuation neighborhood. Callers are
// expected to pass output of StripStringsAndComments so tokens inside
// strings and comments never appear.
func Identifiers(stripped string) []Ident {
	var ids []Ident
	for li, line := range strings.Split(stripped, "\n") {
		for _, loc := range identRe.FindAllStringIndex(line, -1) {
			start, end := loc[0], loc[1]
			if start > 0 {
				p := line[start-1]
				// A letter run directly after a digit is a numeric
				// literal suffix (1e5, 0xFF), not an identifier.
				if p >= '0' && p <= '9' {
					continue
				}
			}
			id := Ident{
				Name: line[start:end],
				Line: li + 1,
				Col:  start + 1,
			}
			for j := start - 1; j >= 0; j-- {
				if line[j] != ' ' && line[j] != '\t' {
					id.Prev = line[j]
					break
				}
			}
			for j := end; j < len(line); j++ {
				if line[j] != ' ' && line[j] != '\t' {
					id.Next = line[j]
					if j+1 < len(line) {
						id.Peek = line[j+1]
					}
					break
				}
			}
			ids = append(ids, id)
		}
	}
	return ids
}
