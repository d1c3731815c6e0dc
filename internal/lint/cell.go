package lint

import "strings"

// Cell is one independently-editable unit of source code within a notebook.
// Cells are processed in slice order; Index is the notebook's own cell
// numbering, which may be sparse when cells have been deleted.
type Cell struct {
	Code    string
	Index   int
	Element any
}

// LineCount returns the number of lines the cell contributes to the
// notebook's absolute line numbering. An empty cell still occupies one line.
func (c Cell) LineCount() int {
	return strings.Count(c.Code, "\n") + 1
}
