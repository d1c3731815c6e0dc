// Package notebook loads Jupyter notebooks and plain Python files into the
// cell list the lint engine consumes.
package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
)

// rawNotebook mirrors the subset of the .ipynb format we need. Cell sources
// appear either as a single string or as a list of line fragments depending
// on the tool that wrote the file.
type rawNotebook struct {
	Cells []rawCell `json:"cells"`
}

type rawCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
	ID       string          `json:"id"`
}

// Load reads a notebook or Python file and returns its code cells in
// document order. Files ending in .ipynb are parsed as notebook JSON; any
// other extension is treated as a single-cell Python source file.
func Load(path string) ([]lint.Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".ipynb" {
		return Parse(data)
	}
	return []lint.Cell{{Code: string(data), Index: 0}}, nil
}

// Parse decodes notebook JSON into code cells. Markdown and raw cells are
// dropped but still advance the cell index, so reported indexes match what
// the notebook UI shows.
func Parse(data []byte) ([]lint.Cell, error) {
	var nb rawNotebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("parsing notebook: %w", err)
	}
	cells := make([]lint.Cell, 0, len(nb.Cells))
	for i, rc := range nb.Cells {
		if rc.CellType != "code" {
			continue
		}
		code, err := decodeSource(rc.Source)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cell := lint.Cell{Code: code, Index: i}
		if rc.ID != "" {
			cell.Element = rc.ID
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func decodeSource(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var parts []string
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", fmt.Errorf("unsupported source shape: %s", snippet(raw))
	}
	return strings.Join(parts, ""), nil
}

func snippet(raw json.RawMessage) string {
	const max = 40
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
