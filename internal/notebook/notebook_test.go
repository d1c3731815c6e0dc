package notebook

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "source": "# Title", "id": "md1"},
    {"cell_type": "code", "source": ["import numpy as np\n", "x = np.zeros(3)\n"], "id": "c1"},
    {"cell_type": "code", "source": "print(x)", "id": "c2"},
    {"cell_type": "raw", "source": "ignored"},
    {"cell_type": "code", "source": []}
  ],
  "nbformat": 4
}`

func TestParse_CodeCellsOnly(t *testing.T) {
	cells, err := Parse([]byte(sampleNotebook))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("expected 3 code cells, got %d", len(cells))
	}
	if cells[0].Code != "import numpy as np\nx = np.zeros(3)\n" {
		t.Errorf("joined source mismatch: %q", cells[0].Code)
	}
	if cells[1].Code != "print(x)" {
		t.Errorf("string source mismatch: %q", cells[1].Code)
	}
	if cells[2].Code != "" {
		t.Errorf("empty source list should yield empty code, got %q", cells[2].Code)
	}
}

func TestParse_IndexesCountAllCells(t *testing.T) {
	cells, err := Parse([]byte(sampleNotebook))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 4}
	for i, cell := range cells {
		if cell.Index != want[i] {
			t.Errorf("cell %d: expected index %d, got %d", i, want[i], cell.Index)
		}
	}
}

func TestParse_ElementCarriesID(t *testing.T) {
	cells, err := Parse([]byte(sampleNotebook))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, ok := cells[0].Element.(string); !ok || id != "c1" {
		t.Errorf("expected element id %q, got %v", "c1", cells[0].Element)
	}
	if cells[2].Element != nil {
		t.Errorf("expected nil element for cell without id, got %v", cells[2].Element)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoad_PythonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	src := "x = 1\nprint(x)\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cells, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(cells))
	}
	if cells[0].Code != src || cells[0].Index != 0 {
		t.Errorf("unexpected cell: %+v", cells[0])
	}
}

func TestLoad_NotebookFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nb.ipynb")
	if err := os.WriteFile(path, []byte(sampleNotebook), 0o644); err != nil {
		t.Fatal(err)
	}
	cells, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.ipynb")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
