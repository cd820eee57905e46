// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet reads identifiers from and writes results to one worksheet
// of an Excel workbook. A Sheet is opened once per run and passed through
// the pipeline, so input and output always address the same worksheet.
package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is an open workbook bound to one worksheet.
type Sheet struct {
	file *excelize.File
	path string
	name string
}

// Open opens the workbook at path and binds it to the worksheet called
// name. An empty name selects the sheet that was active when the workbook
// was last saved.
func Open(path, name string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}

	if name == "" {
		name = f.GetSheetName(f.GetActiveSheetIndex())
		if name == "" {
			f.Close()
			return nil, fmt.Errorf("workbook %s has no active sheet", path)
		}
	} else {
		idx, err := f.GetSheetIndex(name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("workbook %s: sheet %q: %w", path, name, err)
		}
		if idx < 0 {
			f.Close()
			return nil, fmt.Errorf("workbook %s has no sheet %q", path, name)
		}
	}

	return &Sheet{file: f, path: path, name: name}, nil
}

// Name returns the bound worksheet name.
func (s *Sheet) Name() string { return s.name }

// Path returns the workbook path.
func (s *Sheet) Path() string { return s.path }

// ReadIdentifiers reads count cells down column col starting at firstRow
// and returns them as identifier strings (see Coerce).
func (s *Sheet) ReadIdentifiers(col string, firstRow, count int) ([]string, error) {
	cells, err := cellRange(col, firstRow, count)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(cells))
	for i, cell := range cells {
		v, err := s.file.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("reading %s!%s: %w", s.name, cell, err)
		}
		ids[i] = Coerce(v)
	}
	return ids, nil
}

// WriteResults writes values down column col starting at firstRow. The
// workbook is not saved until Save is called.
func (s *Sheet) WriteResults(col string, firstRow int, values []string) error {
	cells, err := cellRange(col, firstRow, len(values))
	if err != nil {
		return err
	}
	for i, cell := range cells {
		if err := s.file.SetCellValue(s.name, cell, values[i]); err != nil {
			return fmt.Errorf("writing %s!%s: %w", s.name, cell, err)
		}
	}
	return nil
}

// Save writes the workbook back to its path.
func (s *Sheet) Save() error {
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("saving workbook %s: %w", s.path, err)
	}
	return nil
}

// Close releases the workbook.
func (s *Sheet) Close() error {
	return s.file.Close()
}

// Coerce turns a raw cell value into an identifier string. Numeric cells
// come back as floats ("7707083893.0", "7.707083893E9"); only the integer
// part is kept.
func Coerce(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.ContainsAny(raw, "eE") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			raw = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	whole, _, _ := strings.Cut(raw, ".")
	return whole
}

func cellRange(col string, firstRow, count int) ([]string, error) {
	colNum, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return nil, fmt.Errorf("invalid column %q: %w", col, err)
	}
	if firstRow < 1 || count < 0 {
		return nil, fmt.Errorf("invalid range: first row %d, count %d", firstRow, count)
	}

	cells := make([]string, count)
	for i := range cells {
		cell, err := excelize.CoordinatesToCellName(colNum, firstRow+i)
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}
	return cells, nil
}
