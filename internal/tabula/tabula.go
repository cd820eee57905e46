// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabula detects tables in PDF files by running tabula-java in
// lattice mode, where ruling lines delimit the cells.
package tabula

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/inn-lookup/internal/jre"
	"github.com/pdiddy/inn-lookup/pkg/types"
)

// Reader returns the tables found on every page of a PDF, in page order.
type Reader interface {
	ReadTables(ctx context.Context, pdfPath string) ([]types.Table, error)
}

// JarReader runs the tabula-java jar on a Java runtime injected at
// construction time.
type JarReader struct {
	runtime jre.Runtime
	jar     string
}

// NewJarReader returns a Reader for the tabula jar at jar. It verifies the
// jar exists before returning.
func NewJarReader(rt jre.Runtime, jar string) (*JarReader, error) {
	if jar == "" {
		return nil, fmt.Errorf("tabula jar path is not configured")
	}
	if _, err := os.Stat(jar); err != nil {
		return nil, fmt.Errorf("tabula jar not available: %w", err)
	}
	return &JarReader{runtime: rt, jar: jar}, nil
}

// ReadTables extracts all tables from pdfPath.
func (r *JarReader) ReadTables(ctx context.Context, pdfPath string) ([]types.Table, error) {
	args := []string{"--lattice", "--pages", "all", "--format", "JSON", pdfPath}

	var out bytes.Buffer
	if err := r.runtime.RunJar(ctx, r.jar, args, &out); err != nil {
		return nil, fmt.Errorf("reading tables from %s: %w", pdfPath, err)
	}
	tables, err := Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("reading tables from %s: %w", pdfPath, err)
	}
	return tables, nil
}

// tabula-java JSON output structures.
type jsonTable struct {
	ExtractionMethod string       `json:"extraction_method"`
	PageNumber       int          `json:"page_number"`
	Data             [][]jsonCell `json:"data"`
}

type jsonCell struct {
	Text string `json:"text"`
}

// Decode parses tabula-java JSON output. The first row of every table is
// its header row and is left out of Rows, so a table with only a header
// comes back empty.
func Decode(r io.Reader) ([]types.Table, error) {
	var raw []jsonTable
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing tabula output: %w", err)
	}

	tables := make([]types.Table, 0, len(raw))
	for _, jt := range raw {
		t := types.Table{Page: jt.PageNumber}
		if len(jt.Data) > 1 {
			t.Rows = make([]types.Row, 0, len(jt.Data)-1)
			for _, cells := range jt.Data[1:] {
				row := make(types.Row, len(cells))
				for i, c := range cells {
					row[i] = c.Text
				}
				t.Rows = append(t.Rows, row)
			}
		}
		tables = append(tables, t)
	}
	return tables, nil
}
