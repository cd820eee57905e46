// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds the INN of the person authorized to act for a legal
// entity without a power of attorney in the tables of an EGRUL extract.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/inn-lookup/internal/tabula"
	"github.com/pdiddy/inn-lookup/pkg/types"
)

const (
	// AuthorizedHeader opens the section about the person who may act
	// without a power of attorney.
	AuthorizedHeader = "Сведения о лице, имеющем право без доверенности действовать от имени"

	// INNLabel is the label cell of the INN row.
	INNLabel = "ИНН"
)

// Tables at these positions (0-based, end exclusive) carry the
// registration details on the first pages of an extract.
const (
	firstTable = 1
	lastTable  = 4
)

// Fallback controls the INN scan when AuthorizedHeader is missing.
type Fallback int

const (
	// FallbackFromStart scans the whole table for an INN row. The match may
	// belong to an unrelated section.
	FallbackFromStart Fallback = iota

	// FallbackNone reports the INN as not found.
	FallbackNone
)

// Combine concatenates the non-empty tables at positions 1 through 3 into a
// single table, each row normalized to types.TableColumns cells.
func Combine(tables []types.Table) types.Table {
	var out types.Table
	for i := firstTable; i < lastTable && i < len(tables); i++ {
		t := tables[i]
		if t.Empty() {
			continue
		}
		for _, row := range t.Rows {
			out.Rows = append(out.Rows, normalize(row))
		}
	}
	return out
}

func normalize(row types.Row) types.Row {
	out := make(types.Row, types.TableColumns)
	copy(out, row)
	return out
}

// HeaderRow returns the index of the first row whose first cell contains
// AuthorizedHeader, or len(t.Rows) when there is none.
func HeaderRow(t types.Table) int {
	return indexFrom(t, 0, func(r types.Row) bool {
		return strings.Contains(r[0], AuthorizedHeader)
	})
}

// INNRow returns the index of the first row at or after from whose second
// cell is exactly INNLabel, or len(t.Rows) when there is none.
func INNRow(t types.Table, from int) int {
	return indexFrom(t, from, func(r types.Row) bool {
		return r[1] == INNLabel
	})
}

func indexFrom(t types.Table, from int, match func(types.Row) bool) int {
	for i := from; i < len(t.Rows); i++ {
		if match(normalize(t.Rows[i])) {
			return i
		}
	}
	return len(t.Rows)
}

// FindAuthorizedINN returns the third cell of the first INN row after the
// authorized-person header, or types.NotFoundSentinel.
func FindAuthorizedINN(t types.Table, fb Fallback) string {
	start := HeaderRow(t)
	if start == len(t.Rows) {
		if fb == FallbackNone {
			return types.NotFoundSentinel
		}
		start = 0
	}

	i := INNRow(t, start)
	if i == len(t.Rows) {
		return types.NotFoundSentinel
	}
	return t.Cell(i, 2)
}

// Extractor turns a saved extract into the authorized person's INN.
type Extractor struct {
	reader   tabula.Reader
	fallback Fallback
	validate func(path string) (int, error)
}

// NewExtractor returns an Extractor reading tables with r.
func NewExtractor(r tabula.Reader, fb Fallback) *Extractor {
	return &Extractor{reader: r, fallback: fb, validate: pageCount}
}

// Extract checks that path is a readable PDF, reads its tables, and returns
// the authorized person's INN or types.NotFoundSentinel. Errors from the
// table reader are returned wrapped, so jre.ErrNotFound stays detectable.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	pages, err := e.validate(path)
	if err != nil {
		return "", fmt.Errorf("validating %s: %w", path, err)
	}
	if pages == 0 {
		return "", fmt.Errorf("validating %s: document has no pages", path)
	}

	tables, err := e.reader.ReadTables(ctx, path)
	if err != nil {
		return "", err
	}
	return FindAuthorizedINN(Combine(tables), e.fallback), nil
}

func pageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return api.PageCount(f, pdfConf)
}

// pdfConf keeps pdfcpu away from its on-disk config directory and accepts
// the minor syntax slips tabula tolerates.
var pdfConf = newPDFConfig()

func newPDFConfig() *model.Configuration {
	model.ConfigPath = "disable"
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
