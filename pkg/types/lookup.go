// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the inn-lookup pipeline:
// run configuration, tagged lookup results, and extracted tables.
package types

import (
	"errors"
	"fmt"
)

// Strings written into the result column. They are part of the
// spreadsheet template contract.
const (
	// ErrorSentinel marks an identifier whose extract could not be obtained.
	ErrorSentinel = "Ошибка получения ИНН"

	// NotFoundSentinel marks an extract without an INN for the authorized person.
	NotFoundSentinel = "ИНН не найден в файле pdf"
)

// Lookup failure kinds. Lookup.Err wraps exactly one of these.
var (
	ErrSearch     = errors.New("search request failed")
	ErrResolve    = errors.New("search result request failed")
	ErrFetch      = errors.New("extract download failed")
	ErrNoFilename = errors.New("no filename in content-disposition")
	ErrNotPDF     = errors.New("response is not a PDF")
	ErrSave       = errors.New("saving extract failed")
)

// Lookup is the outcome of fetching the registry extract for one identifier.
// Exactly one of Path and Err is set.
type Lookup struct {
	// INN is the identifier that was looked up.
	INN string `json:"inn" yaml:"inn"`

	// Path is the local file the extract was saved to.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Err describes why the extract is unavailable.
	Err error `json:"-" yaml:"-"`
}

// OK reports whether the extract was saved.
func (l Lookup) OK() bool {
	return l.Err == nil && l.Path != ""
}

// Failed builds a failed Lookup whose error wraps kind.
func Failed(inn string, kind, cause error) Lookup {
	if cause == nil {
		return Lookup{INN: inn, Err: kind}
	}
	return Lookup{INN: inn, Err: fmt.Errorf("%w: %w", kind, cause)}
}
