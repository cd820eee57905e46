// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs the lookup pipeline over a list of identifiers:
// download each extract, find the authorized person's INN, and collect one
// result string per identifier in input order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/inn-lookup/internal/jre"
	"github.com/pdiddy/inn-lookup/pkg/types"
)

// Lookuper fetches the registry extract for one identifier.
type Lookuper interface {
	Lookup(ctx context.Context, inn string) types.Lookup
}

// Extractor reads the authorized person's INN from a saved extract.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Result holds the outcome of a batch run.
type Result struct {
	// Values has one entry per input identifier, in input order.
	Values []string

	Found    int
	NotFound int
	Failed   int
}

// Total returns the number of identifiers processed.
func (r Result) Total() int {
	return r.Found + r.NotFound + r.Failed
}

// HasFailures reports whether any identifier ended with the error sentinel.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run processes ids one at a time and pauses for delay after each one,
// whether it succeeded or not. A failed lookup or extraction puts
// types.ErrorSentinel in that identifier's slot and the batch continues.
//
// Run stops early only when the Java runtime is missing or ctx is done; the
// returned error then wraps jre.ErrNotFound or the context error, and
// Result.Values is nil.
func Run(ctx context.Context, ids []string, l Lookuper, e Extractor, delay time.Duration, w io.Writer) (Result, error) {
	var result Result
	values := make([]string, 0, len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		v, err := process(ctx, id, l, e, w)
		if errors.Is(err, jre.ErrNotFound) {
			return Result{}, err
		}

		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:    %s (%v)\n", id, err)
			v = types.ErrorSentinel
			result.Failed++
		case v == types.NotFoundSentinel:
			fmt.Fprintf(w, "not found: %s\n", id)
			result.NotFound++
		default:
			fmt.Fprintf(w, "found:     %s -> %s\n", id, v)
			result.Found++
		}
		values = append(values, v)

		if delay > 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	result.Values = values
	fmt.Fprintf(w, "\nBatch summary: %d found, %d not found, %d failed (total: %d)\n",
		result.Found, result.NotFound, result.Failed, result.Total())
	return result, nil
}

func process(ctx context.Context, id string, l Lookuper, e Extractor, w io.Writer) (string, error) {
	lk := l.Lookup(ctx, id)
	if !lk.OK() {
		if lk.Err == nil {
			return "", errors.New("lookup returned no file")
		}
		return "", lk.Err
	}

	fmt.Fprintf(w, "downloaded: %s (%s)\n", id, lk.Path)
	return e.Extract(ctx, lk.Path)
}
