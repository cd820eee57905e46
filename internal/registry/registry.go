// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry fetches legal-entity extracts from the EGRUL registry
// (egrul.nalog.ru). One lookup is three requests: the search form yields a
// firm code, the search result yields a download token, and the download
// endpoint returns the PDF extract, which is saved under the PDF directory.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/inn-lookup/internal/httputil"
	"github.com/pdiddy/inn-lookup/pkg/types"
)

// Endpoints. Declared as vars so tests can substitute httptest servers.
var (
	searchURL       = "https://egrul.nalog.ru/"
	searchResultURL = "https://egrul.nalog.ru/search-result/"
	downloadURL     = "https://egrul.nalog.ru/vyp-download/"
)

// now is replaced in tests to pin the cache-busting nonce.
var now = time.Now

const (
	formContentType = "application/x-www-form-urlencoded; charset=UTF-8"
	pdfContentType  = "application/pdf"
)

// Client performs registry lookups over HTTP.
type Client struct {
	http *http.Client
	cfg  types.RegistryConfig
}

// NewClient returns a Client that uses hc for every request.
func NewClient(hc *http.Client, cfg types.RegistryConfig) *Client {
	return &Client{http: hc, cfg: cfg}
}

// Lookup runs search, resolve, fetch, and save for one identifier. It never
// returns an error: every failure is reported in the Lookup, tagged with the
// step that failed, so one bad identifier does not stop the batch.
func (c *Client) Lookup(ctx context.Context, inn string) types.Lookup {
	code, err := c.Search(ctx, inn)
	if err != nil {
		return types.Failed(inn, types.ErrSearch, err)
	}

	token, err := c.Resolve(ctx, code)
	if err != nil {
		return types.Failed(inn, types.ErrResolve, err)
	}

	resp, err := c.Fetch(ctx, token)
	if err != nil {
		return types.Failed(inn, types.ErrFetch, err)
	}
	defer resp.Body.Close()

	path, err := c.Save(resp)
	if err != nil {
		return types.Lookup{INN: inn, Err: err}
	}
	return types.Lookup{INN: inn, Path: path}
}

type searchResponse struct {
	T               string `json:"t"`
	CaptchaRequired bool   `json:"captchaRequired"`
}

// Search submits the search form for inn and returns the firm code.
func (c *Client) Search(ctx context.Context, inn string) (string, error) {
	form := url.Values{
		"vyp3CaptchaToken":          {c.cfg.CaptchaToken},
		"page":                      {""},
		"query":                     {inn},
		"region":                    {""},
		"PreventChromeAutocomplete": {""},
	}

	req, err := httputil.NewRequest(ctx, http.MethodPost, searchURL, strings.NewReader(form.Encode()), c.cfg.UserAgent)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", formContentType)

	var sr searchResponse
	if err := httputil.DoJSON(c.http, req, &sr); err != nil {
		return "", err
	}
	if sr.CaptchaRequired {
		return "", errors.New("registry requires a captcha")
	}
	if sr.T == "" {
		return "", errors.New("search response has no firm code")
	}
	return sr.T, nil
}

type searchResultResponse struct {
	Rows []struct {
		T string `json:"t"`
	} `json:"rows"`
}

// Resolve fetches the search result for a firm code and returns the
// download token of the first row.
func (c *Client) Resolve(ctx context.Context, code string) (string, error) {
	nonce := Nonce(now())
	q := url.Values{"r": {nonce}, "_": {nonce}}
	u := searchResultURL + url.PathEscape(code) + "?" + q.Encode()

	req, err := httputil.NewRequest(ctx, http.MethodGet, u, nil, c.cfg.UserAgent)
	if err != nil {
		return "", err
	}

	var sr searchResultResponse
	if err := httputil.DoJSON(c.http, req, &sr); err != nil {
		return "", err
	}
	if len(sr.Rows) == 0 {
		return "", errors.New("search result has no rows")
	}
	if sr.Rows[0].T == "" {
		return "", errors.New("search result row has no download token")
	}
	return sr.Rows[0].T, nil
}

// Fetch requests the extract for a download token. The caller closes the
// response body.
func (c *Client) Fetch(ctx context.Context, token string) (*http.Response, error) {
	req, err := httputil.NewRequest(ctx, http.MethodGet, downloadURL+url.PathEscape(token), nil, c.cfg.UserAgent)
	if err != nil {
		return nil, err
	}
	return httputil.Do(c.http, req)
}

// Save writes a PDF response under the PDF directory and returns its path.
// The filename comes from the Content-Disposition header. Nothing is
// written unless Content-Type is exactly application/pdf.
func (c *Client) Save(resp *http.Response) (string, error) {
	name, err := Filename(resp.Header.Get("Content-Disposition"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrNoFilename, err)
	}
	if ct := resp.Header.Get("Content-Type"); ct != pdfContentType {
		return "", fmt.Errorf("%w: content type %q", types.ErrNotPDF, ct)
	}

	if err := os.MkdirAll(c.cfg.PDFDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating directory %s: %w", types.ErrSave, c.cfg.PDFDir, err)
	}
	path := filepath.Join(c.cfg.PDFDir, name)
	if err := writeFile(path, resp.Body); err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrSave, err)
	}
	return path, nil
}

// Filename derives the local filename from a Content-Disposition value:
// the text after "filename=", cut at ".pdf", with ".pdf" appended.
func Filename(disposition string) (string, error) {
	if disposition == "" {
		return "", errors.New("header is missing")
	}
	_, raw, ok := strings.Cut(disposition, "filename=")
	if !ok {
		// Fall back to RFC 6266 parsing for filename*= forms.
		_, params, err := mime.ParseMediaType(disposition)
		if err != nil || params["filename"] == "" {
			return "", fmt.Errorf("no filename in %q", disposition)
		}
		raw = params["filename"]
	}
	raw, _, _ = strings.Cut(raw, ".pdf")
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	base := filepath.Base(raw)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no usable filename in %q", disposition)
	}
	return base + ".pdf", nil
}

// Nonce formats t as Unix milliseconds, the form the registry uses for its
// cache-busting query parameters.
func Nonce(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// writeFile copies r to path through a temporary file in the same directory.
func writeFile(path string, r io.Reader) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, r)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
