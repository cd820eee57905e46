// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SheetConfig locates the input and output ranges in the workbook.
// The defaults (G4:G13 in, K4:K13 out) are a contract with the
// spreadsheet template and must not drift.
type SheetConfig struct {
	// Workbook is the path to the .xlsx/.xlsm file.
	Workbook string `json:"workbook" yaml:"workbook"`

	// Sheet is the worksheet name. Empty selects the workbook's active sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`

	// InputColumn holds the identifiers (default "G").
	InputColumn string `json:"input_column" yaml:"input_column"`

	// OutputColumn receives the results (default "K").
	OutputColumn string `json:"output_column" yaml:"output_column"`

	// FirstRow is the 1-based row of the first identifier (default 4).
	FirstRow int `json:"first_row" yaml:"first_row"`

	// Count is the number of rows in both ranges (default 10).
	Count int `json:"count" yaml:"count"`
}

// RegistryConfig holds settings for the EGRUL lookup client.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline"`

	// PDFDir is the directory downloaded extracts are saved to (default "temp_pdf").
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// CaptchaToken is sent in the vyp3CaptchaToken form field. Usually empty.
	CaptchaToken string `json:"-" yaml:"-"`
}

// ExtractionConfig holds settings for PDF table extraction.
type ExtractionConfig struct {
	// JavaBin is the Java executable name or path (default "java").
	JavaBin string `json:"java_bin" yaml:"java_bin"`

	// TabulaJar is the path to the tabula-java jar with dependencies.
	TabulaJar string `json:"tabula_jar" yaml:"tabula_jar"`

	// StrictHeader disables the whole-table fallback scan when the
	// authorized-person section header is missing.
	StrictHeader bool `json:"strict_header" yaml:"strict_header"`
}

// LookupConfig groups all settings for one run.
type LookupConfig struct {
	Sheet      SheetConfig      `json:"sheet" yaml:"sheet"`
	Registry   RegistryConfig   `json:"registry" yaml:"registry"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`

	// Delay is the pause after every identifier (default 500ms).
	Delay time.Duration `json:"delay" yaml:"delay"`
}
