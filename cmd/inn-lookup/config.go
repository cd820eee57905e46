// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/inn-lookup/internal/secrets"
	"github.com/pdiddy/inn-lookup/pkg/types"
)

const (
	defaultInputColumn  = "G"
	defaultOutputColumn = "K"
	defaultFirstRow     = 4
	defaultCount        = 10
	defaultPDFDir       = "temp_pdf"
	defaultDelay        = 500 * time.Millisecond
	defaultTimeout      = 60 * time.Second
	defaultUserAgent    = "inn-lookup/0.1"
	defaultJavaBin      = "java"
)

// Config keys. Flags use the same names with dashes.
const (
	keyWorkbook     = "workbook"
	keySheet        = "sheet"
	keyInputColumn  = "input_column"
	keyOutputColumn = "output_column"
	keyFirstRow     = "first_row"
	keyCount        = "count"
	keyPDFDir       = "pdf_dir"
	keyDelay        = "delay"
	keyTimeout      = "timeout"
	keyUserAgent    = "user_agent"
	keyJavaBin      = "java_bin"
	keyTabulaJar    = "tabula_jar"
	keyStrictHeader = "strict_header"
)

func init() {
	viper.SetDefault(keyInputColumn, defaultInputColumn)
	viper.SetDefault(keyOutputColumn, defaultOutputColumn)
	viper.SetDefault(keyFirstRow, defaultFirstRow)
	viper.SetDefault(keyCount, defaultCount)
	viper.SetDefault(keyPDFDir, defaultPDFDir)
	viper.SetDefault(keyDelay, defaultDelay)
	viper.SetDefault(keyTimeout, defaultTimeout)
	viper.SetDefault(keyUserAgent, defaultUserAgent)
	viper.SetDefault(keyJavaBin, defaultJavaBin)

	fs := rootCmd.PersistentFlags()
	fs.String(flagName(keyWorkbook), "", "workbook (.xlsx/.xlsm) to read identifiers from and write results to")
	fs.String(flagName(keySheet), "", "worksheet name (default: the workbook's active sheet)")
	fs.String(flagName(keyInputColumn), defaultInputColumn, "column holding the identifiers")
	fs.String(flagName(keyOutputColumn), defaultOutputColumn, "column receiving the results")
	fs.Int(flagName(keyFirstRow), defaultFirstRow, "first row of both ranges")
	fs.Int(flagName(keyCount), defaultCount, "number of rows in both ranges")
	fs.String(flagName(keyPDFDir), defaultPDFDir, "directory for downloaded extracts")
	fs.Duration(flagName(keyDelay), defaultDelay, "pause after each identifier")
	fs.Duration(flagName(keyTimeout), defaultTimeout, "HTTP request timeout")
	fs.String(flagName(keyUserAgent), defaultUserAgent, "User-Agent header for registry requests")
	fs.String(flagName(keyJavaBin), defaultJavaBin, "java executable")
	fs.String(flagName(keyTabulaJar), "", "path to tabula-java jar with dependencies")
	fs.Bool(flagName(keyStrictHeader), false, "report not found instead of scanning the whole extract when the authorized-person section is missing")

	bindFlags(fs,
		keyWorkbook, keySheet, keyInputColumn, keyOutputColumn, keyFirstRow, keyCount,
		keyPDFDir, keyDelay, keyTimeout, keyUserAgent, keyJavaBin, keyTabulaJar, keyStrictHeader,
	)

	rootCmd.AddCommand(configCmd)
}

// bindFlags binds each named flag of fs to the config key of the same name.
func bindFlags(fs *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(flagName(key))); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flagName(key), err))
		}
	}
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// loadConfig assembles the run configuration from defaults, config file,
// environment, and flags, in increasing order of precedence.
func loadConfig() types.LookupConfig {
	return types.LookupConfig{
		Sheet: types.SheetConfig{
			Workbook:     viper.GetString(keyWorkbook),
			Sheet:        viper.GetString(keySheet),
			InputColumn:  viper.GetString(keyInputColumn),
			OutputColumn: viper.GetString(keyOutputColumn),
			FirstRow:     viper.GetInt(keyFirstRow),
			Count:        viper.GetInt(keyCount),
		},
		Registry: types.RegistryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration(keyTimeout),
				UserAgent: viper.GetString(keyUserAgent),
			},
			PDFDir:       viper.GetString(keyPDFDir),
			CaptchaToken: loadedSecrets.Get(secrets.KeyCaptchaToken),
		},
		Extraction: types.ExtractionConfig{
			JavaBin:      viper.GetString(keyJavaBin),
			TabulaJar:    viper.GetString(keyTabulaJar),
			StrictHeader: viper.GetBool(keyStrictHeader),
		},
		Delay: viper.GetDuration(keyDelay),
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(loadConfig())
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
