// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/inn-lookup/internal/batch"
	"github.com/pdiddy/inn-lookup/internal/extract"
	"github.com/pdiddy/inn-lookup/internal/jre"
	"github.com/pdiddy/inn-lookup/internal/registry"
	"github.com/pdiddy/inn-lookup/internal/sheet"
	"github.com/pdiddy/inn-lookup/internal/tabula"
	"github.com/pdiddy/inn-lookup/pkg/types"
)

// Operator messages for a missing Java runtime.
const (
	msgJavaMissing = "Ошибка: для работы программы необходимо установить интерпретатор Java"
	msgPressEnter  = "Нажмите Enter, чтобы выйти из программы"
)

var runCmd = &cobra.Command{
	Use:   "run [workbook]",
	Short: "Look up every identifier in the workbook and write the results",
	Long: `Run reads identifiers from the input range of the workbook, fetches each
entity's EGRUL extract, and writes one result per identifier to the output
range. Identifiers whose extract cannot be fetched get "` + types.ErrorSentinel + `";
extracts without the INN get "` + types.NotFoundSentinel + `".

The workbook argument overrides the workbook config key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	runCmd.Flags().Bool("no-wait", false, "exit without waiting for Enter when Java is missing")

	rootCmd.AddCommand(runCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if len(args) == 1 {
		cfg.Sheet.Workbook = args[0]
	}
	if cfg.Sheet.Workbook == "" {
		return fmt.Errorf("provide a workbook as an argument or set %q in the config", keyWorkbook)
	}
	noWait, _ := cmd.Flags().GetBool("no-wait")

	rt, err := jre.Detect(cfg.Extraction.JavaBin)
	if err != nil {
		return javaMissing(cmd, err, noWait)
	}
	reader, err := tabula.NewJarReader(rt, cfg.Extraction.TabulaJar)
	if err != nil {
		return fmt.Errorf("%w (set %q or --%s)", err, keyTabulaJar, flagName(keyTabulaJar))
	}

	sh, err := sheet.Open(cfg.Sheet.Workbook, cfg.Sheet.Sheet)
	if err != nil {
		return err
	}
	defer sh.Close()

	ids, err := sh.ReadIdentifiers(cfg.Sheet.InputColumn, cfg.Sheet.FirstRow, cfg.Sheet.Count)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "read %d identifiers from %s!%s%d\n", len(ids), sh.Name(), cfg.Sheet.InputColumn, cfg.Sheet.FirstRow)

	client := registry.NewClient(&http.Client{Timeout: cfg.Registry.Timeout}, cfg.Registry)
	fallback := extract.FallbackFromStart
	if cfg.Extraction.StrictHeader {
		fallback = extract.FallbackNone
	}
	extractor := extract.NewExtractor(reader, fallback)

	result, err := batch.Run(cmd.Context(), ids, client, extractor, cfg.Delay, out)
	if errors.Is(err, jre.ErrNotFound) {
		return javaMissing(cmd, err, noWait)
	}
	if err != nil {
		return err
	}

	if err := sh.WriteResults(cfg.Sheet.OutputColumn, cfg.Sheet.FirstRow, result.Values); err != nil {
		return err
	}
	if err := sh.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d results to %s!%s%d\n", len(result.Values), sh.Name(), cfg.Sheet.OutputColumn, cfg.Sheet.FirstRow)
	return nil
}

// javaMissing tells the operator to install Java and, unless noWait is
// set, blocks until Enter is pressed. The workbook is left unchanged.
func javaMissing(cmd *cobra.Command, cause error, noWait bool) error {
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, msgJavaMissing)
	if !noWait {
		fmt.Fprintln(w, msgPressEnter)
		waitForEnter(cmd.InOrStdin())
	}
	return cause
}

func waitForEnter(r io.Reader) {
	bufio.NewReader(r).ReadString('\n')
}
