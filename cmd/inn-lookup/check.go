package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/inn-lookup/internal/jre"
	"github.com/pdiddy/inn-lookup/internal/sheet"
	"github.com/pdiddy/inn-lookup/internal/tabula"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the Java runtime, the tabula jar, and the workbook",
	Long: `Check confirms that everything run needs is in place without contacting
the registry: a working Java runtime, the tabula-java jar, and, when a
workbook is configured, that its input range can be read.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	out := cmd.OutOrStdout()

	rt, err := jre.Detect(cfg.Extraction.JavaBin)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "java:     %s\n", rt.Name())

	if _, err := tabula.NewJarReader(rt, cfg.Extraction.TabulaJar); err != nil {
		return err
	}
	fmt.Fprintf(out, "tabula:   %s\n", cfg.Extraction.TabulaJar)

	if cfg.Sheet.Workbook == "" {
		fmt.Fprintln(out, "workbook: not configured")
		return nil
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
	fmt.Fprintf(out, "workbook: %s (sheet %q, %d identifiers)\n", sh.Path(), sh.Name(), len(ids))
	return nil
}
