// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the inn-lookup CLI. It reads taxpayer
// identifiers from a workbook, fetches each entity's EGRUL extract, and
// writes the INN of the person authorized to act without a power of
// attorney back into the workbook.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/inn-lookup/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the inn-lookup CLI.
var rootCmd = &cobra.Command{
	Use:   "inn-lookup",
	Short: "Fill a workbook with authorized-person INNs from the EGRUL registry",
	Long: `inn-lookup reads legal-entity INNs from a fixed range of a workbook
(G4:G13 by default), downloads each entity's extract from egrul.nalog.ru,
finds the INN of the person authorized to act without a power of attorney,
and writes the results to a second range (K4:K13 by default).

PDF tables are read with tabula-java, so a Java runtime is required.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./inn-lookup.yaml or ~/.config/inn-lookup/inn-lookup.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("inn-lookup")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "inn-lookup"))
		}
	}

	viper.SetEnvPrefix("INN_LOOKUP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
