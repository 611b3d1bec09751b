// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-prep CLI, which turns a
// scientific-paper PDF into cleaned text and a best-effort section map.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paper-prep CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-prep",
	Short: "Preprocess scientific-paper PDFs into clean text and sections",
	Long: `paper-prep extracts the text layer of a scientific-paper PDF, normalizes
it (citation markers removed, whitespace folded), and optionally splits it
into named sections such as Introduction and Methods.

Each document is processed independently. Run one invocation per PDF.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-prep.yaml or ~/.config/paper-prep/paper-prep.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-prep")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-prep"))
		}
	}

	viper.SetEnvPrefix("PAPER_PREP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
