// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the space-restructure CLI, which
// flattens exported wiki spaces into an import-ready Markdown layout.
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

// rootCmd is the base command for the space-restructure CLI.
var rootCmd = &cobra.Command{
	Use:   "space-restructure",
	Short: "Flatten exported wiki spaces for flat Markdown import",
	Long: `space-restructure takes a space exported as a nested tree of Markdown
pages with per-page attachment folders and produces a flat layout the
target tool can import: pages/ with hierarchy encoded into file names,
attachments/ consolidated into one folder, and every relative link
rewritten to stay valid.

Run "restructure" for the full pipeline or "plan" for a dry run that
prints the computed rename mapping without touching the filesystem.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./space-restructure.yaml or ~/.config/space-restructure/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("space-restructure")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "space-restructure"))
		}
	}

	viper.SetEnvPrefix("SPACE_RESTRUCTURE")
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
