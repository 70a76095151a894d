// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dictgen CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the dictgen CLI.
var rootCmd = &cobra.Command{
	Use:   "dictgen",
	Short: "Compile a Markdown language reference into JavaScript dictionaries",
	Long: `dictgen reads a semi-structured Markdown language reference (by default
C_Dictionary.md), extracts its keyword, operator, and standard library
identifier entries, and writes them as JavaScript modules for the token
analyzer.

Use generate to produce the artifacts and catalog to keep a queryable
SQLite copy of the merged entries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags of the running command become viper keys so the config
		// file and DICTGEN_* variables can supply their values.
		return viper.BindPFlags(cmd.Flags())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dictgen.yaml or ~/.config/dictgen/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dictgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dictgen"))
		}
	}

	viper.SetEnvPrefix("DICTGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
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
