// Package cmd implements the CLI commands for BlockPipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core/config"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

// Persistent flag variables.
var (
	flagConfig   string
	flagLogLevel string
	flagStoreDir string
	flagBlobDir  string
)

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "blockpipe",
	Short: "BlockPipe: structured article blocks to HTML and back",
	Long: `BlockPipe converts article content between the block model used by the
editor and the tagged HTML stored for publishing. It also normalizes legacy
plain-text bodies, enhances call-to-action sections, imports Markdown and
exports articles as Markdown, JSON or PDF.

Usage:
  blockpipe render blocks.json
  blockpipe parse article.html
  blockpipe export article.html --pdf`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { log.Flush() },
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags())
}

func bindGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	fs.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&flagStoreDir, "store-dir", "", "Article store directory")
	fs.StringVar(&flagBlobDir, "blob-dir", "", "Upload directory")
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyOverrides(cmd.Flags(), loaded)
	cfg = loaded

	if err := log.Set(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	log.Get().Debug("config loaded",
		zap.String("config", flagConfig),
		zap.String("store_dir", cfg.Store.Dir),
		zap.String("blob_dir", cfg.Blobs.Dir),
	)
	return nil
}

// applyOverrides copies explicitly set flags over config values.
func applyOverrides(fs *pflag.FlagSet, c *config.Config) {
	if fs.Changed("log-level") {
		c.Log.Level = flagLogLevel
	}
	if fs.Changed("store-dir") {
		c.Store.Dir = flagStoreDir
	}
	if fs.Changed("blob-dir") {
		c.Blobs.Dir = flagBlobDir
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
