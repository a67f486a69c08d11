package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/config"
	"github.com/promptloom/loom/internal/debug"
	"github.com/promptloom/loom/internal/library"
	"github.com/promptloom/loom/internal/logger"
)

var (
	logLevel    string
	libraryRoot string
)

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "loom wildcard prompt library",
	Long: `loom manages a folder of wildcard prompt lists and composes prompts
from them.

The library lives on disk as Category/SubCategory/*.txt; loom keeps
per-folder selection state in JSON records beside the files, indexes
every file by tag, and assembles the final prompt from whatever is
currently enabled and selected.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		if debug.Enabled {
			level = logger.TraceLevel
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringVar(&libraryRoot, "library", "",
		"Library root folder (overrides config and LOOM_LIBRARY)")
}

// loadConfig loads the config file and applies the --library override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if libraryRoot != "" {
		cfg.Library.Root = libraryRoot
	}
	if cfg.Logging.File != "" {
		if err := logger.SetFile(cfg.Logging.File); err != nil {
			logger.Warn("open log file: %v", err)
		}
	}
	return cfg, nil
}

// loadTree scans the library root and builds the tree. Malformed metadata
// records are logged and replaced by defaults; they never abort the command.
func loadTree(cfg *config.Config) (*library.Tree, error) {
	snap, err := library.Scan(cfg.Library.Root)
	if err != nil {
		return nil, err
	}
	store := library.NewFSStore()
	tree := library.Build(snap, store, func(err error) {
		logger.Warn("library: %v", err)
	})
	return tree, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
