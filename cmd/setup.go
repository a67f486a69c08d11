package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a default config file and create the library folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if libraryRoot != "" {
			cfg.Library.Root = libraryRoot
		}
		if err := os.MkdirAll(cfg.Library.Root, 0755); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		cmd.Printf("config written to %s\n", config.ConfigPath())
		cmd.Printf("library root %s\n", cfg.Library.Root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
