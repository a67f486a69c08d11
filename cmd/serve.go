package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/logger"
	"github.com/promptloom/loom/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library over MCP stdio",
	Long: `serve exposes the library to MCP clients on stdin/stdout. Tools cover
composing, randomizing, tag search, related-tag suggestions, tree
inspection and node toggles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}

		logger.Info("serving MCP over stdio, library %s", cfg.Library.Root)
		return mcpserver.New(cfg, tree).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
