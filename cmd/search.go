package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/config"
	"github.com/promptloom/loom/internal/library"
	"github.com/promptloom/loom/internal/logger"
	"github.com/promptloom/loom/internal/tagindex"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <tag>...",
	Short: "Search library files by tag",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}

		idx := buildIndex(tree)
		matches := idx.Search(args, searchWeights(cfg))

		limit := searchLimit
		if limit <= 0 {
			limit = cfg.Search.MaxResults
		}
		if limit > 0 && len(matches) > limit {
			matches = matches[:limit]
		}
		if len(matches) == 0 {
			cmd.Println("no matches")
			return nil
		}
		for _, m := range matches {
			cmd.Printf("%6.2f  %s  %s\n", m.Score, m.Name, m.Path)
		}
		return nil
	},
}

func buildIndex(tree *library.Tree) *tagindex.Index {
	return tagindex.Rebuild(tree.Files(), tagindex.ReadFile, func(err error) {
		logger.Warn("index: %v", err)
	})
}

func searchWeights(cfg *config.Config) tagindex.Weights {
	return tagindex.Weights{
		Name:    cfg.Search.NameWeight,
		Path:    cfg.Search.PathWeight,
		Content: cfg.Search.ContentWeight,
	}
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results (default from config)")
	rootCmd.AddCommand(searchCmd)
}
