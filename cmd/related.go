package cmd

import (
	"github.com/spf13/cobra"
)

var relatedLimit int

var relatedCmd = &cobra.Command{
	Use:   "related <tag>",
	Short: "List tags that co-occur with the given tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}

		suggestions := buildIndex(tree).SuggestRelatedTags(args[0])
		if relatedLimit > 0 && len(suggestions) > relatedLimit {
			suggestions = suggestions[:relatedLimit]
		}
		if len(suggestions) == 0 {
			cmd.Println("no related tags")
			return nil
		}
		for _, s := range suggestions {
			cmd.Printf("%4d  %s\n", s.FileCount, s.Name)
		}
		return nil
	},
}

func init() {
	relatedCmd.Flags().IntVar(&relatedLimit, "limit", 0, "Maximum suggestions (0 = all)")
	rootCmd.AddCommand(relatedCmd)
}
