package cmd

import (
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/compose"
)

var randomizeSeed int64

var randomizeCmd = &cobra.Command{
	Use:   "randomize",
	Short: "Re-roll every unlocked single-selection choice",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}

		var rng *rand.Rand
		if cmd.Flags().Changed("seed") {
			rng = rand.New(rand.NewSource(randomizeSeed))
		}
		compose.Randomize(tree, rng)
		printTree(cmd, tree)
		return nil
	},
}

func init() {
	randomizeCmd.Flags().Int64Var(&randomizeSeed, "seed", 0, "Seed for reproducible picks")
	rootCmd.AddCommand(randomizeCmd)
}
