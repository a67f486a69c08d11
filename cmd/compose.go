package cmd

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/compose"
	"github.com/promptloom/loom/internal/history"
	"github.com/promptloom/loom/internal/logger"
)

var (
	composeSeed      int64
	composeSeparator string
	composeRandomize bool
	composeRecord    bool
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a prompt from the current selection state",
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
			rng = rand.New(rand.NewSource(composeSeed))
		}
		if composeRandomize {
			compose.Randomize(tree, rng)
		}

		separator := cfg.Compose.Separator
		if cmd.Flags().Changed("separator") {
			separator = composeSeparator
		}

		resolver := compose.NewFileResolver(compose.Mode(cfg.Compose.ContentMode), rng)
		composer := compose.New(resolver, separator, func(err error) {
			logger.Warn("compose: %v", err)
		})
		prompt := composer.Build(tree)
		fmt.Println(prompt)

		if composeRecord && prompt != "" {
			store, err := history.NewStore(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()
			if _, err := store.Add(prompt, composeSeed, separator); err != nil {
				return fmt.Errorf("record prompt: %w", err)
			}
		}
		return nil
	},
}

func init() {
	composeCmd.Flags().Int64Var(&composeSeed, "seed", 0, "Seed for reproducible line picks")
	composeCmd.Flags().StringVar(&composeSeparator, "separator", "", "Separator between prompt segments")
	composeCmd.Flags().BoolVar(&composeRandomize, "randomize", false, "Re-roll unlocked selections before composing")
	composeCmd.Flags().BoolVar(&composeRecord, "record", false, "Store the composed prompt in history")
	rootCmd.AddCommand(composeCmd)
}
