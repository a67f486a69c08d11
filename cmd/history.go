package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/history"
)

var (
	historyLimit int
	historyDays  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded prompts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent prompts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(historyLimit)
		if err != nil {
			return err
		}
		printRecords(cmd, records)
		return nil
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Find recorded prompts containing a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Search(args[0], historyLimit)
		if err != nil {
			return err
		}
		printRecords(cmd, records)
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete prompts older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := history.NewStore(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		days := historyDays
		if days <= 0 {
			days = cfg.History.RetentionDays
		}
		n, err := store.Prune(days)
		if err != nil {
			return err
		}
		cmd.Printf("pruned %d records older than %d days\n", n, days)
		return nil
	},
}

func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

func printRecords(cmd *cobra.Command, records []*history.Record) {
	if len(records) == 0 {
		cmd.Println("no records")
		return
	}
	for _, r := range records {
		cmd.Printf("%s  seed=%d\n  %s\n", r.CreatedAt.Format(time.DateTime), r.Seed, r.Prompt)
	}
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum records (default 20)")
	historySearchCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum records (default 50)")
	historyPruneCmd.Flags().IntVar(&historyDays, "days", 0, "Retention window in days (default from config)")
	historyCmd.AddCommand(historyListCmd, historySearchCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
