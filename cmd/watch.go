package cmd

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/history"
	"github.com/promptloom/loom/internal/library"
	"github.com/promptloom/loom/internal/logger"
	"github.com/promptloom/loom/internal/scheduler"
	"github.com/promptloom/loom/internal/watcher"
)

func pruneHistory(path string, days int) {
	store, err := history.NewStore(path)
	if err != nil {
		logger.Warn("open history: %v", err)
		return
	}
	defer store.Close()
	n, err := store.Prune(days)
	if err != nil {
		logger.Warn("prune history: %v", err)
		return
	}
	if n > 0 {
		logger.Info("pruned %d history records", n)
	}
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the library folder and keep metadata reconciled",
	Long: `watch keeps a long-running process over the library: folder changes
trigger a rescan after a debounce window, and an optional cron schedule
(watch.rescan_cron in config) forces periodic full rescans as a fallback
for edits the OS watcher misses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}

		// The watcher and the scheduler both fire on their own goroutines;
		// the tree itself does no locking.
		var mu sync.Mutex
		rescan := func() {
			mu.Lock()
			defer mu.Unlock()
			snap, err := library.Scan(cfg.Library.Root)
			if err != nil {
				logger.Warn("rescan: %v", err)
				return
			}
			tree.Rescan(snap)
			logger.Info("library rescanned")
		}

		debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
		w, err := watcher.New(cfg.Library.Root, debounce, rescan)
		if err != nil {
			return err
		}
		w.Start()
		defer w.Stop()

		sched := scheduler.New()
		if cfg.Watch.RescanCron != "" {
			if err := sched.Add("rescan", cfg.Watch.RescanCron, rescan); err != nil {
				return err
			}
		}
		if cfg.History.RetentionDays > 0 {
			if err := sched.Add("history prune", "0 3 * * *", func() {
				pruneHistory(cfg.History.Path, cfg.History.RetentionDays)
			}); err != nil {
				return err
			}
		}
		sched.Start()
		defer sched.Stop()

		logger.Info("watching %s", cfg.Library.Root)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
