package cmd

import (
	"github.com/spf13/cobra"
)

var rescanCmd = &cobra.Command{
	Use:   "rescan",
	Short: "Re-read the library folder, migrating legacy metadata",
	Long: `rescan walks the library root, reconciles metadata records against the
files actually on disk, and upgrades any legacy records to the current
schema. Running it is optional; every command rescans on startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}

		files := 0
		for _, c := range tree.Categories {
			for _, s := range c.SubCategories {
				files += len(s.Entries)
			}
		}
		cmd.Printf("%d categories, %d files\n", len(tree.Categories), files)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rescanCmd)
}
