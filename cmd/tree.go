package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/library"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the library hierarchy and its selection state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}
		printTree(cmd, tree)
		return nil
	},
}

func printTree(cmd *cobra.Command, t *library.Tree) {
	for _, c := range t.Categories {
		cmd.Printf("%s%s\n", c.Name, categoryState(c))
		for _, s := range c.SubCategories {
			cmd.Printf("  %s%s\n", s.Name, subCategoryState(s))
			for _, e := range s.Entries {
				mark := " "
				if e.Enabled {
					mark = "x"
				}
				cmd.Printf("    [%s] %s\n", mark, e.Name)
			}
		}
	}
}

func categoryState(c *library.Category) string {
	out := flagString(c.Enabled, c.Locked)
	if !c.UseAllSubCategories {
		out += " ->" + c.SelectedSubCategory
	}
	return out
}

func subCategoryState(s *library.SubCategory) string {
	out := flagString(s.Enabled, s.Locked)
	if !s.UseAllFiles {
		out += " ->" + s.SelectedEntry
	}
	return out
}

func flagString(enabled, locked bool) string {
	out := ""
	if enabled {
		out += " [on]"
	} else {
		out += " [off]"
	}
	if locked {
		out += " [locked]"
	}
	return out
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
