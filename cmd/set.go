package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptloom/loom/internal/library"
)

var (
	setEnabled bool
	setLocked  bool
	setUseAll  bool
	setSelect  string
	setOrder   int
	setPrefix  string
	setSuffix  string
)

var setCmd = &cobra.Command{
	Use:   "set <Category[/SubCategory[/entry]]>",
	Short: "Change a node's metadata",
	Long: `set updates selection state for one node, addressed by slash-separated
path. Only flags you pass change; the matching metadata record is written
back beside the node's folder.

Examples:
  loom set Clothing --enabled=true
  loom set Clothing/Shirts --use-all=false --select red_shirt
  loom set Clothing/Shirts/blue_shirt --enabled=false
  loom set Hair --locked=true --prefix "(" --suffix ")"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tree, err := loadTree(cfg)
		if err != nil {
			return err
		}

		cat, sub, entry, err := tree.Resolve(strings.Split(args[0], "/"))
		if err != nil {
			return err
		}

		switch {
		case entry != nil:
			return applyEntryFlags(cmd, tree, sub, entry)
		case sub != nil:
			return applySubCategoryFlags(cmd, tree, sub)
		default:
			return applyCategoryFlags(cmd, tree, cat)
		}
	},
}

func applyCategoryFlags(cmd *cobra.Command, t *library.Tree, c *library.Category) error {
	if cmd.Flags().Changed("enabled") {
		t.SetCategoryEnabled(c, setEnabled)
	}
	if cmd.Flags().Changed("locked") {
		t.SetCategoryLocked(c, setLocked)
	}
	if cmd.Flags().Changed("order") {
		t.SetCategoryOrder(c, setOrder)
	}
	if cmd.Flags().Changed("prefix") || cmd.Flags().Changed("suffix") {
		prefix, suffix := c.Prefix, c.Suffix
		if cmd.Flags().Changed("prefix") {
			prefix = setPrefix
		}
		if cmd.Flags().Changed("suffix") {
			suffix = setSuffix
		}
		t.SetCategoryWrap(c, prefix, suffix)
	}
	if cmd.Flags().Changed("use-all") {
		t.SetUseAllSubCategories(c, setUseAll)
	}
	if cmd.Flags().Changed("select") {
		return t.SelectSubCategory(c, setSelect)
	}
	return nil
}

func applySubCategoryFlags(cmd *cobra.Command, t *library.Tree, s *library.SubCategory) error {
	if cmd.Flags().Changed("enabled") {
		t.SetSubCategoryEnabled(s, setEnabled)
	}
	if cmd.Flags().Changed("locked") {
		t.SetSubCategoryLocked(s, setLocked)
	}
	if cmd.Flags().Changed("order") {
		t.SetSubCategoryOrder(s, setOrder)
	}
	if cmd.Flags().Changed("prefix") || cmd.Flags().Changed("suffix") {
		prefix, suffix := s.Prefix, s.Suffix
		if cmd.Flags().Changed("prefix") {
			prefix = setPrefix
		}
		if cmd.Flags().Changed("suffix") {
			suffix = setSuffix
		}
		t.SetSubCategoryWrap(s, prefix, suffix)
	}
	if cmd.Flags().Changed("use-all") {
		t.SetUseAllFiles(s, setUseAll)
	}
	if cmd.Flags().Changed("select") {
		return t.SelectEntry(s, setSelect)
	}
	return nil
}

func applyEntryFlags(cmd *cobra.Command, t *library.Tree, s *library.SubCategory, e *library.Entry) error {
	if cmd.Flags().Changed("locked") || cmd.Flags().Changed("use-all") ||
		cmd.Flags().Changed("select") || cmd.Flags().Changed("prefix") ||
		cmd.Flags().Changed("suffix") {
		return errors.New("entries support only --enabled and --order")
	}
	if cmd.Flags().Changed("enabled") {
		t.SetEntryEnabled(s, e, setEnabled)
	}
	if cmd.Flags().Changed("order") {
		t.SetEntryOrder(s, e, setOrder)
	}
	return nil
}

func init() {
	setCmd.Flags().BoolVar(&setEnabled, "enabled", false, "Enable or disable the node")
	setCmd.Flags().BoolVar(&setLocked, "locked", false, "Lock the node's selection against randomization")
	setCmd.Flags().BoolVar(&setUseAll, "use-all", false, "Use all enabled children instead of a single selection")
	setCmd.Flags().StringVar(&setSelect, "select", "", "Select a single child by name (empty clears)")
	setCmd.Flags().IntVar(&setOrder, "order", 0, "Sort order among siblings")
	setCmd.Flags().StringVar(&setPrefix, "prefix", "", "Text prepended to the node's contribution")
	setCmd.Flags().StringVar(&setSuffix, "suffix", "", "Text appended to the node's contribution")
	rootCmd.AddCommand(setCmd)
}
