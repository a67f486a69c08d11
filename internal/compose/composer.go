package compose

import (
	"sort"
	"strings"

	"github.com/promptloom/loom/internal/library"
)

// Composer assembles the prompt string from the tree's current selection
// state. It never mutates the tree.
type Composer struct {
	resolver  ContentResolver
	separator string
	report    library.Reporter
}

// New creates a Composer. An empty separator defaults to ", ".
func New(resolver ContentResolver, separator string, report library.Reporter) *Composer {
	if separator == "" {
		separator = ", "
	}
	if report == nil {
		report = library.Nop
	}
	return &Composer{resolver: resolver, separator: separator, report: report}
}

// Build walks enabled categories in ascending order and concatenates their
// contributions. Prefix/suffix pairs wrap only non-empty contributions, and
// segments join with the configured separator — skipped nodes never leave a
// dangling separator behind. Per-entry read failures are reported and
// skipped.
func (c *Composer) Build(tree *library.Tree) string {
	var segments []string
	for _, cat := range sortedCategories(tree) {
		if !cat.Enabled {
			continue
		}
		part := c.buildCategory(cat)
		if part == "" {
			continue
		}
		segments = append(segments, cat.Prefix+part+cat.Suffix)
	}
	return strings.Join(segments, c.separator)
}

func (c *Composer) buildCategory(cat *library.Category) string {
	var segments []string
	for _, sub := range c.visitSubCategories(cat) {
		part := c.buildSubCategory(sub)
		if part == "" {
			continue
		}
		segments = append(segments, sub.Prefix+part+sub.Suffix)
	}
	return strings.Join(segments, c.separator)
}

func (c *Composer) visitSubCategories(cat *library.Category) []*library.SubCategory {
	if cat.UseAllSubCategories {
		var out []*library.SubCategory
		for _, s := range sortedSubCategories(cat) {
			if s.Enabled {
				out = append(out, s)
			}
		}
		return out
	}
	if s := cat.Selected(); s != nil && s.Enabled {
		return []*library.SubCategory{s}
	}
	return nil
}

func (c *Composer) buildSubCategory(sub *library.SubCategory) string {
	var parts []string
	for _, e := range c.visitEntries(sub) {
		content, err := c.resolver.Resolve(e.FilePath)
		if err != nil {
			c.report(err)
			continue
		}
		if content == "" {
			continue
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, c.separator)
}

func (c *Composer) visitEntries(sub *library.SubCategory) []*library.Entry {
	if sub.UseAllFiles {
		var out []*library.Entry
		for _, e := range sortedEntries(sub) {
			if e.Enabled {
				out = append(out, e)
			}
		}
		return out
	}
	if e := sub.Selected(); e != nil && e.Enabled {
		return []*library.Entry{e}
	}
	return nil
}

// Order values need not be contiguous; ties keep insertion order, hence the
// stable sorts over copies.

func sortedCategories(t *library.Tree) []*library.Category {
	out := append([]*library.Category(nil), t.Categories...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func sortedSubCategories(c *library.Category) []*library.SubCategory {
	out := append([]*library.SubCategory(nil), c.SubCategories...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func sortedEntries(s *library.SubCategory) []*library.Entry {
	out := append([]*library.Entry(nil), s.Entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
