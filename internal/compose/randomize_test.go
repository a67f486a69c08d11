package compose

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/promptloom/loom/internal/library"
)

// hairFixture builds Hair/{Short,Long} with two entries each, all enabled,
// both levels in single-selection mode.
func hairFixture(t *testing.T) *library.Tree {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Hair", "Short", "bob.txt"), "bob\n")
	writeFile(t, filepath.Join(root, "Hair", "Short", "pixie.txt"), "pixie\n")
	writeFile(t, filepath.Join(root, "Hair", "Long", "braid.txt"), "braid\n")
	writeFile(t, filepath.Join(root, "Hair", "Long", "waves.txt"), "waves\n")

	tree := buildTree(t, root)
	c := tree.Category("Hair")
	tree.SetCategoryEnabled(c, true)
	tree.SetUseAllSubCategories(c, false)
	for _, s := range c.SubCategories {
		tree.SetSubCategoryEnabled(s, true)
		tree.SetUseAllFiles(s, false)
	}
	return tree
}

func TestRandomizePicksEnabledChildren(t *testing.T) {
	tree := hairFixture(t)
	Randomize(tree, rand.New(rand.NewSource(7)))

	c := tree.Category("Hair")
	if c.Selected() == nil {
		t.Fatal("category should have a selected subcategory")
	}
	for _, s := range c.SubCategories {
		if s.Selected() == nil {
			t.Errorf("subcategory %s should have a selected entry", s.Name)
		}
		if !s.Selected().Enabled {
			t.Errorf("subcategory %s selected a disabled entry", s.Name)
		}
	}
}

func TestRandomizeRespectsLocks(t *testing.T) {
	tree := hairFixture(t)
	c := tree.Category("Hair")
	short := c.SubCategory("Short")
	if err := tree.SelectSubCategory(c, "Short"); err != nil {
		t.Fatalf("SelectSubCategory: %v", err)
	}
	if err := tree.SelectEntry(short, "bob"); err != nil {
		t.Fatalf("SelectEntry: %v", err)
	}
	tree.SetCategoryLocked(c, true)
	tree.SetSubCategoryLocked(short, true)

	// Drive many rounds; locked selections must never move.
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		Randomize(tree, rng)
	}
	if c.SelectedSubCategory != "Short" {
		t.Errorf("locked category selection moved to %q", c.SelectedSubCategory)
	}
	if short.SelectedEntry != "bob" {
		t.Errorf("locked subcategory selection moved to %q", short.SelectedEntry)
	}
}

func TestRandomizeLockedCategoryStillRollsSubCategories(t *testing.T) {
	tree := hairFixture(t)
	c := tree.Category("Hair")
	long := c.SubCategory("Long")
	tree.SetCategoryLocked(c, true)

	// Disable one entry so the pick is forced.
	tree.SetEntryEnabled(long, long.Entry("waves"), false)
	Randomize(tree, rand.New(rand.NewSource(11)))

	if long.SelectedEntry != "braid" {
		t.Errorf("unlocked subcategory under a locked category should roll, got %q", long.SelectedEntry)
	}
}

func TestRandomizeAllDisabledClearsSelection(t *testing.T) {
	tree := hairFixture(t)
	c := tree.Category("Hair")
	if err := tree.SelectSubCategory(c, "Short"); err != nil {
		t.Fatalf("SelectSubCategory: %v", err)
	}
	for _, s := range c.SubCategories {
		tree.SetSubCategoryEnabled(s, false)
	}

	Randomize(tree, rand.New(rand.NewSource(5)))
	if c.SelectedSubCategory != "" {
		t.Errorf("selection should clear with no enabled subcategories, got %q", c.SelectedSubCategory)
	}
}

func TestRandomizeSkipsUseAllLevels(t *testing.T) {
	tree := hairFixture(t)
	c := tree.Category("Hair")
	short := c.SubCategory("Short")
	tree.SetUseAllSubCategories(c, true)
	tree.SetUseAllFiles(short, true)
	if err := tree.SelectSubCategory(c, "Long"); err != nil {
		t.Fatalf("SelectSubCategory: %v", err)
	}
	if err := tree.SelectEntry(short, "pixie"); err != nil {
		t.Fatalf("SelectEntry: %v", err)
	}

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		Randomize(tree, rng)
	}
	if c.SelectedSubCategory != "Long" {
		t.Errorf("use-all category selection moved to %q", c.SelectedSubCategory)
	}
	if short.SelectedEntry != "pixie" {
		t.Errorf("use-all subcategory selection moved to %q", short.SelectedEntry)
	}
}

func TestRandomizeNeverTouchesEnabledFlags(t *testing.T) {
	tree := hairFixture(t)
	c := tree.Category("Hair")
	long := c.SubCategory("Long")
	tree.SetEntryEnabled(long, long.Entry("waves"), false)
	tree.SetSubCategoryEnabled(long, false)

	Randomize(tree, rand.New(rand.NewSource(2)))

	if long.Enabled {
		t.Error("randomize must not re-enable a subcategory")
	}
	if long.Entry("waves").Enabled {
		t.Error("randomize must not re-enable an entry")
	}
	if !long.Entry("braid").Enabled {
		t.Error("randomize must not disable an entry")
	}
}

func TestRandomizeDeterministicWithSeed(t *testing.T) {
	pick := func() (string, string, string) {
		tree := hairFixture(t)
		Randomize(tree, rand.New(rand.NewSource(42)))
		c := tree.Category("Hair")
		return c.SelectedSubCategory,
			c.SubCategory("Short").SelectedEntry,
			c.SubCategory("Long").SelectedEntry
	}

	a1, b1, c1 := pick()
	a2, b2, c2 := pick()
	if a1 != a2 || b1 != b2 || c1 != c2 {
		t.Errorf("same seed gave different picks: (%s,%s,%s) vs (%s,%s,%s)", a1, b1, c1, a2, b2, c2)
	}
}
