package library

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// libraryFixture lays out a small two-category library with a loose file.
func libraryFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Clothing", "Shirts", "red_shirt.txt"), "red shirt\n")
	writeFile(t, filepath.Join(root, "Clothing", "Shirts", "blue_shirt.txt"), "blue shirt\n")
	writeFile(t, filepath.Join(root, "Clothing", "notes.txt"), "fabric notes\n")
	writeFile(t, filepath.Join(root, "Hair", "Short", "bob.txt"), "bob cut\n")
	return root
}

func buildFixture(t *testing.T, root string, report Reporter) *Tree {
	t.Helper()
	snap, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return Build(snap, NewFSStore(), report)
}

func TestScanLayout(t *testing.T) {
	root := libraryFixture(t)
	writeFile(t, filepath.Join(root, "Clothing", "readme.md"), "not a wildcard file")
	writeFile(t, filepath.Join(root, "Clothing", ".hidden.txt"), "skipped")

	snap, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(snap.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(snap.Categories))
	}

	clothing := snap.Categories[0]
	if clothing.Name != "Clothing" {
		t.Fatalf("expected Clothing first, got %s", clothing.Name)
	}
	if len(clothing.SubCategories) != 2 {
		t.Fatalf("expected Shirts plus loose group, got %d subcategories", len(clothing.SubCategories))
	}

	loose := clothing.SubCategories[1]
	if loose.Name != LooseName {
		t.Fatalf("expected loose group named %q, got %q", LooseName, loose.Name)
	}
	if len(loose.Files) != 1 || loose.Files[0].Name != "notes" {
		t.Fatalf("expected only notes in loose group, got %+v", loose.Files)
	}

	shirts := clothing.SubCategories[0]
	if len(shirts.Files) != 2 {
		t.Fatalf("expected 2 shirt files, got %d", len(shirts.Files))
	}
	if shirts.Files[0].Name != "blue_shirt" || shirts.Files[1].Name != "red_shirt" {
		t.Fatalf("expected name-sorted stems, got %+v", shirts.Files)
	}
}

func TestScanNoLooseGroupWithoutLooseFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Hair", "Short", "bob.txt"), "bob cut\n")

	snap, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(snap.Categories[0].SubCategories) != 1 {
		t.Fatalf("expected only Short, got %+v", snap.Categories[0].SubCategories)
	}
}

func TestBuildDefaults(t *testing.T) {
	tree := buildFixture(t, libraryFixture(t), nil)

	c := tree.Category("Clothing")
	if c == nil {
		t.Fatal("Clothing missing")
	}
	if c.Enabled {
		t.Error("fresh category should start disabled")
	}
	if !c.UseAllSubCategories {
		t.Error("fresh category should use all subcategories")
	}

	s := c.SubCategory("Shirts")
	if s == nil {
		t.Fatal("Shirts missing")
	}
	if s.Enabled || !s.UseAllFiles {
		t.Errorf("fresh subcategory state wrong: enabled=%v useAll=%v", s.Enabled, s.UseAllFiles)
	}
	for i, e := range s.Entries {
		if !e.Enabled {
			t.Errorf("fresh entry %s should be enabled", e.Name)
		}
		if e.Order != i {
			t.Errorf("entry %s order = %d, want %d", e.Name, e.Order, i)
		}
	}
}

func TestMutationsPersistAcrossRebuild(t *testing.T) {
	root := libraryFixture(t)
	tree := buildFixture(t, root, nil)

	c := tree.Category("Clothing")
	s := c.SubCategory("Shirts")
	tree.SetCategoryEnabled(c, true)
	tree.SetCategoryWrap(c, "(", ")")
	tree.SetSubCategoryEnabled(s, true)
	tree.SetSubCategoryLocked(s, true)
	tree.SetUseAllFiles(s, false)
	if err := tree.SelectEntry(s, "red_shirt"); err != nil {
		t.Fatalf("SelectEntry: %v", err)
	}
	tree.SetEntryEnabled(s, s.Entry("blue_shirt"), false)

	reloaded := buildFixture(t, root, nil)
	c2 := reloaded.Category("Clothing")
	if !c2.Enabled || c2.Prefix != "(" || c2.Suffix != ")" {
		t.Errorf("category state not restored: %+v", c2)
	}
	s2 := c2.SubCategory("Shirts")
	if !s2.Enabled || !s2.Locked || s2.UseAllFiles || s2.SelectedEntry != "red_shirt" {
		t.Errorf("subcategory state not restored: %+v", s2)
	}
	if s2.Entry("blue_shirt").Enabled {
		t.Error("blue_shirt should stay disabled after rebuild")
	}
	if !s2.Entry("red_shirt").Enabled {
		t.Error("red_shirt should stay enabled after rebuild")
	}
}

func TestLenientRecordParsing(t *testing.T) {
	root := libraryFixture(t)
	record := `{
	// written by the legacy tool
	"NAME": "Shirts",
	/* selection block */
	"Enabled": true,
	"useAllFiles": false,
	"selectedEntry": "blue_shirt",
	"schemaVersion": 2,
	"entries": [
		{"name": "red_shirt", "enabled": false, "order": 1},
		{"name": "blue_shirt", "enabled": true, "order": 0},
	],
}`
	writeFile(t, filepath.Join(root, "Clothing", "Shirts", ".subcategory.json"), record)

	var reported []error
	tree := buildFixture(t, root, func(err error) { reported = append(reported, err) })
	if len(reported) != 0 {
		t.Fatalf("lenient record should parse cleanly, got %v", reported)
	}

	s := tree.Category("Clothing").SubCategory("Shirts")
	if !s.Enabled || s.UseAllFiles || s.SelectedEntry != "blue_shirt" {
		t.Errorf("record not applied: %+v", s)
	}
	if s.Entry("red_shirt").Enabled || s.Entry("red_shirt").Order != 1 {
		t.Errorf("red_shirt entry record not applied: %+v", s.Entry("red_shirt"))
	}
}

func TestMalformedRecordFallsBackToDefaults(t *testing.T) {
	root := libraryFixture(t)
	writeFile(t, filepath.Join(root, "Clothing", "Shirts", ".subcategory.json"), "{ not json at all")

	var reported []error
	tree := buildFixture(t, root, func(err error) { reported = append(reported, err) })

	if len(reported) != 1 {
		t.Fatalf("expected one reported error, got %v", reported)
	}
	if !errors.Is(reported[0], ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", reported[0])
	}

	// The node loads with defaults; the rest of the library is unaffected.
	s := tree.Category("Clothing").SubCategory("Shirts")
	if s.Enabled || !s.UseAllFiles {
		t.Errorf("node should fall back to defaults: %+v", s)
	}
	if tree.Category("Hair") == nil {
		t.Error("sibling category should still load")
	}
}

func TestLegacyRecordMigration(t *testing.T) {
	root := libraryFixture(t)
	legacy := `{
	"name": "Shirts",
	"enabled": true,
	"useAllFiles": false,
	"selectedTxtFile": "red_shirt.txt"
}`
	recordPath := filepath.Join(root, "Clothing", "Shirts", ".subcategory.json")
	writeFile(t, recordPath, legacy)

	tree := buildFixture(t, root, nil)
	s := tree.Category("Clothing").SubCategory("Shirts")

	if s.SelectedEntry != "red_shirt" {
		t.Errorf("SelectedEntry = %q, want red_shirt", s.SelectedEntry)
	}
	if !s.Entry("red_shirt").Enabled {
		t.Error("legacy selection should migrate to an enabled entry")
	}
	if s.Entry("blue_shirt").Enabled {
		t.Error("unselected legacy entry should migrate disabled")
	}

	// The migrated record is written back immediately.
	data, err := os.ReadFile(recordPath)
	if err != nil {
		t.Fatalf("read migrated record: %v", err)
	}
	var meta SubCategoryMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("parse migrated record: %v", err)
	}
	if meta.SchemaVersion != SchemaVersionEntries {
		t.Errorf("schemaVersion = %d, want %d", meta.SchemaVersion, SchemaVersionEntries)
	}
	if meta.SelectedTxtFile != "" {
		t.Error("legacy field should never be written back")
	}
	if len(meta.Entries) != 2 {
		t.Errorf("expected 2 migrated entries, got %+v", meta.Entries)
	}

	// Loading again is a no-op.
	reloaded := buildFixture(t, root, nil)
	s2 := reloaded.Category("Clothing").SubCategory("Shirts")
	if s2.SelectedEntry != "red_shirt" || s2.Entry("blue_shirt").Enabled {
		t.Errorf("second load changed migrated state: %+v", s2)
	}
}

func TestMigrationUseAllKeepsEverythingEnabled(t *testing.T) {
	files := []FileSnapshot{{Name: "red_shirt"}, {Name: "blue_shirt"}}
	meta := &SubCategoryMeta{Name: "Shirts", UseAllFiles: true, SelectedTxtFile: "red_shirt.txt"}

	out := migrateSubCategory(meta, files)
	for _, e := range out.Entries {
		if !e.Enabled {
			t.Errorf("entry %s should migrate enabled in use-all mode", e.Name)
		}
	}
	if out.SelectedEntry != "" {
		t.Errorf("use-all migration should not seed a selection, got %q", out.SelectedEntry)
	}
	if meta.SchemaVersion != 0 || len(meta.Entries) != 0 {
		t.Error("migration must not modify its input")
	}
}

func TestRescanPreservesState(t *testing.T) {
	root := libraryFixture(t)
	tree := buildFixture(t, root, nil)

	c := tree.Category("Clothing")
	s := c.SubCategory("Shirts")
	tree.SetSubCategoryEnabled(s, true)
	tree.SetUseAllFiles(s, false)
	if err := tree.SelectEntry(s, "red_shirt"); err != nil {
		t.Fatalf("SelectEntry: %v", err)
	}

	writeFile(t, filepath.Join(root, "Clothing", "Shirts", "green_shirt.txt"), "green shirt\n")
	snap, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	tree.Rescan(snap)

	s2 := tree.Category("Clothing").SubCategory("Shirts")
	if s2 != s {
		t.Fatal("surviving subcategory should keep its identity")
	}
	if s2.SelectedEntry != "red_shirt" {
		t.Errorf("selection lost on rescan: %q", s2.SelectedEntry)
	}
	green := s2.Entry("green_shirt")
	if green == nil || !green.Enabled {
		t.Fatalf("new file should appear as an enabled entry, got %+v", green)
	}
}

func TestRescanDropsRemovedNodesButKeepsDanglingSelection(t *testing.T) {
	root := libraryFixture(t)
	tree := buildFixture(t, root, nil)

	s := tree.Category("Clothing").SubCategory("Shirts")
	tree.SetUseAllFiles(s, false)
	if err := tree.SelectEntry(s, "red_shirt"); err != nil {
		t.Fatalf("SelectEntry: %v", err)
	}

	if err := os.Remove(filepath.Join(root, "Clothing", "Shirts", "red_shirt.txt")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	snap, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	tree.Rescan(snap)

	if s.Entry("red_shirt") != nil {
		t.Error("removed file should drop its entry")
	}
	// The name sticks around; it just resolves to nothing.
	if s.SelectedEntry != "red_shirt" {
		t.Errorf("SelectedEntry = %q, want dangling red_shirt", s.SelectedEntry)
	}
	if s.Selected() != nil {
		t.Error("dangling selection should resolve to nil")
	}
}

func TestSelectValidation(t *testing.T) {
	tree := buildFixture(t, libraryFixture(t), nil)
	c := tree.Category("Clothing")
	s := c.SubCategory("Shirts")

	if err := tree.SelectEntry(s, "no_such_shirt"); err == nil {
		t.Error("unknown entry name should be rejected")
	}
	if err := tree.SelectSubCategory(c, "NoSuchSub"); err == nil {
		t.Error("unknown subcategory name should be rejected")
	}
	if err := tree.SelectEntry(s, "red_shirt"); err != nil {
		t.Fatalf("SelectEntry: %v", err)
	}
	if err := tree.SelectEntry(s, ""); err != nil {
		t.Fatalf("clearing selection: %v", err)
	}
	if s.SelectedEntry != "" {
		t.Errorf("selection should clear, got %q", s.SelectedEntry)
	}
}

func TestResolve(t *testing.T) {
	tree := buildFixture(t, libraryFixture(t), nil)

	c, s, e, err := tree.Resolve([]string{"Clothing", "Shirts", "red_shirt"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Name != "Clothing" || s.Name != "Shirts" || e.Name != "red_shirt" {
		t.Errorf("wrong nodes: %s %s %s", c.Name, s.Name, e.Name)
	}

	if _, _, _, err := tree.Resolve([]string{"Clothing", "Pants"}); err == nil {
		t.Error("missing subcategory should fail")
	}
	if _, _, _, err := tree.Resolve(nil); err == nil {
		t.Error("empty path should fail")
	}

	// The loose group resolves under its reserved name.
	_, loose, _, err := tree.Resolve([]string{"Clothing", LooseName})
	if err != nil {
		t.Fatalf("Resolve loose: %v", err)
	}
	if !loose.Loose() || loose.Entry("notes") == nil {
		t.Errorf("loose group wrong: %+v", loose)
	}
}

func TestDescendantStateSticksThroughAncestorToggles(t *testing.T) {
	root := libraryFixture(t)
	tree := buildFixture(t, root, nil)

	c := tree.Category("Clothing")
	s := c.SubCategory("Shirts")
	tree.SetCategoryEnabled(c, true)
	tree.SetSubCategoryEnabled(s, true)
	tree.SetUseAllFiles(s, false)
	if err := tree.SelectEntry(s, "blue_shirt"); err != nil {
		t.Fatalf("SelectEntry: %v", err)
	}

	tree.SetCategoryEnabled(c, false)
	tree.SetCategoryEnabled(c, true)

	if !s.Enabled || s.UseAllFiles || s.SelectedEntry != "blue_shirt" {
		t.Errorf("descendant state should survive ancestor toggles: %+v", s)
	}

	// And across a reload.
	s2 := buildFixture(t, root, nil).Category("Clothing").SubCategory("Shirts")
	if s2.SelectedEntry != "blue_shirt" {
		t.Errorf("selection lost across reload: %q", s2.SelectedEntry)
	}
}

func TestOnChangeFires(t *testing.T) {
	tree := buildFixture(t, libraryFixture(t), nil)

	fired := 0
	tree.OnChange(func() { fired++ })
	tree.SetCategoryEnabled(tree.Category("Hair"), true)
	if fired != 1 {
		t.Errorf("expected one change notification, got %d", fired)
	}
}
