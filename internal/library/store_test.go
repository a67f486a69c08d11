package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLooseRecordNeverCollidesWithCategoryRecord(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore()

	catMeta := defaultCategoryMeta("Clothing")
	catMeta.Enabled = true
	if err := store.SaveCategory(dir, catMeta); err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}

	looseMeta := defaultSubCategoryMeta(LooseName)
	looseMeta.Locked = true
	if err := store.SaveSubCategory(dir, true, looseMeta); err != nil {
		t.Fatalf("SaveSubCategory: %v", err)
	}

	// Both records live in the same folder under distinct reserved names.
	gotCat, err := store.LoadCategory(dir)
	if err != nil {
		t.Fatalf("LoadCategory: %v", err)
	}
	if !gotCat.Enabled || gotCat.Name != "Clothing" {
		t.Errorf("category record clobbered: %+v", gotCat)
	}
	gotLoose, err := store.LoadSubCategory(dir, true)
	if err != nil {
		t.Fatalf("LoadSubCategory: %v", err)
	}
	if !gotLoose.Locked || gotLoose.Name != LooseName {
		t.Errorf("loose record clobbered: %+v", gotLoose)
	}
}

func TestLoadMissingRecordReturnsNil(t *testing.T) {
	store := NewFSStore()
	meta, err := store.LoadCategory(t.TempDir())
	if err != nil {
		t.Fatalf("LoadCategory: %v", err)
	}
	if meta != nil {
		t.Errorf("expected nil for missing record, got %+v", meta)
	}
}

func TestSaveStripsLegacyField(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore()

	meta := defaultSubCategoryMeta("Shirts")
	meta.SelectedTxtFile = "red_shirt.txt"
	if err := store.SaveSubCategory(dir, false, meta); err != nil {
		t.Fatalf("SaveSubCategory: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, subCategoryMetaFile))
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if string(data) == "" {
		t.Fatal("empty record")
	}
	got, err := store.LoadSubCategory(dir, false)
	if err != nil {
		t.Fatalf("LoadSubCategory: %v", err)
	}
	if got.SelectedTxtFile != "" {
		t.Errorf("legacy field written back: %q", got.SelectedTxtFile)
	}
	// The caller's struct is untouched.
	if meta.SelectedTxtFile != "red_shirt.txt" {
		t.Error("save must not mutate its argument")
	}
}

func TestNormalizeJSONLeavesStringsAlone(t *testing.T) {
	in := `{"name": "a//b /*not a comment*/ ,", "enabled": true,}`
	out := string(normalizeJSON([]byte(in)))
	want := `{"name": "a//b /*not a comment*/ ,", "enabled": true}`
	if out != want {
		t.Errorf("normalizeJSON = %q, want %q", out, want)
	}
}
