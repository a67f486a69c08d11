package library

import "strings"

// needsMigration reports whether a loaded record predates the entries schema.
func needsMigration(meta *SubCategoryMeta) bool {
	return meta.SchemaVersion < SchemaVersionEntries && len(meta.Entries) == 0
}

// migrateSubCategory upgrades a legacy single-selection record to the entries
// schema. Pure: the input is not modified. One EntryMeta is synthesized per
// on-disk file, enabled seeded from the legacy selectedTxtFile when the
// record was in single-selection mode, order seeded from enumeration order.
// Running it on an already-migrated record returns an identical copy, so the
// upgrade is idempotent.
func migrateSubCategory(meta *SubCategoryMeta, files []FileSnapshot) *SubCategoryMeta {
	out := *meta
	if !needsMigration(meta) {
		return &out
	}

	legacy := stemOf(meta.SelectedTxtFile)
	for i, f := range files {
		enabled := true
		if !meta.UseAllFiles {
			enabled = f.Name == legacy
		}
		out.Entries = append(out.Entries, EntryMeta{
			Name:    f.Name,
			Enabled: enabled,
			Order:   i,
		})
	}

	if !meta.UseAllFiles && out.SelectedEntry == "" {
		out.SelectedEntry = legacy
	}
	out.SchemaVersion = SchemaVersionEntries
	out.SelectedTxtFile = ""
	return &out
}

func stemOf(fileName string) string {
	if strings.HasSuffix(strings.ToLower(fileName), ".txt") {
		return fileName[:len(fileName)-4]
	}
	return fileName
}
