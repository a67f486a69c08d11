package library

// SchemaVersionEntries marks records written since entries became first-class.
// Records with a lower (or absent) version still carry the single
// selectedTxtFile field and are migrated on load.
const SchemaVersionEntries = 2

// LooseName is the reserved subcategory name for .txt files sitting directly
// inside a category folder, outside any subfolder.
const LooseName = "/"

// EntryMeta is the persisted state of one wildcard file.
type EntryMeta struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Order   int    `json:"order"`
}

// SubCategoryMeta is the persisted state of a subcategory folder.
type SubCategoryMeta struct {
	SchemaVersion int         `json:"schemaVersion,omitempty"`
	Name          string      `json:"name"`
	Prefix        string      `json:"prefix,omitempty"`
	Suffix        string      `json:"suffix,omitempty"`
	Enabled       bool        `json:"enabled"`
	Locked        bool        `json:"locked,omitempty"`
	UseAllFiles   bool        `json:"useAllFiles"`
	SelectedEntry string      `json:"selectedEntry,omitempty"`
	Order         int         `json:"order"`
	Entries       []EntryMeta `json:"entries,omitempty"`

	// SelectedTxtFile is the legacy single-selection field. It is read for
	// migration and never written back.
	SelectedTxtFile string `json:"selectedTxtFile,omitempty"`
}

// CategoryMeta is the persisted state of a category folder.
type CategoryMeta struct {
	SchemaVersion       int    `json:"schemaVersion,omitempty"`
	Name                string `json:"name"`
	Prefix              string `json:"prefix,omitempty"`
	Suffix              string `json:"suffix,omitempty"`
	Enabled             bool   `json:"enabled"`
	Locked              bool   `json:"locked,omitempty"`
	UseAllSubCategories bool   `json:"useAllSubCategories"`
	SelectedSubCategory string `json:"selectedSubCategory,omitempty"`
	Order               int    `json:"order"`
}

func defaultCategoryMeta(name string) *CategoryMeta {
	return &CategoryMeta{
		SchemaVersion:       SchemaVersionEntries,
		Name:                name,
		Enabled:             false,
		UseAllSubCategories: true,
	}
}

func defaultSubCategoryMeta(name string) *SubCategoryMeta {
	return &SubCategoryMeta{
		SchemaVersion: SchemaVersionEntries,
		Name:          name,
		Enabled:       false,
		UseAllFiles:   true,
	}
}
