package library

// Entry is one wildcard text file inside a subcategory.
type Entry struct {
	Name     string // file stem, unique within the subcategory
	FilePath string // absolute path of the backing .txt file
	Enabled  bool
	Order    int
}

// SubCategory is a folder of entries. When UseAllFiles is false only the
// entry named by SelectedEntry contributes; an empty or dangling name means
// no contribution.
type SubCategory struct {
	Name          string
	Path          string // folder path; for the loose subcategory, the category folder
	Prefix        string
	Suffix        string
	Enabled       bool
	Locked        bool
	UseAllFiles   bool
	SelectedEntry string
	Order         int
	Entries       []*Entry
}

// Category is a folder of subcategories with the same dual-mode semantics one
// level up.
type Category struct {
	Name                string
	Path                string
	Prefix              string
	Suffix              string
	Enabled             bool
	Locked              bool
	UseAllSubCategories bool
	SelectedSubCategory string
	Order               int
	SubCategories       []*SubCategory
}

// Loose reports whether this subcategory holds the category's folderless
// .txt files.
func (s *SubCategory) Loose() bool {
	return s.Name == LooseName
}

// Entry returns the entry with the given name, or nil.
func (s *SubCategory) Entry(name string) *Entry {
	for _, e := range s.Entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Selected resolves SelectedEntry against the entry list. A dangling name
// (e.g. after a rescan removed the file) resolves to nil.
func (s *SubCategory) Selected() *Entry {
	if s.SelectedEntry == "" {
		return nil
	}
	return s.Entry(s.SelectedEntry)
}

// SubCategory returns the subcategory with the given name, or nil.
func (c *Category) SubCategory(name string) *SubCategory {
	for _, s := range c.SubCategories {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Selected resolves SelectedSubCategory against the subcategory list.
func (c *Category) Selected() *SubCategory {
	if c.SelectedSubCategory == "" {
		return nil
	}
	return c.SubCategory(c.SelectedSubCategory)
}

func (c *Category) meta() *CategoryMeta {
	return &CategoryMeta{
		SchemaVersion:       SchemaVersionEntries,
		Name:                c.Name,
		Prefix:              c.Prefix,
		Suffix:              c.Suffix,
		Enabled:             c.Enabled,
		Locked:              c.Locked,
		UseAllSubCategories: c.UseAllSubCategories,
		SelectedSubCategory: c.SelectedSubCategory,
		Order:               c.Order,
	}
}

func (s *SubCategory) meta() *SubCategoryMeta {
	m := &SubCategoryMeta{
		SchemaVersion: SchemaVersionEntries,
		Name:          s.Name,
		Prefix:        s.Prefix,
		Suffix:        s.Suffix,
		Enabled:       s.Enabled,
		Locked:        s.Locked,
		UseAllFiles:   s.UseAllFiles,
		SelectedEntry: s.SelectedEntry,
		Order:         s.Order,
	}
	for _, e := range s.Entries {
		m.Entries = append(m.Entries, EntryMeta{Name: e.Name, Enabled: e.Enabled, Order: e.Order})
	}
	return m
}

func (c *Category) applyMeta(m *CategoryMeta) {
	c.Prefix = m.Prefix
	c.Suffix = m.Suffix
	c.Enabled = m.Enabled
	c.Locked = m.Locked
	c.UseAllSubCategories = m.UseAllSubCategories
	c.SelectedSubCategory = m.SelectedSubCategory
	c.Order = m.Order
}

func (s *SubCategory) applyMeta(m *SubCategoryMeta) {
	s.Prefix = m.Prefix
	s.Suffix = m.Suffix
	s.Enabled = m.Enabled
	s.Locked = m.Locked
	s.UseAllFiles = m.UseAllFiles
	s.SelectedEntry = m.SelectedEntry
	s.Order = m.Order

	for _, em := range m.Entries {
		if e := s.Entry(em.Name); e != nil {
			e.Enabled = em.Enabled
			e.Order = em.Order
		}
	}
}
