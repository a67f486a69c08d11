package library

import (
	"errors"
	"fmt"
)

// Tree is the in-memory library hierarchy. It is the runtime source of
// truth; metadata records are its serialization. All mutations must come
// from a single goroutine — the tree does no internal locking.
type Tree struct {
	Root       string
	Categories []*Category

	store    MetadataStore
	report   Reporter
	onChange func()
}

// Build constructs a tree from a snapshot, applying persisted metadata per
// node. A record that fails to parse is reported and replaced by schema
// defaults for that node only; the rest of the library still loads.
func Build(snap *Snapshot, store MetadataStore, report Reporter) *Tree {
	if report == nil {
		report = Nop
	}
	t := &Tree{Root: snap.Root, store: store, report: report}
	t.Rescan(snap)
	return t
}

// OnChange registers a callback fired after every persisted mutation and
// rescan. Consumers use it as the recompute signal.
func (t *Tree) OnChange(fn func()) {
	t.onChange = fn
}

func (t *Tree) notify() {
	if t.onChange != nil {
		t.onChange()
	}
}

// Category returns the category with the given name, or nil.
func (t *Tree) Category(name string) *Category {
	for _, c := range t.Categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Rescan reconciles the tree against a fresh snapshot. Nodes whose backing
// folder or file vanished are removed; new ones are added with defaults (or
// their persisted record); nodes that still exist keep their identity and
// state, so selections survive a rescan untouched.
func (t *Tree) Rescan(snap *Snapshot) {
	existing := make(map[string]*Category, len(t.Categories))
	for _, c := range t.Categories {
		existing[c.Name] = c
	}

	t.Root = snap.Root
	t.Categories = t.Categories[:0]
	for i := range snap.Categories {
		cs := &snap.Categories[i]
		c := existing[cs.Name]
		fresh := c == nil
		if fresh {
			c = &Category{
				Name:                cs.Name,
				Enabled:             false,
				UseAllSubCategories: true,
			}
		}
		c.Path = cs.Path
		t.rescanSubCategories(c, cs)
		if fresh {
			t.loadCategoryMeta(c)
		}
		t.Categories = append(t.Categories, c)
	}
	t.notify()
}

func (t *Tree) rescanSubCategories(c *Category, cs *CategorySnapshot) {
	existing := make(map[string]*SubCategory, len(c.SubCategories))
	for _, s := range c.SubCategories {
		existing[s.Name] = s
	}

	c.SubCategories = c.SubCategories[:0]
	for i := range cs.SubCategories {
		ss := &cs.SubCategories[i]
		s := existing[ss.Name]
		fresh := s == nil
		if fresh {
			s = &SubCategory{
				Name:        ss.Name,
				Enabled:     false,
				UseAllFiles: true,
			}
		}
		s.Path = ss.Path
		rescanEntries(s, ss)
		if fresh {
			t.loadSubCategoryMeta(s, ss)
		}
		c.SubCategories = append(c.SubCategories, s)
	}
}

func rescanEntries(s *SubCategory, ss *SubCategorySnapshot) {
	existing := make(map[string]*Entry, len(s.Entries))
	for _, e := range s.Entries {
		existing[e.Name] = e
	}

	s.Entries = s.Entries[:0]
	for i, f := range ss.Files {
		e := existing[f.Name]
		if e == nil {
			e = &Entry{Name: f.Name, Enabled: true, Order: i}
		}
		e.FilePath = f.Path
		s.Entries = append(s.Entries, e)
	}
}

func (t *Tree) loadCategoryMeta(c *Category) {
	meta, err := t.store.LoadCategory(c.Path)
	if err != nil {
		t.report(err)
		return
	}
	if meta == nil {
		return
	}
	c.applyMeta(meta)
}

func (t *Tree) loadSubCategoryMeta(s *SubCategory, ss *SubCategorySnapshot) {
	meta, err := t.store.LoadSubCategory(s.Path, s.Loose())
	if err != nil {
		t.report(err)
		return
	}
	if meta == nil {
		return
	}
	if needsMigration(meta) {
		meta = migrateSubCategory(meta, ss.Files)
		if err := t.store.SaveSubCategory(s.Path, s.Loose(), meta); err != nil {
			t.report(fmt.Errorf("persist migrated record for %s: %w", s.Path, err))
		}
	}
	s.applyMeta(meta)
}

// File identifies one entry file with its path segments from the library
// root, as consumed by tag extraction.
type File struct {
	Name     string
	Path     string
	Segments []string
}

// Files lists every entry file in the tree regardless of enabled state. The
// loose subcategory contributes only its category segment.
func (t *Tree) Files() []File {
	var out []File
	for _, c := range t.Categories {
		for _, s := range c.SubCategories {
			segments := []string{c.Name}
			if !s.Loose() {
				segments = append(segments, s.Name)
			}
			for _, e := range s.Entries {
				out = append(out, File{Name: e.Name, Path: e.FilePath, Segments: segments})
			}
		}
	}
	return out
}

// saveCategory persists one category record; failures are reported, not
// returned — a failed write never blocks the in-memory mutation.
func (t *Tree) saveCategory(c *Category) {
	if err := t.store.SaveCategory(c.Path, c.meta()); err != nil {
		t.report(err)
	}
	t.notify()
}

func (t *Tree) saveSubCategory(s *SubCategory) {
	if err := t.store.SaveSubCategory(s.Path, s.Loose(), s.meta()); err != nil {
		t.report(err)
	}
	t.notify()
}

// Category mutations. State is retained even when an ancestor is disabled,
// so re-enabling the ancestor restores prior selections.

func (t *Tree) SetCategoryEnabled(c *Category, v bool) {
	c.Enabled = v
	t.saveCategory(c)
}

func (t *Tree) SetCategoryLocked(c *Category, v bool) {
	c.Locked = v
	t.saveCategory(c)
}

func (t *Tree) SetCategoryOrder(c *Category, order int) {
	c.Order = order
	t.saveCategory(c)
}

func (t *Tree) SetCategoryWrap(c *Category, prefix, suffix string) {
	c.Prefix = prefix
	c.Suffix = suffix
	t.saveCategory(c)
}

func (t *Tree) SetUseAllSubCategories(c *Category, v bool) {
	c.UseAllSubCategories = v
	t.saveCategory(c)
}

// SelectSubCategory sets the category's single-selection choice by name. An
// unknown name is rejected; an empty name clears the selection.
func (t *Tree) SelectSubCategory(c *Category, name string) error {
	if name != "" && c.SubCategory(name) == nil {
		return fmt.Errorf("category %s has no subcategory %q", c.Name, name)
	}
	c.SelectedSubCategory = name
	t.saveCategory(c)
	return nil
}

// SubCategory mutations.

func (t *Tree) SetSubCategoryEnabled(s *SubCategory, v bool) {
	s.Enabled = v
	t.saveSubCategory(s)
}

func (t *Tree) SetSubCategoryLocked(s *SubCategory, v bool) {
	s.Locked = v
	t.saveSubCategory(s)
}

func (t *Tree) SetSubCategoryOrder(s *SubCategory, order int) {
	s.Order = order
	t.saveSubCategory(s)
}

func (t *Tree) SetSubCategoryWrap(s *SubCategory, prefix, suffix string) {
	s.Prefix = prefix
	s.Suffix = suffix
	t.saveSubCategory(s)
}

func (t *Tree) SetUseAllFiles(s *SubCategory, v bool) {
	s.UseAllFiles = v
	t.saveSubCategory(s)
}

// SelectEntry sets the subcategory's single-selection choice by name.
func (t *Tree) SelectEntry(s *SubCategory, name string) error {
	if name != "" && s.Entry(name) == nil {
		return fmt.Errorf("subcategory %s has no entry %q", s.Name, name)
	}
	s.SelectedEntry = name
	t.saveSubCategory(s)
	return nil
}

// Entry mutations persist through the owning subcategory's record.

func (t *Tree) SetEntryEnabled(s *SubCategory, e *Entry, v bool) {
	e.Enabled = v
	t.saveSubCategory(s)
}

func (t *Tree) SetEntryOrder(s *SubCategory, e *Entry, order int) {
	e.Order = order
	t.saveSubCategory(s)
}

// Resolve finds a node by slash-separated path: "Category",
// "Category/SubCategory" or "Category/SubCategory/entry". It returns
// whichever levels matched; the error names the first missing component.
func (t *Tree) Resolve(path []string) (*Category, *SubCategory, *Entry, error) {
	if len(path) == 0 || len(path) > 3 {
		return nil, nil, nil, errors.New("path must be Category[/SubCategory[/entry]]")
	}
	c := t.Category(path[0])
	if c == nil {
		return nil, nil, nil, fmt.Errorf("no category %q", path[0])
	}
	if len(path) == 1 {
		return c, nil, nil, nil
	}
	s := c.SubCategory(path[1])
	if s == nil {
		return nil, nil, nil, fmt.Errorf("category %s has no subcategory %q", c.Name, path[1])
	}
	if len(path) == 2 {
		return c, s, nil, nil
	}
	e := s.Entry(path[2])
	if e == nil {
		return nil, nil, nil, fmt.Errorf("subcategory %s has no entry %q", s.Name, path[2])
	}
	return c, s, e, nil
}
