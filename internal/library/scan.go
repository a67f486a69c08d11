package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Snapshot is one enumeration of the library folder: categories, their
// subfolders, and the .txt files inside each. Scan is the only place that
// touches the directory structure; everything downstream works off the
// snapshot.
type Snapshot struct {
	Root       string
	Categories []CategorySnapshot
}

type CategorySnapshot struct {
	Name          string
	Path          string
	SubCategories []SubCategorySnapshot
}

type SubCategorySnapshot struct {
	Name  string
	Path  string
	Files []FileSnapshot
}

// FileSnapshot is one .txt file; Name is the stem without extension.
type FileSnapshot struct {
	Name string
	Path string
}

// Scan enumerates root as Category/SubCategory/*.txt. Loose .txt files
// directly inside a category folder are grouped under the reserved "/"
// subcategory. Hidden files and folders are skipped. os.ReadDir returns
// entries sorted by name, which keeps enumeration order deterministic.
func Scan(root string) (*Snapshot, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read library root %s: %w", root, err)
	}

	snap := &Snapshot{Root: root}
	for _, d := range dirs {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		cat, err := scanCategory(filepath.Join(root, d.Name()), d.Name())
		if err != nil {
			return nil, err
		}
		snap.Categories = append(snap.Categories, *cat)
	}
	return snap, nil
}

func scanCategory(dir, name string) (*CategorySnapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read category %s: %w", dir, err)
	}

	cat := &CategorySnapshot{Name: name, Path: dir}
	var loose []FileSnapshot

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			sub, err := scanSubCategory(filepath.Join(dir, e.Name()), e.Name())
			if err != nil {
				return nil, err
			}
			cat.SubCategories = append(cat.SubCategories, *sub)
			continue
		}
		if f, ok := txtFile(dir, e.Name()); ok {
			loose = append(loose, f)
		}
	}

	// The loose subcategory exists only while backing files do.
	if len(loose) > 0 {
		cat.SubCategories = append(cat.SubCategories, SubCategorySnapshot{
			Name:  LooseName,
			Path:  dir,
			Files: loose,
		})
	}
	return cat, nil
}

func scanSubCategory(dir, name string) (*SubCategorySnapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read subcategory %s: %w", dir, err)
	}

	sub := &SubCategorySnapshot{Name: name, Path: dir}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if f, ok := txtFile(dir, e.Name()); ok {
			sub.Files = append(sub.Files, f)
		}
	}
	return sub, nil
}

func txtFile(dir, name string) (FileSnapshot, bool) {
	if !strings.EqualFold(filepath.Ext(name), ".txt") {
		return FileSnapshot{}, false
	}
	stem := name[:len(name)-len(filepath.Ext(name))]
	return FileSnapshot{Name: stem, Path: filepath.Join(dir, name)}, true
}
