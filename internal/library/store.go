package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Reserved metadata file names. The loose-files subcategory persists under a
// name of its own inside the category folder, so it can never collide with a
// real subfolder's record.
const (
	categoryMetaFile    = ".category.json"
	subCategoryMetaFile = ".subcategory.json"
	looseMetaFile       = ".loosefiles.json"
)

// MetadataStore reads and writes per-node metadata records keyed by folder
// path. Load methods return (nil, nil) when no record exists.
type MetadataStore interface {
	LoadCategory(dir string) (*CategoryMeta, error)
	SaveCategory(dir string, meta *CategoryMeta) error
	LoadSubCategory(dir string, loose bool) (*SubCategoryMeta, error)
	SaveSubCategory(dir string, loose bool, meta *SubCategoryMeta) error
}

// FSStore is the filesystem MetadataStore. Records are JSON, read leniently
// (comments, trailing commas, any field casing) and written canonically.
type FSStore struct{}

func NewFSStore() *FSStore { return &FSStore{} }

func (s *FSStore) LoadCategory(dir string) (*CategoryMeta, error) {
	var meta CategoryMeta
	ok, err := s.load(filepath.Join(dir, categoryMetaFile), &meta)
	if err != nil || !ok {
		return nil, err
	}
	return &meta, nil
}

func (s *FSStore) SaveCategory(dir string, meta *CategoryMeta) error {
	return s.save(filepath.Join(dir, categoryMetaFile), meta)
}

func (s *FSStore) LoadSubCategory(dir string, loose bool) (*SubCategoryMeta, error) {
	var meta SubCategoryMeta
	ok, err := s.load(filepath.Join(dir, subCategoryFileName(loose)), &meta)
	if err != nil || !ok {
		return nil, err
	}
	return &meta, nil
}

func (s *FSStore) SaveSubCategory(dir string, loose bool, meta *SubCategoryMeta) error {
	saved := *meta
	saved.SelectedTxtFile = "" // legacy field is read-only
	return s.save(filepath.Join(dir, subCategoryFileName(loose)), &saved)
}

func subCategoryFileName(loose bool) string {
	if loose {
		return looseMetaFile
	}
	return subCategoryMetaFile
}

func (s *FSStore) load(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(normalizeJSON(data), out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrConfiguration, path, err)
	}
	return true, nil
}

func (s *FSStore) save(path string, meta any) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// normalizeJSON strips // and /* */ comments plus trailing commas so records
// written by the legacy tool still parse. String literals are left alone.
func normalizeJSON(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			i++ // skip the closing '/'
		default:
			out = append(out, c)
		}
	}

	return stripTrailingCommas(out)
}

func stripTrailingCommas(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		if c == ',' {
			j := i + 1
			for j < len(data) && (data[j] == ' ' || data[j] == '\t' || data[j] == '\n' || data[j] == '\r') {
				j++
			}
			if j < len(data) && (data[j] == '}' || data[j] == ']') {
				continue // drop the comma
			}
		}

		out = append(out, c)
	}

	return out
}
