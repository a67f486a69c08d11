package tagindex

import (
	"fmt"
	"os"
	"sort"

	"github.com/promptloom/loom/internal/library"
)

// ContentReader fetches a file's text content. File access stays behind this
// capability so the index never owns disk I/O.
type ContentReader func(path string) (string, error)

// ReadFile is the filesystem-backed ContentReader.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TagData is the corpus-wide view of one tag.
type TagData struct {
	Name string
	// OccurringFileCount is the number of files in which the tag occurs at
	// least once, by any occurrence kind.
	OccurringFileCount int
}

// Index holds derived tag data for the whole library. It references files by
// path and never owns tree nodes. Rebuild replaces it wholesale; there is no
// incremental update path.
type Index struct {
	files map[string]FileTagData // keyed by file path
	names map[string]string      // file path -> entry name
	df    map[string]int         // tag -> occurring file count
}

// Rebuild computes FileTagData for every file and derives per-tag document
// frequencies. The result is a pure function of the file set's names, paths
// and content — processing order does not matter. A file whose content
// cannot be read is reported and skipped; the rest of the corpus still
// indexes.
func Rebuild(files []library.File, read ContentReader, report library.Reporter) *Index {
	if report == nil {
		report = library.Nop
	}
	idx := &Index{
		files: make(map[string]FileTagData, len(files)),
		names: make(map[string]string, len(files)),
		df:    make(map[string]int),
	}

	for _, f := range files {
		content, err := read(f.Path)
		if err != nil {
			report(fmt.Errorf("index %s: %w", f.Path, err))
			continue
		}
		data := Extract(f.Name, f.Segments, content)
		idx.files[f.Path] = data
		idx.names[f.Path] = f.Name
	}

	for _, data := range idx.files {
		for tag, occ := range data {
			if occ.Any() {
				idx.df[tag]++
			}
		}
	}
	return idx
}

// FileCount returns the number of indexed files.
func (x *Index) FileCount() int {
	return len(x.files)
}

// FileTags returns the occurrence data for one file, or nil.
func (x *Index) FileTags(path string) FileTagData {
	return x.files[path]
}

// Tags lists every distinct tag with its occurring-file count, sorted by
// name.
func (x *Index) Tags() []TagData {
	out := make([]TagData, 0, len(x.df))
	for tag, n := range x.df {
		out = append(out, TagData{Name: tag, OccurringFileCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
