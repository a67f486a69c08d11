package tagindex

import (
	"sort"
	"strings"
)

// TagSuggestion is one related tag with the number of files it shares with
// the queried tag.
type TagSuggestion struct {
	Name      string
	FileCount int
}

// SuggestRelatedTags lists tags that co-occur with the given tag in at least
// one file, ranked by co-occurring file count descending, then
// alphabetically.
func (x *Index) SuggestRelatedTags(tag string) []TagSuggestion {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil
	}

	counts := make(map[string]int)
	for _, data := range x.files {
		if occ, ok := data[tag]; !ok || !occ.Any() {
			continue
		}
		for other, occ := range data {
			if other == tag || !occ.Any() {
				continue
			}
			counts[other]++
		}
	}

	out := make([]TagSuggestion, 0, len(counts))
	for name, n := range counts {
		out = append(out, TagSuggestion{Name: name, FileCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FileCount != out[j].FileCount {
			return out[i].FileCount > out[j].FileCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}
