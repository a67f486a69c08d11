package tagindex

import (
	"sort"
	"strings"
)

// Weights scale how much each occurrence kind contributes to a file's
// relevance score. They are ranking policy, exposed through config.
type Weights struct {
	Name    float64
	Path    float64
	Content float64
}

// DefaultWeights favor file-name hits; a query matching a file's own name is
// a stronger signal than a mention buried in content.
var DefaultWeights = Weights{Name: 3.0, Path: 1.0, Content: 1.0}

// FileMatch is one ranked search result.
type FileMatch struct {
	Name  string
	Path  string
	Score float64
}

// Search ranks files against the query tokens. Each matched tag contributes
// its weighted occurrence counts damped by the tag's corpus-wide occurring
// file count, so ubiquitous tags weigh less per match than rare ones. Files
// matching no token are excluded. Ties break by file name, case-insensitive,
// ascending.
func (x *Index) Search(query []string, w Weights) []FileMatch {
	tokens := make(map[string]struct{}, len(query))
	for _, q := range query {
		for _, tok := range Tokenize(q) {
			tokens[tok] = struct{}{}
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var out []FileMatch
	for path, data := range x.files {
		var score float64
		matched := false
		for tok := range tokens {
			occ, ok := data[tok]
			if !ok || !occ.Any() {
				continue
			}
			matched = true
			df := float64(x.df[tok])
			score += (w.Name*float64(occ.FileNameCount) +
				w.Path*float64(occ.PathCount) +
				w.Content*float64(occ.ContentCount)) / df
		}
		if matched {
			out = append(out, FileMatch{Name: x.names[path], Path: path, Score: score})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].Path < out[j].Path
	})
	return out
}
