package tagindex

import (
	"strings"
	"unicode"
)

// minTokenLen is the shortest token worth indexing; single characters are
// noise in wildcard vocabularies.
const minTokenLen = 2

// TagOccurrence counts how many times a tag token appears in one file's
// name, path segments and text content. The three counters accumulate
// independently and are never combined.
type TagOccurrence struct {
	FileNameCount int
	PathCount     int
	ContentCount  int
}

// Any reports whether the tag occurs in the file at all.
func (o TagOccurrence) Any() bool {
	return o.FileNameCount > 0 || o.PathCount > 0 || o.ContentCount > 0
}

// FileTagData maps lowercase tag names to their occurrence counters for one
// file.
type FileTagData map[string]TagOccurrence

// Tokenize splits text into lowercase alphanumeric runs. Whitespace,
// punctuation, underscores and hyphens all delimit; runs shorter than two
// characters are dropped.
func Tokenize(text string) []string {
	var tokens []string
	var run strings.Builder
	flush := func() {
		if run.Len() >= minTokenLen {
			tokens = append(tokens, run.String())
		}
		run.Reset()
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			run.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// Extract derives tag occurrences for one file from its name, its path
// segments and its content. A token showing up in more than one source
// accumulates in each counter separately.
func Extract(name string, segments []string, content string) FileTagData {
	data := make(FileTagData)

	for _, tok := range Tokenize(name) {
		occ := data[tok]
		occ.FileNameCount++
		data[tok] = occ
	}
	for _, seg := range segments {
		for _, tok := range Tokenize(seg) {
			occ := data[tok]
			occ.PathCount++
			data[tok] = occ
		}
	}
	for _, tok := range Tokenize(content) {
		occ := data[tok]
		occ.ContentCount++
		data[tok] = occ
	}
	return data
}
