package compose

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

// ErrMissingFile marks an entry file that vanished between scan and read.
// Composition and indexing recover by skipping the file's contribution.
var ErrMissingFile = errors.New("entry file missing")

// Mode selects how an entry file turns into prompt text.
type Mode string

const (
	// ModeLine picks one line per build — entry files are wildcard lists,
	// one phrase per line.
	ModeLine Mode = "line"
	// ModeWhole uses the whole trimmed file content.
	ModeWhole Mode = "whole"
)

// ContentResolver turns an entry's backing file into its prompt
// contribution. The engine treats the result as an opaque string.
type ContentResolver interface {
	Resolve(path string) (string, error)
}

// FileResolver reads entry files from disk. Comment lines starting with '#'
// and blank lines never contribute.
type FileResolver struct {
	mode Mode
	rng  *rand.Rand
}

// NewFileResolver creates a resolver; a nil rng gets a time-seeded one.
func NewFileResolver(mode Mode, rng *rand.Rand) *FileResolver {
	if mode != ModeWhole {
		mode = ModeLine
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FileResolver{mode: mode, rng: rng}
}

func (r *FileResolver) Resolve(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	lines := usableLines(string(data))
	if len(lines) == 0 {
		return "", nil
	}
	if r.mode == ModeWhole {
		return strings.Join(lines, "\n"), nil
	}
	return lines[r.rng.Intn(len(lines))], nil
}

func usableLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
