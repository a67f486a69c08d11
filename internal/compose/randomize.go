package compose

import (
	"math/rand"
	"time"

	"github.com/promptloom/loom/internal/library"
)

// Randomize reassigns single-selection choices to uniformly random enabled
// children and persists the changed records. Locks freeze a node's own
// selection but never its descendants': a locked category still has its
// unlocked subcategories randomized, and vice versa. Enabled flags are never
// touched, and a level in use-all mode has nothing to randomize. With no
// enabled child the selection is cleared.
func Randomize(t *library.Tree, rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for _, cat := range t.Categories {
		if !cat.Locked && !cat.UseAllSubCategories {
			t.SelectSubCategory(cat, pickSubCategory(cat, rng))
		}
		for _, sub := range cat.SubCategories {
			if sub.Locked || sub.UseAllFiles {
				continue
			}
			t.SelectEntry(sub, pickEntry(sub, rng))
		}
	}
}

func pickSubCategory(cat *library.Category, rng *rand.Rand) string {
	var enabled []string
	for _, s := range cat.SubCategories {
		if s.Enabled {
			enabled = append(enabled, s.Name)
		}
	}
	if len(enabled) == 0 {
		return ""
	}
	return enabled[rng.Intn(len(enabled))]
}

func pickEntry(sub *library.SubCategory, rng *rand.Rand) string {
	var enabled []string
	for _, e := range sub.Entries {
		if e.Enabled {
			enabled = append(enabled, e.Name)
		}
	}
	if len(enabled) == 0 {
		return ""
	}
	return enabled[rng.Intn(len(enabled))]
}
