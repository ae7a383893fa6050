package adapter

import (
	"strings"

	"campus-quiz/internal/domain"
)

// defaultBlockedWords is the seed word list for the discussion feed filter.
// Deployments can extend it through NewWordListFilter.
var defaultBlockedWords = []string{
	"damn", "hell", "crap", "stupid", "idiot", "dumb",
	"bobo", "tanga", "gago", "ulol",
}

// WordListFilter flags posts containing any blocked word. Matching is
// case-insensitive on whole words only, so "hello" never trips on "hell".
type WordListFilter struct {
	blocked map[string]struct{}
}

// NewWordListFilter builds a filter from the given words plus the defaults.
func NewWordListFilter(extra ...string) domain.ProfanityFilter {
	blocked := make(map[string]struct{}, len(defaultBlockedWords)+len(extra))
	for _, w := range defaultBlockedWords {
		blocked[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range extra {
		blocked[strings.ToLower(w)] = struct{}{}
	}
	return &WordListFilter{blocked: blocked}
}

func (f *WordListFilter) Flag(text string) (bool, []string) {
	var hits []string
	seen := make(map[string]struct{})
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(raw, ".,!?;:'\"()[]")
		if _, blocked := f.blocked[word]; !blocked {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		hits = append(hits, word)
	}
	return len(hits) > 0, hits
}
