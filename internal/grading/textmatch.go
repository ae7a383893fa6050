package grading

import "strings"

// normalize lower-cases and trims a submitted or reference answer.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// significantWords returns the words longer than 3 characters.
func significantWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len([]rune(w)) > 3 {
			out = append(out, w)
		}
	}
	return out
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func lengthDelta(a, b string) int {
	d := len([]rune(a)) - len([]rune(b))
	if d < 0 {
		return -d
	}
	return d
}

// charOverlap is the share of the reference's character set that also occurs
// in the submission.
func charOverlap(got, want string) float64 {
	wantSet := make(map[rune]struct{})
	for _, r := range want {
		wantSet[r] = struct{}{}
	}
	if len(wantSet) == 0 {
		return 0
	}
	gotSet := make(map[rune]struct{})
	for _, r := range got {
		gotSet[r] = struct{}{}
	}
	hits := 0
	for r := range wantSet {
		if _, ok := gotSet[r]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(wantSet))
}
