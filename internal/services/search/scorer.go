package search

import "strings"

// Score rates how well needle matches hay on a 0-100 scale. True substring
// containment always scores 100; otherwise the score is the Jaccard
// similarity of the two strings' trigram sets, truncated to an integer
// percentage. Strings shorter than three symbols cannot be compared by
// trigram and score 0.
func Score(needle, hay string) int {
	if needle == "" {
		return 0
	}
	if strings.Contains(hay, needle) {
		return 100
	}

	a := trigramSet(hay)
	b := trigramSet(needle)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inter := 0
	for t := range b {
		if a[t] {
			inter++
		}
	}
	union := len(a) + len(b) - inter

	return 100 * inter / union
}

// trigramSet returns the set of 3-rune contiguous windows of s.
func trigramSet(s string) map[string]bool {
	runes := []rune(s)
	if len(runes) < 3 {
		return nil
	}
	set := make(map[string]bool, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = true
	}
	return set
}
