package diff

import (
	"math"
	"strings"
)

// Similarity scores two texts 0-100 using the Jaccard index over their
// lowercased word sets. Two empty texts score 0 (empty union, not 100).
func Similarity(textA, textB string) int {
	setA := tokenSet(textA)
	setB := tokenSet(textB)

	union := make(map[string]struct{}, len(setA)+len(setB))
	intersection := 0
	for w := range setA {
		union[w] = struct{}{}
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	for w := range setB {
		union[w] = struct{}{}
	}

	if len(union) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(intersection) / float64(len(union))))
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}
