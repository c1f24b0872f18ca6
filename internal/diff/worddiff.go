// Package diff implements the pure comparison primitives used by the
// comparison service: a word-level prompt diff, a settings map diff, and a
// Jaccard similarity score. Nothing in this package touches storage.
package diff

import "strings"

// Word token diff types.
const (
	Unchanged = "unchanged"
	Added     = "added"
	Removed   = "removed"
)

// WordToken is one token of a word-level diff.
type WordToken struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// WordDiff compares two texts token-by-token (whitespace tokenization) with a
// greedy nearest-forward-match walk. This is intentionally not an LCS-optimal
// diff; output compatibility with the existing frontend depends on the exact
// tie-breaking below, so keep it as-is.
func WordDiff(oldText, newText string) []WordToken {
	oldTokens := strings.Fields(oldText)
	newTokens := strings.Fields(newText)

	result := make([]WordToken, 0, len(oldTokens)+len(newTokens))
	i, j := 0, 0

	for i < len(oldTokens) && j < len(newTokens) {
		if oldTokens[i] == newTokens[j] {
			result = append(result, WordToken{Type: Unchanged, Text: oldTokens[i]})
			i++
			j++
			continue
		}

		// Nearest forward occurrence of each side's current token on the
		// other side. -1 means the token never appears again.
		oldInNew := indexOf(newTokens[j:], oldTokens[i])
		newInOld := indexOf(oldTokens[i:], newTokens[j])

		switch {
		case oldInNew == -1:
			result = append(result, WordToken{Type: Removed, Text: oldTokens[i]})
			i++
		case newInOld == -1:
			result = append(result, WordToken{Type: Added, Text: newTokens[j]})
			j++
		case oldInNew < newInOld:
			// old token reappears sooner in new: the new token is an insertion
			result = append(result, WordToken{Type: Added, Text: newTokens[j]})
			j++
		default:
			result = append(result, WordToken{Type: Removed, Text: oldTokens[i]})
			i++
		}
	}

	for ; i < len(oldTokens); i++ {
		result = append(result, WordToken{Type: Removed, Text: oldTokens[i]})
	}
	for ; j < len(newTokens); j++ {
		result = append(result, WordToken{Type: Added, Text: newTokens[j]})
	}

	return result
}

func indexOf(tokens []string, target string) int {
	for k, t := range tokens {
		if t == target {
			return k
		}
	}
	return -1
}
