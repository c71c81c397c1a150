package inference

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are ignored when scoring overlap.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "by": true, "for": true,
	"in": true, "is": true, "it": true, "my": true, "near": true, "of": true,
	"on": true, "or": true, "the": true, "to": true, "with": true,
}

// LocalMatch scores candidates by Jaccard overlap of the words in title,
// description, category and location. Candidates with no overlap are
// dropped. Ties keep candidate order.
func LocalMatch(item Candidate, candidates []Candidate, limit int) []Match {
	target := tokens(item)
	if len(target) == 0 {
		return nil
	}

	var matches []Match
	for _, cand := range candidates {
		if cand.ID == item.ID {
			continue
		}
		other := tokens(cand)
		inter := 0
		for t := range other {
			if target[t] {
				inter++
			}
		}
		if inter == 0 {
			continue
		}
		union := len(target) + len(other) - inter
		matches = append(matches, Match{ItemID: cand.ID, Score: float64(inter) / float64(union)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return truncate(matches, limit)
}

func tokens(c Candidate) map[string]bool {
	set := make(map[string]bool)
	text := strings.Join([]string{c.Title, c.Description, c.Category, c.Location}, " ")
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(w) < 2 || stopwords[w] {
			continue
		}
		set[w] = true
	}
	return set
}
