package results

import (
	"sort"
	"strings"
)

// SetFilter recomputes the filtered view for query, matching fuzzily over
// each row's cells joined by spaces, sorted by descending match score
// (an earlier first match and more consecutive matched characters score
// higher). An empty query
// restores the unfiltered view in original order.
func (n *Navigator) SetFilter(query string) {
	n.filter = query
	if query == "" {
		n.resetFilter()
		return
	}

	type scored struct {
		idx   int
		score int
	}
	var matches []scored
	for i, row := range n.Set.Rows {
		haystack := strings.Join(row, " ")
		ok, positions := FuzzyMatch(query, haystack)
		if !ok {
			continue
		}
		matches = append(matches, scored{idx: i, score: fuzzyScore(positions, len(haystack))})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	n.filtered = make([]int, len(matches))
	n.matchScore = make(map[int]int, len(matches))
	for i, m := range matches {
		n.filtered[i] = m.idx
		n.matchScore[m.idx] = m.score
	}
	n.row = 0
}

// fuzzyScore rewards matches that are dense (consecutive positions) and
// early in the string.
func fuzzyScore(positions []int, length int) int {
	if len(positions) == 0 || length == 0 {
		return 0
	}
	score := 1000 - positions[0]
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			score += 5
		}
	}
	return score
}

// Filter returns the current filter query.
func (n *Navigator) Filter() string { return n.filter }
