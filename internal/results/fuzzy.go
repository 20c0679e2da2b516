// Package results implements the results navigator (§4.4): selection
// modes over a query's ResultSet, fuzzy row filtering, CSV export and
// EXPLAIN rendering.
package results

import "strings"

// FuzzyMatch reports whether every rune of search appears, in order, inside
// text (case-insensitive), returning the matched rune positions for
// highlighting. Ported from ted's fuzzy_selector.go fuzzyMatch, reused here
// for filtering result rows instead of table names.
func FuzzyMatch(search, text string) (bool, []int) {
	want := []rune(strings.ToLower(search))
	text = strings.ToLower(text)

	var positions []int
	si, pos := 0, 0
	for _, r := range text {
		if si < len(want) && r == want[si] {
			positions = append(positions, pos)
			si++
		}
		pos++
	}
	return si == len(want), positions
}
