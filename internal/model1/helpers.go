package model1

import (
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
	"github.com/mattn/go-runewidth"
)

// SortNatural sorts ss in natural order, so "item2" precedes "item10".
func SortNatural(ss []string) {
	sort.Sort(sortorder.Natural(ss))
}

// Less returns true if v1 sorts before v2. Ties fall back to the ids.
func Less(id1, id2, v1, v2 string) bool {
	if v1 == v2 {
		return sortorder.NaturalLess(id1, id2)
	}
	return sortorder.NaturalLess(v1, v2)
}

// Truncate clips s to width display cells, appending an ellipsis when clipped.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad right pads s with blanks to width display cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
