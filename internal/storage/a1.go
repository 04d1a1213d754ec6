package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/capture/internal/common"
)

// Range is a parsed A1-notation range such as "Sheet1!A:F" or "Projects!A2:D".
// Columns are zero-based; rows are one-based. A zero EndRow or negative
// EndCol means the range is open in that direction.
type Range struct {
	Tab      string
	StartCol int
	EndCol   int
	StartRow int
	EndRow   int
}

// ParseRange parses rng. A bare tab name selects the whole tab.
func ParseRange(rng string) (Range, error) {
	rng = strings.TrimSpace(rng)
	tab, cells, found := cutLast(rng, "!")
	if !found {
		tab, cells = rng, ""
	}
	tab = unquoteTab(tab)
	if tab == "" {
		return Range{}, fmt.Errorf("%w: %q has no tab name", common.ErrInvalidRange, rng)
	}

	r := Range{Tab: tab, StartRow: 1, EndCol: -1}
	if cells == "" {
		return r, nil
	}

	startRef, endRef, hasEnd := strings.Cut(cells, ":")
	startCol, startRow, err := parseCell(startRef)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", common.ErrInvalidRange, rng, err)
	}
	r.StartCol = startCol
	if startRow > 0 {
		r.StartRow = startRow
	}

	if !hasEnd {
		r.EndCol = startCol
		r.EndRow = r.StartRow
		return r, nil
	}

	endCol, endRow, err := parseCell(endRef)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", common.ErrInvalidRange, rng, err)
	}
	if endCol < startCol {
		return Range{}, fmt.Errorf("%w: %q ends before it starts", common.ErrInvalidRange, rng)
	}
	if endRow > 0 && endRow < r.StartRow {
		return Range{}, fmt.Errorf("%w: %q ends before it starts", common.ErrInvalidRange, rng)
	}
	r.EndCol = endCol
	r.EndRow = endRow
	return r, nil
}

// Width is the number of columns the range spans, or -1 when open.
func (r Range) Width() int {
	if r.EndCol < 0 {
		return -1
	}
	return r.EndCol - r.StartCol + 1
}

// parseCell splits a reference like "AB12" into a zero-based column and a
// row, where row is 0 when the reference names a whole column.
func parseCell(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("cell %q has no column", ref)
	}

	n := 0
	for _, c := range ref[:i] {
		n = n*26 + int(c-'A'+1)
	}

	if i < len(ref) {
		row, err = strconv.Atoi(ref[i:])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("cell %q has an invalid row", ref)
		}
	}
	return n - 1, row, nil
}

// ColumnName converts a zero-based column index to its letters.
func ColumnName(col int) string {
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

func unquoteTab(tab string) string {
	tab = strings.TrimSpace(tab)
	if len(tab) >= 2 && tab[0] == '\'' && tab[len(tab)-1] == '\'' {
		tab = strings.ReplaceAll(tab[1:len(tab)-1], "''", "'")
	}
	return tab
}
