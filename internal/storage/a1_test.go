package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/capture/internal/common"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{in: "Sheet1!A:F", want: Range{Tab: "Sheet1", StartCol: 0, EndCol: 5, StartRow: 1}},
		{in: "Projects!A2:D", want: Range{Tab: "Projects", StartCol: 0, EndCol: 3, StartRow: 2}},
		{in: "Tags!A2:B10", want: Range{Tab: "Tags", StartCol: 0, EndCol: 1, StartRow: 2, EndRow: 10}},
		{in: "Sheet1!C3", want: Range{Tab: "Sheet1", StartCol: 2, EndCol: 2, StartRow: 3, EndRow: 3}},
		{in: "Sheet1!AA:AB", want: Range{Tab: "Sheet1", StartCol: 26, EndCol: 27, StartRow: 1}},
		{in: "Sheet1", want: Range{Tab: "Sheet1", EndCol: -1, StartRow: 1}},
		{in: "'Activity Log'!a:h", want: Range{Tab: "Activity Log", StartCol: 0, EndCol: 7, StartRow: 1}},
		{in: "'It''s'!A:A", want: Range{Tab: "It's", StartCol: 0, EndCol: 0, StartRow: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, in := range []string{"", "!A:F", "Sheet1!1:F", "Sheet1!F:A", "Sheet1!A5:B2", "Sheet1!A0", "Sheet1!A:"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRange(in)
			assert.ErrorIs(t, err, common.ErrInvalidRange)
		})
	}
}

func TestColumnName(t *testing.T) {
	tests := map[int]string{0: "A", 5: "F", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"}
	for col, want := range tests {
		assert.Equal(t, want, ColumnName(col))
	}
}

func TestRange_Width(t *testing.T) {
	r, err := ParseRange("Sheet1!B:D")
	require.NoError(t, err)
	assert.Equal(t, 3, r.Width())

	r, err = ParseRange("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, -1, r.Width())
}
