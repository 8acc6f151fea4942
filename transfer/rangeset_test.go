// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeRangeSet builds the wire form "N,x0,...,xN-1" from a flat list
// of interval endpoints.
func encodeRangeSet(nums []uint64) string {
	parts := []string{fmt.Sprintf("%d", len(nums))}
	for _, n := range nums {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, ",")
}

func TestParseRangeSet(t *testing.T) {
	ranges, err := ParseRangeSet("2,0,2")
	require.Nil(t, err)
	assert.Equal(t, []Range{{Begin: 0, End: 2}}, ranges)

	ranges, err = ParseRangeSet("4,1,2,3,5")
	require.Nil(t, err)
	assert.Equal(t, []Range{{Begin: 1, End: 2}, {Begin: 3, End: 5}}, ranges)
}

func TestParseRangeSetRoundTrip(t *testing.T) {
	lists := [][]uint64{
		{0, 2},
		{1, 2, 3, 5},
		{0, 1, 5, 6, 6, 6},
		{10, 4200, 4200, 9000},
	}
	for _, nums := range lists {
		ranges, err := ParseRangeSet(encodeRangeSet(nums))
		require.Nil(t, err)

		flat := make([]uint64, 0, len(nums))
		for _, r := range ranges {
			flat = append(flat, r.Begin, r.End)
		}
		assert.Equal(t, nums, flat)
	}
}

func TestParseRangeSetErrors(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"", "invalid rangeset token"},
		{"2,x,2", "invalid rangeset token"},
		{"2,0 1,2", "invalid rangeset token"},
		{"3,0,1", "rangeset length mismatch"},
		{"2,0,2,4", "rangeset length mismatch"},
		{"3,0,1,2", "rangeset pair mismatch"},
		{"0", "empty rangeset"},
		// A lying header must fail cleanly, never allocate.
		{"18446744073709551615,0,2", "rangeset length mismatch"},
	} {
		_, err := ParseRangeSet(tt.in)
		require.NotNil(t, err, "input %q", tt.in)
		assert.Contains(t, err.Error(), tt.want, "input %q", tt.in)
	}
}

func TestParseRangeSetTolerantSpacing(t *testing.T) {
	ranges, err := ParseRangeSet("2, 0 ,2")
	require.Nil(t, err)
	assert.Equal(t, []Range{{Begin: 0, End: 2}}, ranges)
}

func TestRangeSizes(t *testing.T) {
	r := Range{Begin: 1, End: 5}
	assert.Equal(t, uint64(4), r.Blocks())
	assert.Equal(t, int64(4*BlockSize), r.Bytes())
	assert.Equal(t, "[1,5)", r.String())

	empty := Range{Begin: 3, End: 3}
	assert.Equal(t, uint64(0), empty.Blocks())
	assert.Equal(t, int64(0), empty.Bytes())
}
