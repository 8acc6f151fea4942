// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockSize is the filesystem block unit used by block-based OTA
// artifacts. All offsets in a transfer list are whole blocks.
const BlockSize = 4096

// Range is a half-open interval [Begin, End) of block indices.
type Range struct {
	Begin uint64
	End   uint64
}

// Blocks returns the number of blocks the range covers.
func (r Range) Blocks() uint64 {
	return r.End - r.Begin
}

// Bytes returns the byte length of the range.
func (r Range) Bytes() int64 {
	return int64(r.Blocks()) * BlockSize
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Begin, r.End)
}

// ParseRangeSet decodes the comma separated rangeset encoding used by
// transfer lists: a leading element count followed by an even number of
// block indices forming half-open [begin, end) pairs.
func ParseRangeSet(s string) ([]Range, error) {
	tokens := strings.Split(s, ",")
	nums := make([]uint64, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rangeset token %q in %q", tok, s)
		}
		nums = append(nums, n)
	}

	// The declared count is checked against the token count that is
	// actually present; it must never size an allocation on its own.
	count := nums[0]
	if count != uint64(len(nums)-1) {
		return nil, fmt.Errorf("rangeset length mismatch: header declares %d elements, found %d", count, len(nums)-1)
	}
	if count%2 != 0 {
		return nil, fmt.Errorf("rangeset pair mismatch: %d elements do not pair up", count)
	}
	if count == 0 {
		return nil, fmt.Errorf("empty rangeset %q", s)
	}

	ranges := make([]Range, 0, count/2)
	for i := 1; i < len(nums); i += 2 {
		ranges = append(ranges, Range{Begin: nums[i], End: nums[i+1]})
	}
	return ranges, nil
}
