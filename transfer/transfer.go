// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

// Package transfer parses the transfer.list manifests produced by
// Android block-based OTA packaging.
package transfer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CommandKind enumerates the transfer list commands this package
// understands.
type CommandKind int

const (
	Erase CommandKind = iota
	New
	Zero
)

func (k CommandKind) String() string {
	switch k {
	case Erase:
		return "erase"
	case New:
		return "new"
	case Zero:
		return "zero"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// ParseCommandKind maps a command token to its kind. Commands from the
// incremental OTA format (move, bsdiff, imgdiff, stash, free) are
// recognized but unsupported; anything else is invalid.
func ParseCommandKind(s string) (CommandKind, error) {
	switch s {
	case "erase":
		return Erase, nil
	case "new":
		return New, nil
	case "zero":
		return Zero, nil
	case "move", "bsdiff", "imgdiff", "stash", "free":
		return 0, fmt.Errorf("unsupported command %q", s)
	}
	return 0, fmt.Errorf("invalid command %q", s)
}

// Command is a single transfer list operation on one block range. A
// manifest line with several ranges expands into one Command per range.
type Command struct {
	Kind   CommandKind
	Blocks Range
}

// List is a parsed transfer list: the schema version and the command
// stream in its original textual order.
type List struct {
	Version int
	// TotalBlocks is the advisory block count from the second line.
	// The image size is always recomputed from the command ranges.
	TotalBlocks uint64
	Commands    []Command
}

// ParseFile parses the transfer list at path.
func ParseFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transfer list: %v", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads a transfer list from r. name appears in error messages
// alongside the offending line number; it is typically the file path.
func Parse(r io.Reader, name string) (*List, error) {
	sc := bufio.NewScanner(r)
	// A single new command can carry thousands of ranges; its line can
	// run well past the default scanner limit.
	sc.Buffer(nil, 64*1024*1024)
	lineno := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineno++
		return sc.Text(), true
	}
	fail := func(format string, args ...interface{}) error {
		return fmt.Errorf("%s:%d: %s", name, lineno, fmt.Sprintf(format, args...))
	}

	list := &List{}

	line, ok := next()
	if !ok {
		return nil, fmt.Errorf("%s:1: missing version line", name)
	}
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || v < 1 || v > 4 {
		return nil, fail("unknown version %q", strings.TrimSpace(line))
	}
	list.Version = v

	line, ok = next()
	if !ok {
		return nil, fmt.Errorf("%s:2: missing total block count", name)
	}
	if n, err := strconv.ParseUint(strings.TrimSpace(line), 10, 64); err == nil {
		list.TotalBlocks = n
	}

	// Versions 2 and up carry the stash entry count and the maximum
	// stash size next. Neither matters when writing a fresh image.
	if list.Version >= 2 {
		for i := 0; i < 2; i++ {
			if _, ok := next(); !ok {
				break
			}
		}
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		fields := strings.Split(line, " ")
		if len(fields) != 2 {
			return nil, fail("expected \"<command> <rangeset>\", found %d fields", len(fields))
		}
		kind, err := ParseCommandKind(fields[0])
		if err != nil {
			return nil, fail("%v", err)
		}
		ranges, err := ParseRangeSet(fields[1])
		if err != nil {
			return nil, fail("%v", err)
		}
		for _, blocks := range ranges {
			list.Commands = append(list.Commands, Command{Kind: kind, Blocks: blocks})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %v", name, err)
	}

	return list, nil
}

// MaxEnd returns the greatest end block over all commands, data
// carrying or not. The final image is MaxEnd()*BlockSize bytes.
func (l *List) MaxEnd() uint64 {
	var max uint64
	for _, c := range l.Commands {
		if c.Blocks.End > max {
			max = c.Blocks.End
		}
	}
	return max
}

// NewBlocks returns the total number of payload blocks consumed by new
// commands.
func (l *List) NewBlocks() uint64 {
	var n uint64
	for _, c := range l.Commands {
		if c.Kind == New {
			n += c.Blocks.Blocks()
		}
	}
	return n
}

// AndroidVersion maps the schema version to the Android release line
// that produces it.
func (l *List) AndroidVersion() string {
	switch l.Version {
	case 1:
		return "Android 5.0"
	case 2:
		return "Android 5.1"
	case 3:
		return "Android 6.x"
	case 4:
		return "Android 7.x or above"
	}
	return "unknown Android version"
}
