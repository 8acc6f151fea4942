// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package image

import (
	"os"

	"golang.org/x/sys/unix"
)

// Fadvise hints that f will be read sequentially and soon. The copy is
// correct either way; failure only costs readahead.
func Fadvise(f *os.File) {
	fd := int(f.Fd())
	err := unix.Fadvise(fd, 0, 0, unix.FADV_SEQUENTIAL)
	if err == nil {
		err = unix.Fadvise(fd, 0, 0, unix.FADV_WILLNEED)
	}
	if err != nil {
		plog.Warningf("Failed to set file advice: %v", err)
	}
}
