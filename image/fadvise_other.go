// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package image

import "os"

// Fadvise is a no-op where posix_fadvise is unavailable.
func Fadvise(f *os.File) {}
