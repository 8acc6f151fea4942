// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

// Package image materializes a raw filesystem image from a transfer
// list and its block payload.
package image

import (
	"fmt"
	"io"
	"os"

	"github.com/coreos/pkg/capnslog"

	"github.com/flatcar/sdat2img/transfer"
	"github.com/flatcar/sdat2img/util"
)

var plog = capnslog.NewPackageLogger("github.com/flatcar/sdat2img", "image")

// Assembler copies payload blocks into an output image at the offsets
// a transfer list prescribes, the way a block OTA is applied to an
// empty partition.
type Assembler struct {
	// Payload is the source of new block data. It is read strictly
	// sequentially; each new command consumes exactly as many bytes
	// as its range covers.
	Payload io.Reader
	// ProgressLevel is the log level at which per-range copy progress
	// is drawn. The zero value leaves progress at DEBUG.
	ProgressLevel capnslog.LogLevel
}

// Assemble writes the image described by list into out, reading block
// data from the Payload, and returns the final image size in bytes.
// Bytes not covered by any new command are left zero; out is truncated
// or extended to MaxEnd*BlockSize afterwards.
func (a *Assembler) Assemble(list *transfer.List, out *os.File) (int64, error) {
	level := a.ProgressLevel
	if level == capnslog.CRITICAL {
		level = capnslog.DEBUG
	}

	for _, cmd := range list.Commands {
		if cmd.Kind != transfer.New {
			plog.Noticef("Skipping command %s...", cmd.Kind)
			continue
		}
		blocks := cmd.Blocks
		plog.Noticef("Copying %d blocks into position %d...", blocks.Blocks(), blocks.Begin)

		if _, err := out.Seek(int64(blocks.Begin)*transfer.BlockSize, io.SeekStart); err != nil {
			return 0, fmt.Errorf("seeking output to block %d: %v", blocks.Begin, err)
		}

		want := blocks.Bytes()
		n, err := util.CopyProgress(level, fmt.Sprintf("blocks %s", blocks),
			out, io.LimitReader(a.Payload, want), want)
		if err != nil {
			return 0, fmt.Errorf("copying blocks %s: %v", blocks, err)
		}
		if n != want {
			return 0, fmt.Errorf("payload exhausted copying blocks %s: read %d of %d bytes", blocks, n, want)
		}
	}

	size := int64(list.MaxEnd()) * transfer.BlockSize
	if err := out.Truncate(size); err != nil {
		return 0, fmt.Errorf("resizing image to %d bytes: %v", size, err)
	}
	return size, nil
}
