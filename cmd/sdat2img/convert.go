// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/spf13/cobra"

	"github.com/flatcar/sdat2img/image"
	"github.com/flatcar/sdat2img/transfer"
	"github.com/flatcar/sdat2img/util"
)

var plog = capnslog.NewPackageLogger("github.com/flatcar/sdat2img", "main")

func runConvert(cmd *cobra.Command, args []string) error {
	paths, err := resolvePaths(args)
	if err != nil {
		return err
	}

	payload := paths.payload
	if strings.HasSuffix(payload, ".br") {
		dst := strings.TrimSuffix(payload, ".br")
		plog.Noticef("Decompressing %s to %s...", payload, dst)
		if err := util.Brotli2File(dst, payload); err != nil {
			return fmt.Errorf("decompressing %s: %v", payload, err)
		}
		payload = dst
	} else {
		plog.Warningf("The input file %s is not a Brotli-compressed file.", payload)
	}

	list, err := transfer.ParseFile(paths.transferList)
	if err != nil {
		return err
	}
	plog.Noticef("%s detected", list.AndroidVersion())
	plog.Noticef("Parsed %d commands", len(list.Commands))

	fdat, err := os.Open(payload)
	if err != nil {
		return fmt.Errorf("opening payload: %v", err)
	}
	defer fdat.Close()
	image.Fadvise(fdat)

	// A regular payload file whose size cannot cover the new commands
	// is caught before any output is written.
	if fi, err := fdat.Stat(); err == nil && fi.Mode().IsRegular() {
		if want := int64(list.NewBlocks()) * transfer.BlockSize; fi.Size() < want {
			return fmt.Errorf("payload %s is %d bytes, transfer list needs %d", payload, fi.Size(), want)
		}
	}

	if _, err := os.Stat(paths.output); err == nil {
		if err := confirmOverwrite(paths.output); err != nil {
			return err
		}
	}

	fout, err := os.Create(paths.output)
	if err != nil {
		return fmt.Errorf("creating output image: %v", err)
	}
	defer fout.Close()

	plog.Noticef("New file size: %d bytes", int64(list.MaxEnd())*transfer.BlockSize)

	asm := image.Assembler{Payload: fdat, ProgressLevel: capnslog.INFO}
	if _, err := asm.Assemble(list, fout); err != nil {
		return err
	}

	abs, err := filepath.Abs(paths.output)
	if err != nil {
		abs = paths.output
	}
	fmt.Printf("Done! Output image: %s\n", abs)
	return nil
}

// confirmOverwrite asks before clobbering an existing image. Only an
// explicit y confirms; anything else aborts.
func confirmOverwrite(path string) error {
	fmt.Fprintf(os.Stderr, "The output file %s already exists.\n", path)
	fmt.Printf("Do you want to overwrite it? (y/N): ")

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return fmt.Errorf("reading overwrite answer: %v", err)
	}
	answer = strings.TrimSpace(answer)
	if answer != "y" && answer != "Y" {
		return fmt.Errorf("not overwriting %s, aborting", path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %v", path, err)
	}
	return nil
}
