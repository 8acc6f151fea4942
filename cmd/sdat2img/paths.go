// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// convertPaths is the resolved (transfer list, payload, output) triple.
type convertPaths struct {
	transferList string
	payload      string
	output       string
}

// resolvePaths maps positional arguments to the input triple. Two
// shapes are accepted: explicit file paths, or a directory plus the
// common basename of the artifact pair, from which the conventional
// names are derived. The compressed payload name is only derived when
// the plain one is absent.
func resolvePaths(args []string) (convertPaths, error) {
	var p convertPaths

	fi, err := os.Stat(args[0])
	switch {
	case err == nil && fi.Mode().IsRegular():
		p.transferList = args[0]
		p.payload = args[1]
		p.output = defaultOutput
	case err == nil && fi.IsDir():
		dir, base := args[0], args[1]
		p.transferList = filepath.Join(dir, base+".transfer.list")
		p.payload = filepath.Join(dir, base+".new.dat")
		if _, err := os.Stat(p.payload); err != nil {
			p.payload = filepath.Join(dir, base+".new.dat.br")
		}
		p.output = filepath.Join(dir, base+".img")
	default:
		return p, fmt.Errorf("%s is neither a regular file nor a directory", args[0])
	}

	if len(args) == 3 {
		p.output = args[2]
	}
	return p, nil
}
