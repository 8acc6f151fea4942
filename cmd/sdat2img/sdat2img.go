// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/flatcar/sdat2img/cli"
)

const defaultOutput = "system.img"

var root = &cobra.Command{
	Use:   "sdat2img <transfer_list> <system_new_file> [<system_img>]",
	Short: "Rebuild a raw system image from Android OTA block artifacts",
	Long: `Rebuild a raw filesystem image from the system.transfer.list and
system.new.dat(.br) pair found in block-based Android OTA packages.

    <transfer_list>: transfer list file
    <system_new_file>: system new dat file (may be brotli compressed)
    <system_img>: output system image (default ` + defaultOutput + `)

If you are lazy, then just provide a directory and the common filename
prefix instead and the artifact names will be derived from them.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runConvert,

	SilenceUsage: true,
}

func main() {
	cli.Execute(root)
}
