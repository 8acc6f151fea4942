// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"io"
	"os"

	"github.com/andybalholm/brotli"
)

// Brotli2File does brotli decompression from src file into dst file
func Brotli2File(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, brotli.NewReader(in))
	if err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
