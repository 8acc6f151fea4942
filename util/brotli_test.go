// Copyright The Sdat2img Authors
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
)

func writeBrotli(t *testing.T, path string, data []byte) {
	t.Helper()

	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBrotli2File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "system.new.dat.br")
	dst := filepath.Join(dir, "system.new.dat")

	data := bytes.Repeat([]byte("sdat2img brotli roundtrip "), 10000)
	writeBrotli(t, src, data)

	if err := Brotli2File(dst, src); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("brotli corrupted the data")
	}
}

func TestBrotli2FileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Brotli2File(filepath.Join(dir, "out"), filepath.Join(dir, "nope.br"))
	if err == nil {
		t.Fatal("expected an error for a missing source")
	}
}

func TestBrotli2FileCorruptInput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "garbage.br")
	dst := filepath.Join(dir, "garbage")

	if err := os.WriteFile(src, bytes.Repeat([]byte{0xff}, 512), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Brotli2File(dst, src); err == nil {
		t.Fatal("expected a decode error")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatal("partial output should have been removed")
	}
}
