/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

type GZip struct {
}

func NewGzip() *GZip {
	return &GZip{}
}

func (g *GZip) Name() string {
	return Gzip
}

// Compress takes a byte slice and returns a gzip compressed byte slice.
func (g *GZip) Compress(input []byte) ([]byte, error) {
	var compressedData bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressedData)

	if _, err := gzipWriter.Write(input); err != nil {
		return nil, err
	}

	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}

	return compressedData.Bytes(), nil
}

// Decompress takes a gzip compressed byte slice and returns a decompressed byte slice.
func (g *GZip) Decompress(input []byte) ([]byte, error) {
	gzipReader, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = gzipReader.Close()
	}()

	return io.ReadAll(gzipReader)
}
