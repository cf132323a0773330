/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

type Zlib struct {
}

func NewZlib() *Zlib {
	return &Zlib{}
}

func (z *Zlib) Name() string {
	return Deflate
}

// Compress returns input as a zlib stream.
func (z *Zlib) Compress(input []byte) ([]byte, error) {
	var compressedData bytes.Buffer
	zlibWriter := zlib.NewWriter(&compressedData)

	if _, err := zlibWriter.Write(input); err != nil {
		return nil, err
	}

	if err := zlibWriter.Close(); err != nil {
		return nil, err
	}

	return compressedData.Bytes(), nil
}

// Decompress inflates a zlib stream.
func (z *Zlib) Decompress(input []byte) ([]byte, error) {
	zlibReader, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = zlibReader.Close()
	}()

	return io.ReadAll(zlibReader)
}
