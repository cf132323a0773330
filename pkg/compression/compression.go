/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package compression holds the byte compressors status list artifacts can be packed with.
package compression

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Deflate is the zlib-wrapped deflate stream browsers decode with pako.
	Deflate = "deflate"
	Gzip    = "gzip"
	Zstd    = "zstd"
	None    = "none"
)

// ErrUnsupportedCompression is returned for an unknown compression name.
var ErrUnsupportedCompression = errors.New("unsupported compression")

// Compressor packs and unpacks opaque byte slices.
type Compressor interface {
	Name() string
	Compress(input []byte) ([]byte, error)
	Decompress(input []byte) ([]byte, error)
}

// NewCompressor returns the compressor registered under algo. An empty name selects Deflate.
func NewCompressor(algo string) (Compressor, error) {
	switch strings.ToLower(algo) {
	case "", Deflate:
		return NewZlib(), nil
	case Gzip:
		return NewGzip(), nil
	case Zstd:
		return NewZStd(), nil
	case None:
		return NewNilZip(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, algo)
	}
}
