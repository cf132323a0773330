/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package compression

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

type ZStd struct {
}

func NewZStd() *ZStd {
	return &ZStd{}
}

func (s *ZStd) Name() string {
	return Zstd
}

func (s *ZStd) Compress(input []byte) ([]byte, error) {
	compressor, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = compressor.Close()
	}()

	return compressor.EncodeAll(input, nil), nil
}

func (s *ZStd) Decompress(input []byte) ([]byte, error) {
	decompressor, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating zstd decompressor: %w", err)
	}
	defer decompressor.Close()

	decompressedData, err := decompressor.DecodeAll(input, nil)
	if err != nil {
		return nil, fmt.Errorf("error reading decompressed data: %w", err)
	}

	return decompressedData, nil
}
