/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bloom wraps a sized bloom filter whose bitmap can be exported to and rebuilt from an artifact.
package bloom

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compaction"
	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compression"
)

const (
	DefaultCapacity      = 1000
	DefaultFalsePositive = 0.01

	wordSize = 8
)

// Params sizes a filter. The same Params rebuild an identically sized filter on the verifier side.
type Params struct {
	// Capacity is the expected number of inserted elements.
	Capacity uint
	// FalsePositive is the target false positive rate in (0, 1).
	FalsePositive float64
	// HashFunctions overrides the estimated number of hash functions when non zero.
	HashFunctions uint
}

// Validate checks the sizing parameters.
func (p Params) Validate() error {
	if p.Capacity == 0 {
		return errors.New("bloom capacity must be positive")
	}

	if p.FalsePositive <= 0 || p.FalsePositive >= 1 {
		return fmt.Errorf("bloom false positive rate must be in (0, 1), got %v", p.FalsePositive)
	}

	return nil
}

// Estimate returns the bit count m = ceil(-n ln p / ln2^2) and the hash function count k.
func (p Params) Estimate() (m, k uint) {
	m, k = bloom.EstimateParameters(p.Capacity, p.FalsePositive)
	if p.HashFunctions != 0 {
		k = p.HashFunctions
	}

	return m, k
}

// Filter is a fixed size bloom filter.
type Filter struct {
	params Params
	bf     *bloom.BloomFilter
}

// New returns an empty filter sized from p.
func New(p Params) (*Filter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m, k := p.Estimate()

	return &Filter{params: p, bf: bloom.New(m, k)}, nil
}

// FromBitmap rebuilds a filter from an exported bitmap.
func FromBitmap(p Params, bitmap []byte) (*Filter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m, k := p.Estimate()

	if expected := bitmapLen(m); len(bitmap) != expected {
		return nil, fmt.Errorf("%w: bitmap has %d bytes, expected %d", compaction.ErrDecode, len(bitmap), expected)
	}

	words := make([]uint64, len(bitmap)/wordSize)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(bitmap[i*wordSize:])
	}

	return &Filter{params: p, bf: bloom.FromWithM(words, m, k)}, nil
}

// Add inserts data.
func (f *Filter) Add(data []byte) {
	f.bf.Add(data)
}

// Test reports whether data may be present. It never returns false for inserted data.
func (f *Filter) Test(data []byte) bool {
	return f.bf.Test(data)
}

// Params returns the sizing parameters.
func (f *Filter) Params() Params {
	return f.params
}

// Bits returns the number of bits m.
func (f *Filter) Bits() uint {
	return f.bf.Cap()
}

// HashFunctions returns k.
func (f *Filter) HashFunctions() uint {
	return f.bf.K()
}

// Bitmap exports the filter bits as little endian 64 bit words.
func (f *Filter) Bitmap() []byte {
	words := f.bf.BitSet().Bytes()
	out := make([]byte, 0, bitmapLen(f.bf.Cap()))

	for _, w := range words {
		out = binary.LittleEndian.AppendUint64(out, w)
	}

	return out
}

// Encode compresses and base64 encodes the bitmap.
func (f *Filter) Encode(c compression.Compressor) (string, error) {
	compressed, err := c.Compress(f.Bitmap())
	if err != nil {
		return "", fmt.Errorf("compress bloom bitmap: %w", err)
	}

	return base64.StdEncoding.EncodeToString(compressed), nil
}

// Decode rebuilds a filter from Encode output.
func Decode(content string, p Params, c compression.Compressor) (*Filter, error) {
	compressed, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %s", compaction.ErrDecode, err.Error())
	}

	bitmap, err := c.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %s", compaction.ErrDecode, err.Error())
	}

	return FromBitmap(p, bitmap)
}

func bitmapLen(m uint) int {
	return int((m+63)/64) * wordSize
}
