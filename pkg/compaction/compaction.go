/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package compaction packs a set of binary hashes into one compressed, base64 encoded blob.
//
// Layout before compression (all integers little endian uint32):
//
//	count | len[0] ... len[count-1] | bytes[0] ... bytes[count-1]
package compaction

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cre8/ephemeral-proof-of-issuance/pkg/compression"
)

const uint32Size = 4

// ErrDecode is returned for malformed base64, compressed or framed content.
var ErrDecode = errors.New("decode error")

type Opt func(*options)

type options struct {
	compressor compression.Compressor
}

// WithCompressor overrides the default deflate (zlib) compressor.
func WithCompressor(c compression.Compressor) Opt {
	return func(o *options) {
		o.compressor = c
	}
}

func applyOptions(opts []Opt) *options {
	o := &options{
		compressor: compression.NewZlib(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Pack frames entries without compressing them.
func Pack(entries [][]byte) ([]byte, error) {
	if uint64(len(entries)) > math.MaxUint32 {
		return nil, fmt.Errorf("too many entries: %d", len(entries))
	}

	total := uint32Size * (1 + len(entries))
	for _, e := range entries {
		total += len(e)
	}

	buf := make([]byte, uint32Size, total)
	binary.LittleEndian.PutUint32(buf, uint32(len(entries)))

	for _, e := range entries {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e)))
	}

	for _, e := range entries {
		buf = append(buf, e...)
	}

	return buf, nil
}

// Unpack reverses Pack.
func Unpack(data []byte) ([][]byte, error) {
	if len(data) < uint32Size {
		return nil, fmt.Errorf("%w: missing entry count", ErrDecode)
	}

	count := uint64(binary.LittleEndian.Uint32(data))
	data = data[uint32Size:]

	if uint64(len(data)) < count*uint32Size {
		return nil, fmt.Errorf("%w: truncated length table for %d entries", ErrDecode, count)
	}

	lengths := data[:count*uint32Size]
	body := data[count*uint32Size:]
	entries := make([][]byte, 0, count)

	for i := uint64(0); i < count; i++ {
		l := uint64(binary.LittleEndian.Uint32(lengths[i*uint32Size:]))
		if uint64(len(body)) < l {
			return nil, fmt.Errorf("%w: entry %d exceeds content", ErrDecode, i)
		}

		entry := make([]byte, l)
		copy(entry, body[:l])
		entries = append(entries, entry)
		body = body[l:]
	}

	if len(body) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrDecode, len(body))
	}

	return entries, nil
}

// Encode frames, compresses and base64 encodes entries.
func Encode(entries [][]byte, opts ...Opt) (string, error) {
	o := applyOptions(opts)

	packed, err := Pack(entries)
	if err != nil {
		return "", err
	}

	compressed, err := o.compressor.Compress(packed)
	if err != nil {
		return "", fmt.Errorf("compress entries: %w", err)
	}

	return base64.StdEncoding.EncodeToString(compressed), nil
}

// Decode reverses Encode. Every failure wraps ErrDecode.
func Decode(blob string, opts ...Opt) ([][]byte, error) {
	o := applyOptions(opts)

	compressed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %s", ErrDecode, err.Error())
	}

	packed, err := o.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %s", ErrDecode, err.Error())
	}

	return Unpack(packed)
}
