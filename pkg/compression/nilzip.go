/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package compression

// NilZip passes bytes through untouched.
type NilZip struct {
}

func NewNilZip() *NilZip {
	return &NilZip{}
}

func (n *NilZip) Name() string {
	return None
}

func (n *NilZip) Compress(input []byte) ([]byte, error) {
	return input, nil
}

func (n *NilZip) Decompress(input []byte) ([]byte, error) {
	return input, nil
}
