/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import "errors"

var (
	// ErrDuplicateEntry is returned by strict stores when a ValidHash is inserted twice.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrMaxCascadeRoundsExceeded is returned by strict cascading stores that did not converge.
	ErrMaxCascadeRoundsExceeded = errors.New("max cascade rounds exceeded")
	// ErrSealed is returned when entries are added to a cascading store after its artifact was created.
	ErrSealed = errors.New("status list is sealed")
	// ErrUnsupportedKind is returned for an unknown status list kind.
	ErrUnsupportedKind = errors.New("unsupported status list kind")
)
