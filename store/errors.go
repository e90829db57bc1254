// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import "errors"

var (
	// ErrPacketNotFound is returned when no packet is stored under the
	// requested txid.
	ErrPacketNotFound = errors.New("psbt packet not found")

	// ErrNilDB is returned when a store is constructed around a nil
	// database handle.
	ErrNilDB = errors.New("nil database handle")

	// ErrNilPacket is returned when a nil packet is passed for storage.
	ErrNilPacket = errors.New("nil psbt packet")
)
