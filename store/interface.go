// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store persists in-progress PSBT packets between the steps of a
// multi-party signing workflow. Packets are keyed by the txid of their
// unsigned transaction, which is also the identity the codec's merge rules
// are built around.
//
// Three backends are provided: a walletdb (bbolt) key-value store, SQLite
// and PostgreSQL. All of them round-trip packets through the psbt codec, so
// a packet that violates the format's validation rules can be neither
// stored nor loaded.
package store

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcpsbt/psbt"
)

// PacketInfo describes one stored packet without its full contents.
type PacketInfo struct {
	// Txid is the transaction id of the packet's unsigned transaction.
	Txid chainhash.Hash

	// Label is an optional human readable label supplied on storage.
	Label string

	// UpdatedAt is the time the packet was last written.
	UpdatedAt time.Time
}

// PutPacketParams bundles the arguments for storing a packet.
type PutPacketParams struct {
	// Packet is the packet to store. It must pass its sanity check.
	Packet *psbt.Packet

	// Label is an optional human readable label for the packet.
	Label string
}

// Store is the interface all packet store backends implement.
type Store interface {
	// PutPacket stores the packet, overwriting any packet previously
	// stored under the same txid. The txid the packet was stored under
	// is returned.
	PutPacket(ctx context.Context,
		params PutPacketParams) (chainhash.Hash, error)

	// GetPacket returns the packet stored under the given txid, or
	// ErrPacketNotFound.
	GetPacket(ctx context.Context,
		txid chainhash.Hash) (*psbt.Packet, error)

	// MergePacket merges the passed packet into the one stored under the
	// same txid and persists the result, returning it. The stored and
	// passed packet must describe the same unsigned transaction; a
	// mismatch surfaces the codec's merge error unchanged. If no packet
	// is stored yet, the passed one is stored as is.
	MergePacket(ctx context.Context,
		packet *psbt.Packet) (*psbt.Packet, error)

	// DeletePacket removes the packet stored under the given txid, or
	// returns ErrPacketNotFound if there is none.
	DeletePacket(ctx context.Context, txid chainhash.Hash) error

	// ListPackets returns metadata for all stored packets, most
	// recently updated first.
	ListPackets(ctx context.Context) ([]PacketInfo, error)
}
