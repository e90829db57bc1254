// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"sort"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcpsbt/psbt"
	"github.com/btcsuite/btcwallet/walletdb"
)

var (
	// packetBucketKey is the top-level bucket that holds one entry per
	// stored packet, keyed by the txid of the unsigned transaction.
	packetBucketKey = []byte("psbtpackets")
)

// KVStore is the walletdb (key/value) implementation of the Store interface.
// It works with any registered walletdb backend, most commonly bdb (bbolt).
type KVStore struct {
	db walletdb.DB
}

// Compile-time check that KVStore satisfies the Store interface.
var _ Store = (*KVStore)(nil)

// NewKVStore creates a new walletdb-backed packet store, creating the
// backing bucket if it does not yet exist.
func NewKVStore(dbConn walletdb.DB) (*KVStore, error) {
	if dbConn == nil {
		return nil, ErrNilDB
	}

	err := walletdb.Update(dbConn, func(tx walletdb.ReadWriteTx) error {
		_, err := tx.CreateTopLevelBucket(packetBucketKey)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &KVStore{db: dbConn}, nil
}

// PutPacket validates and stores the given packet, overwriting any packet
// previously stored under the same txid.
//
// This is part of the Store interface.
func (s *KVStore) PutPacket(ctx context.Context,
	params PutPacketParams) (chainhash.Hash, error) {

	txid, raw, err := serializePacket(params.Packet)
	if err != nil {
		return chainhash.Hash{}, err
	}

	encoded, err := encodeRecord(&packetRecord{
		rawPacket: raw,
		label:     params.Label,
		updatedAt: time.Now().UTC(),
	})
	if err != nil {
		return chainhash.Hash{}, err
	}

	err = walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		bucket := tx.ReadWriteBucket(packetBucketKey)
		return bucket.Put(txid[:], encoded)
	})
	if err != nil {
		return chainhash.Hash{}, err
	}

	log.Debugf("Stored packet %v (label=%q, %d bytes)", txid,
		params.Label, len(raw))

	return txid, nil
}

// GetPacket fetches and re-parses the packet stored under the given txid.
//
// This is part of the Store interface.
func (s *KVStore) GetPacket(ctx context.Context,
	txid chainhash.Hash) (*psbt.Packet, error) {

	var raw []byte
	err := walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		bucket := tx.ReadBucket(packetBucketKey)

		encoded := bucket.Get(txid[:])
		if encoded == nil {
			return ErrPacketNotFound
		}

		rec, err := decodeRecord(encoded)
		if err != nil {
			return err
		}
		raw = rec.rawPacket

		return nil
	})
	if err != nil {
		return nil, err
	}

	return deserializePacket(raw)
}

// MergePacket merges the given packet into the one already stored under
// the same txid and persists the result. If no packet is stored yet, the
// given packet is stored as-is. The merged packet is returned.
//
// This is part of the Store interface.
func (s *KVStore) MergePacket(ctx context.Context,
	packet *psbt.Packet) (*psbt.Packet, error) {

	txid, raw, err := serializePacket(packet)
	if err != nil {
		return nil, err
	}

	var merged *psbt.Packet
	err = walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		bucket := tx.ReadWriteBucket(packetBucketKey)

		encoded := bucket.Get(txid[:])
		if encoded == nil {
			// First sighting of this transaction, store the
			// packet unchanged.
			merged = packet

			record, err := encodeRecord(&packetRecord{
				rawPacket: raw,
				updatedAt: time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			return bucket.Put(txid[:], record)
		}

		rec, err := decodeRecord(encoded)
		if err != nil {
			return err
		}

		existing, err := deserializePacket(rec.rawPacket)
		if err != nil {
			return err
		}

		if err := existing.Merge(packet); err != nil {
			return err
		}
		merged = existing

		_, mergedRaw, err := serializePacket(merged)
		if err != nil {
			return err
		}

		record, err := encodeRecord(&packetRecord{
			rawPacket: mergedRaw,
			label:     rec.label,
			updatedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		return bucket.Put(txid[:], record)
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("Merged packet %v", txid)

	return merged, nil
}

// DeletePacket removes the packet stored under the given txid.
//
// This is part of the Store interface.
func (s *KVStore) DeletePacket(ctx context.Context,
	txid chainhash.Hash) error {

	return walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		bucket := tx.ReadWriteBucket(packetBucketKey)

		if bucket.Get(txid[:]) == nil {
			return ErrPacketNotFound
		}

		return bucket.Delete(txid[:])
	})
}

// ListPackets returns metadata for all stored packets, most recently
// updated first.
//
// This is part of the Store interface.
func (s *KVStore) ListPackets(ctx context.Context) ([]PacketInfo, error) {
	var infos []PacketInfo
	err := walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		bucket := tx.ReadBucket(packetBucketKey)

		return bucket.ForEach(func(k, v []byte) error {
			txid, err := chainhash.NewHash(k)
			if err != nil {
				return err
			}

			rec, err := decodeRecord(v)
			if err != nil {
				return err
			}

			infos = append(infos, PacketInfo{
				Txid:      *txid,
				Label:     rec.label,
				UpdatedAt: rec.updatedAt,
			})

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})

	return infos, nil
}
