// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcpsbt/psbt"
)

// sqlQueries holds the per-dialect SQL statements used by SQLStore. The
// schema is identical across backends, only the placeholder syntax
// differs.
type sqlQueries struct {
	upsertPacket string
	getPacket    string
	deletePacket string
	listPackets  string
}

// sqliteQueries is the statement set for the SQLite backend.
var sqliteQueries = sqlQueries{
	upsertPacket: `INSERT INTO psbt_packets (txid, label, raw_packet, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (txid) DO UPDATE SET
			label = excluded.label,
			raw_packet = excluded.raw_packet,
			updated_at = excluded.updated_at`,
	getPacket: `SELECT label, raw_packet, updated_at FROM psbt_packets
		WHERE txid = ?`,
	deletePacket: `DELETE FROM psbt_packets WHERE txid = ?`,
	listPackets: `SELECT txid, label, updated_at FROM psbt_packets
		ORDER BY updated_at DESC`,
}

// postgresQueries is the statement set for the PostgreSQL backend.
var postgresQueries = sqlQueries{
	upsertPacket: `INSERT INTO psbt_packets (txid, label, raw_packet, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (txid) DO UPDATE SET
			label = excluded.label,
			raw_packet = excluded.raw_packet,
			updated_at = excluded.updated_at`,
	getPacket: `SELECT label, raw_packet, updated_at FROM psbt_packets
		WHERE txid = $1`,
	deletePacket: `DELETE FROM psbt_packets WHERE txid = $1`,
	listPackets: `SELECT txid, label, updated_at FROM psbt_packets
		ORDER BY updated_at DESC`,
}

// SQLStore is the SQL implementation of the Store interface, shared by
// the SQLite and PostgreSQL backends.
type SQLStore struct {
	db      *sql.DB
	queries sqlQueries
}

// Compile-time check that SQLStore satisfies the Store interface.
var _ Store = (*SQLStore)(nil)

// execInTx executes a function within a database transaction. The
// transaction is committed if the function returns nil and rolled back
// otherwise.
func execInTx(ctx context.Context, db *sql.DB,
	fn func(tx *sql.Tx) error) error {

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v "+
				"(original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// PutPacket validates and stores the given packet, overwriting any packet
// previously stored under the same txid.
//
// This is part of the Store interface.
func (s *SQLStore) PutPacket(ctx context.Context,
	params PutPacketParams) (chainhash.Hash, error) {

	txid, raw, err := serializePacket(params.Packet)
	if err != nil {
		return chainhash.Hash{}, err
	}

	err = execInTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(
			ctx, s.queries.upsertPacket, txid[:], params.Label,
			raw, time.Now().UTC().Unix(),
		)
		return err
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
func (s *SQLStore) GetPacket(ctx context.Context,
	txid chainhash.Hash) (*psbt.Packet, error) {

	var (
		label     string
		raw       []byte
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, s.queries.getPacket, txid[:]).Scan(
		&label, &raw, &updatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrPacketNotFound

	case err != nil:
		return nil, err
	}

	return deserializePacket(raw)
}

// MergePacket merges the given packet into the one already stored under
// the same txid and persists the result. If no packet is stored yet, the
// given packet is stored as-is. The merged packet is returned.
//
// This is part of the Store interface.
func (s *SQLStore) MergePacket(ctx context.Context,
	packet *psbt.Packet) (*psbt.Packet, error) {

	txid, raw, err := serializePacket(packet)
	if err != nil {
		return nil, err
	}

	var merged *psbt.Packet
	err = execInTx(ctx, s.db, func(tx *sql.Tx) error {
		var (
			label       string
			existingRaw []byte
			updatedAt   int64
		)
		err := tx.QueryRowContext(
			ctx, s.queries.getPacket, txid[:],
		).Scan(&label, &existingRaw, &updatedAt)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			// First sighting of this transaction, store the
			// packet unchanged.
			merged = packet

			_, err := tx.ExecContext(
				ctx, s.queries.upsertPacket, txid[:], "",
				raw, time.Now().UTC().Unix(),
			)
			return err

		case err != nil:
			return err
		}

		existing, err := deserializePacket(existingRaw)
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

		_, err = tx.ExecContext(
			ctx, s.queries.upsertPacket, txid[:], label,
			mergedRaw, time.Now().UTC().Unix(),
		)
		return err
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
func (s *SQLStore) DeletePacket(ctx context.Context,
	txid chainhash.Hash) error {

	return execInTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(
			ctx, s.queries.deletePacket, txid[:],
		)
		if err != nil {
			return err
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrPacketNotFound
		}

		return nil
	})
}

// ListPackets returns metadata for all stored packets, most recently
// updated first.
//
// This is part of the Store interface.
func (s *SQLStore) ListPackets(ctx context.Context) ([]PacketInfo, error) {
	rows, err := s.db.QueryContext(ctx, s.queries.listPackets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []PacketInfo
	for rows.Next() {
		var (
			rawTxid   []byte
			label     string
			updatedAt int64
		)
		if err := rows.Scan(&rawTxid, &label, &updatedAt); err != nil {
			return nil, err
		}

		txid, err := chainhash.NewHash(rawTxid)
		if err != nil {
			return nil, err
		}

		infos = append(infos, PacketInfo{
			Txid:      *txid,
			Label:     label,
			UpdatedAt: time.Unix(updatedAt, 0).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return infos, nil
}
