// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcpsbt/psbt"
	"github.com/lightningnetwork/lnd/tlv"
)

const (
	// typeRawPacket is the tlv record type for the serialized packet.
	typeRawPacket tlv.Type = 1

	// typeLabel is the tlv record type for the packet label.
	typeLabel tlv.Type = 2

	// typeUpdatedAt is the tlv record type for the last-update
	// timestamp, in unix seconds.
	typeUpdatedAt tlv.Type = 3
)

// packetRecord is the stored form of one packet: its serialization plus the
// metadata kept alongside it.
type packetRecord struct {
	rawPacket []byte
	label     string
	updatedAt time.Time
}

// serializePacket validates the packet and returns its binary
// serialization along with the txid it should be stored under. A packet
// that fails the codec's sanity check is never stored.
func serializePacket(packet *psbt.Packet) (chainhash.Hash, []byte, error) {
	var zero chainhash.Hash

	if packet == nil {
		return zero, nil, ErrNilPacket
	}
	if err := packet.SanityCheck(); err != nil {
		return zero, nil, err
	}

	var buf bytes.Buffer
	if err := packet.Serialize(&buf); err != nil {
		return zero, nil, err
	}

	return packet.UnsignedTx.TxHash(), buf.Bytes(), nil
}

// deserializePacket parses a stored packet serialization back through the
// codec, re-applying all parse-time validation rules.
func deserializePacket(raw []byte) (*psbt.Packet, error) {
	packet, err := psbt.NewFromRawBytes(bytes.NewReader(raw), false)
	if err != nil {
		return nil, fmt.Errorf("stored packet is invalid: %w", err)
	}

	return packet, nil
}

// encodeRecord encodes a packet record as a tlv stream.
func encodeRecord(rec *packetRecord) ([]byte, error) {
	labelBytes := []byte(rec.label)
	updatedAt := uint64(rec.updatedAt.Unix())

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeRawPacket, &rec.rawPacket),
		tlv.MakePrimitiveRecord(typeLabel, &labelBytes),
		tlv.MakePrimitiveRecord(typeUpdatedAt, &updatedAt),
	)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeRecord decodes a tlv stream produced by encodeRecord.
func decodeRecord(raw []byte) (*packetRecord, error) {
	var (
		rawPacket  []byte
		labelBytes []byte
		updatedAt  uint64
	)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeRawPacket, &rawPacket),
		tlv.MakePrimitiveRecord(typeLabel, &labelBytes),
		tlv.MakePrimitiveRecord(typeUpdatedAt, &updatedAt),
	)
	if err != nil {
		return nil, err
	}

	if err := stream.Decode(bytes.NewReader(raw)); err != nil {
		return nil, err
	}

	return &packetRecord{
		rawPacket: rawPacket,
		label:     string(labelBytes),
		updatedAt: time.Unix(int64(updatedAt), 0).UTC(),
	}, nil
}
