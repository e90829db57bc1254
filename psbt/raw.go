// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
	fn "github.com/lightningnetwork/lnd/fn/v2"
)

// Key is the decoded key of a single PSBT key-value pair: a type byte plus an
// opaque byte sequence. Two keys are identical only if both the type and the
// data match, which is the identity used for duplicate detection.
type Key struct {
	// Type identifies the meaning of the pair within its map.
	Type uint8

	// Data is the remaining key bytes. Empty for singleton fields.
	Data []byte
}

// String renders the key as its type byte followed by the hex encoded key
// data. The rendering is stable and is embedded in error messages.
func (k Key) String() string {
	if len(k.Data) == 0 {
		return fmt.Sprintf("type: %#x", k.Type)
	}

	return fmt.Sprintf("type: %#x, key: %s", k.Type,
		hex.EncodeToString(k.Data))
}

// KeyValue is one decoded key-value pair of a PSBT map.
type KeyValue struct {
	Key   Key
	Value []byte
}

// readKeyValue reads a single key-value pair from r. A map in the PSBT wire
// format is terminated by a zero-length key; that terminator is surfaced as
// fn.None rather than an error, since running out of pairs is the expected
// way every map parsing loop ends.
func readKeyValue(r io.Reader) (fn.Option[KeyValue], error) {
	none := fn.None[KeyValue]()

	keyBytes, err := wire.ReadVarBytes(r, 0, MaxPsbtKeyLength, "PSBT key")
	if err != nil {
		return none, err
	}

	// A zero-length key is the separator that ends the current map.
	if len(keyBytes) == 0 {
		return none, nil
	}

	value, err := wire.ReadVarBytes(
		r, 0, MaxPsbtValueLength, "PSBT value",
	)
	if err != nil {
		return none, err
	}

	return fn.Some(KeyValue{
		Key: Key{
			Type: keyBytes[0],
			Data: keyBytes[1:],
		},
		Value: value,
	}), nil
}

// serializeKVpair writes out the passed key and value with lengths prefixed
// as compact size integers, matching the PSBT wire format.
func serializeKVpair(w io.Writer, key []byte, value []byte) error {
	err := wire.WriteVarBytes(w, 0, key)
	if err != nil {
		return err
	}

	return wire.WriteVarBytes(w, 0, value)
}

// serializeKVPairWithType writes out a key-value pair whose key is composed
// of a type byte followed by optional key data.
func serializeKVPairWithType(w io.Writer, kt uint8, keydata []byte,
	value []byte) error {

	serializedKey := append([]byte{kt}, keydata...)

	return serializeKVpair(w, serializedKey, value)
}
