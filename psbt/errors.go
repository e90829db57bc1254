// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

var (
	// ErrInvalidMagic is returned when the magic bytes of a serialized
	// PSBT do not match the required "psbt" prefix.
	ErrInvalidMagic = errors.New("invalid magic")

	// ErrInvalidSeparator is returned when the byte following the magic
	// bytes of a serialized PSBT is not the required 0xff separator.
	ErrInvalidSeparator = errors.New("invalid separator")

	// ErrUnsignedTxHasScriptSigs is returned when the unsigned transaction
	// embedded in a PSBT carries a non-empty signature script on one of
	// its inputs. Signatures must only ever live in the per-input maps.
	ErrUnsignedTxHasScriptSigs = errors.New(
		"the unsigned transaction has script sigs",
	)

	// ErrUnsignedTxHasScriptWitnesses is returned when the unsigned
	// transaction embedded in a PSBT carries a non-empty witness on one of
	// its inputs.
	ErrUnsignedTxHasScriptWitnesses = errors.New(
		"the unsigned transaction has script witnesses",
	)

	// ErrMustHaveUnsignedTx is returned when the global map of a PSBT
	// contains no unsigned transaction entry at all.
	ErrMustHaveUnsignedTx = errors.New(
		"partially signed transactions must have an unsigned transaction",
	)

	// ErrIncompletePacket is returned by Extract when the packet does not
	// yet have final script data for every input.
	ErrIncompletePacket = errors.New(
		"PSBT cannot be extracted as it is incomplete",
	)
)

// Structural helper errors used by API surfaces layered on top of the parse
// and merge rules. These are not part of the parse-time taxonomy above; they
// guard against packets whose metadata slices have drifted out of alignment
// with the unsigned transaction.
var (
	// ErrUnmatchedInputCount is returned when the number of per-input
	// maps does not match the number of transaction inputs.
	ErrUnmatchedInputCount = errors.New(
		"number of psbt inputs does not match number of tx inputs",
	)

	// ErrUnmatchedOutputCount is returned when the number of per-output
	// maps does not match the number of transaction outputs.
	ErrUnmatchedOutputCount = errors.New(
		"number of psbt outputs does not match number of tx outputs",
	)

	// ErrUnmatchedOutput is returned when two output slices expected to
	// be identical differ in one of their elements.
	ErrUnmatchedOutput = errors.New("outputs differ")

	// ErrNoInputs is returned when an operation requires at least one
	// input and the packet has none.
	ErrNoInputs = errors.New("psbt packet has no inputs")

	// ErrNoOutputs is returned when an operation requires at least one
	// output and the packet has none.
	ErrNoOutputs = errors.New("psbt packet has no outputs")

	// ErrInsanePInput is returned when serializing an input whose fields
	// conflict, e.g. both witness and non-witness UTXO set.
	ErrInsanePInput = errors.New("psbt input has conflicting fields")

	// ErrInvalidCreatorInput is returned by New when the transaction
	// version is below the minimum or the sequence count does not match
	// the input count.
	ErrInvalidCreatorInput = errors.New(
		"invalid parameters for psbt creation",
	)

	// ErrNoPackets is returned by Combine when called without any
	// packets.
	ErrNoPackets = errors.New("no psbt packets to combine")
)

// InvalidKeyError is returned when a key whose type byte falls in the known
// range violates the fixed shape required for that type, e.g. a singleton
// field carrying extra key data, or a value of the wrong length.
type InvalidKeyError struct {
	// Key is the offending raw key.
	Key Key
}

// Error implements the error interface.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key: %v", e.Key)
}

// DuplicateKeyError is returned when a key-value map contains two pairs that
// decode to an identical key. The key reported is the second occurrence.
type DuplicateKeyError struct {
	// Key is the duplicated raw key.
	Key Key
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %v", e.Key)
}

// UnexpectedUnsignedTxError is returned when attempting to merge two packets
// that describe different unsigned transactions.
type UnexpectedUnsignedTxError struct {
	// Expected is the unsigned transaction of the packet being merged
	// into.
	Expected *wire.MsgTx

	// Actual is the unsigned transaction of the packet being merged in.
	Actual *wire.MsgTx
}

// Error implements the error interface. Transactions are rendered by their
// txid, which is also the identity used for the compatibility check.
func (e *UnexpectedUnsignedTxError) Error() string {
	return fmt.Sprintf("different unsigned transaction: expected %v, "+
		"actual %v", e.Expected.TxHash(), e.Actual.TxHash())
}

// NonStandardSighashTypeError is returned when a sighash type field does not
// decode to one of the standard sighash types.
type NonStandardSighashTypeError struct {
	// SighashType is the raw 32-bit value that failed to decode.
	SighashType uint32
}

// Error implements the error interface.
func (e *NonStandardSighashTypeError) Error() string {
	return fmt.Sprintf("non-standard sighash type: %d", e.SighashType)
}

// HashParseError is returned when a hash value embedded in a PSBT cannot be
// decoded into a fixed-length digest. It wraps the failure reported by the
// underlying hash decoding so callers can recover the root cause.
type HashParseError struct {
	// Err is the underlying hash decoding failure.
	Err error
}

// Error implements the error interface.
func (e *HashParseError) Error() string {
	return fmt.Sprintf("hash parse error: %v", e.Err)
}

// Unwrap returns the underlying hash decoding failure.
func (e *HashParseError) Unwrap() error {
	return e.Err
}

// InvalidPreimageError is returned when a claimed preimage, hashed with the
// indicated algorithm, does not reproduce the expected digest. It carries
// the claimed bytes unmodified, not the recomputed digest, so the offending
// input data can be inspected directly.
type InvalidPreimageError struct {
	// HashKind is the hash algorithm the pair was checked under.
	HashKind HashKind

	// Preimage is the claimed preimage, as found in the PSBT.
	Preimage []byte

	// Hash is the expected digest, as found in the PSBT.
	Hash []byte
}

// Error implements the error interface. Byte sequences are hex encoded and
// the hash kind is rendered with its stable name, so the message is a stable
// public contract rather than structural debug output.
func (e *InvalidPreimageError) Error() string {
	return fmt.Sprintf("preimage %s does not match %v hash %s",
		hex.EncodeToString(e.Preimage), e.HashKind,
		hex.EncodeToString(e.Hash))
}
