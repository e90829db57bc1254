// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Unknown is a key-value pair whose type is not part of the known BIP 174
// set. Unknown entries are preserved verbatim across parse and serialize.
type Unknown struct {
	// Key is the full raw key, type byte included.
	Key []byte

	// Value is the raw value.
	Value []byte
}

// readTxOut decodes a wire transaction output from the value bytes of a
// witness UTXO field.
func readTxOut(txout []byte) (*wire.TxOut, error) {
	if len(txout) < 10 {
		return nil, &InvalidKeyError{
			Key: Key{Type: uint8(WitnessUtxoType)},
		}
	}

	valueSer := binary.LittleEndian.Uint64(txout[:8])

	scriptPubKey, err := wire.ReadVarBytes(
		bytes.NewReader(txout[8:]), 0, txscript.MaxScriptSize,
		"pubkey script",
	)
	if err != nil {
		return nil, err
	}

	return wire.NewTxOut(int64(valueSer), scriptPubKey), nil
}

// TxOutsEqual returns true if two transaction outputs are identical in both
// value and pkScript.
func TxOutsEqual(out1, out2 *wire.TxOut) bool {
	if out1 == nil || out2 == nil {
		return out1 == out2
	}

	return out1.Value == out2.Value &&
		bytes.Equal(out1.PkScript, out2.PkScript)
}

// VerifyOutputsEqual verifies that the two slices of transaction outputs are
// deep equal.
func VerifyOutputsEqual(outs1, outs2 []*wire.TxOut) error {
	if len(outs1) != len(outs2) {
		return ErrUnmatchedOutputCount
	}

	for i := range outs1 {
		if !TxOutsEqual(outs1[i], outs2[i]) {
			return ErrUnmatchedOutput
		}
	}

	return nil
}

// VerifyInputOutputLen checks that a packet's input and output metadata
// slices line up with the unsigned transaction, and optionally that at least
// one input and output exist.
func VerifyInputOutputLen(packet *Packet, needInputs, needOutputs bool) error {
	if packet == nil || packet.UnsignedTx == nil {
		return ErrMustHaveUnsignedTx
	}

	if len(packet.Inputs) != len(packet.UnsignedTx.TxIn) {
		return ErrUnmatchedInputCount
	}
	if len(packet.Outputs) != len(packet.UnsignedTx.TxOut) {
		return ErrUnmatchedOutputCount
	}

	if needInputs && len(packet.UnsignedTx.TxIn) == 0 {
		return ErrNoInputs
	}
	if needOutputs && len(packet.UnsignedTx.TxOut) == 0 {
		return ErrNoOutputs
	}

	return nil
}
