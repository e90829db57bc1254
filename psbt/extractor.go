// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Extract returns the broadcast-ready transaction described by a complete
// packet, serving the role of the Extractor per the PSBT BIP. Each input of
// the returned transaction carries the final scriptSig and witness from its
// packet input. A packet with any unfinalized input yields
// ErrIncompletePacket.
func Extract(p *Packet) (*wire.MsgTx, error) {
	if !p.IsComplete() {
		return nil, ErrIncompletePacket
	}

	// The unsigned transaction stays untouched; signature data is filled
	// into a copy.
	finalTx := p.UnsignedTx.Copy()

	for i, txIn := range finalTx.TxIn {
		pInput := p.Inputs[i]

		if pInput.FinalScriptSig != nil {
			txIn.SignatureScript = pInput.FinalScriptSig
		}

		if pInput.FinalScriptWitness != nil {
			witness, err := parseWitnessStack(
				pInput.FinalScriptWitness,
			)
			if err != nil {
				return nil, err
			}
			txIn.Witness = witness
		}
	}

	return finalTx, nil
}

// parseWitnessStack decodes the value bytes of a final script witness
// field. The field stores the witness the same way the wire format does: an
// item count followed by that many var-byte items.
func parseWitnessStack(raw []byte) (wire.TxWitness, error) {
	r := bytes.NewReader(raw)

	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}

	witness := make(wire.TxWitness, count)
	for i := uint64(0); i < count; i++ {
		item, err := wire.ReadVarBytes(
			r, 0, txscript.MaxScriptSize, "witness item",
		)
		if err != nil {
			return nil, err
		}
		witness[i] = item
	}

	return witness, nil
}
