// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"github.com/btcsuite/btcd/wire"
)

// MinTxVersion is the lowest transaction version that we'll permit.
const MinTxVersion = 1

// New, on provision of an input and output 'skeleton' for the transaction,
// returns a new partially populated Packet. The populated packet will
// include the unsigned transaction, and the set of known inputs and outputs
// contained within the unsigned transaction. The values of nLockTime,
// nSequence (per input) and transaction version must be specified here. Note
// that the default nSequence value is wire.MaxTxInSequenceNum. Referencing
// the PSBT BIP, this function serves the role of the Creator.
func New(inputs []*wire.OutPoint, outputs []*wire.TxOut, version int32,
	nLockTime uint32, nSequences []uint32) (*Packet, error) {

	// There must be one sequence number per input, and the transaction
	// version must be at least our minimum allowed version.
	if version < MinTxVersion || len(nSequences) != len(inputs) {
		return nil, ErrInvalidCreatorInput
	}

	unsignedTx := wire.NewMsgTx(version)
	unsignedTx.LockTime = nLockTime
	for i, in := range inputs {
		unsignedTx.AddTxIn(&wire.TxIn{
			PreviousOutPoint: *in,
			Sequence:         nSequences[i],
		})
	}
	for _, out := range outputs {
		unsignedTx.AddTxOut(out)
	}

	// The input and output maps start empty; each must be of length
	// matching the unsigned transaction.
	pInputs := make([]PInput, len(unsignedTx.TxIn))
	pOutputs := make([]POutput, len(unsignedTx.TxOut))

	return &Packet{
		UnsignedTx: unsignedTx,
		Inputs:     pInputs,
		Outputs:    pOutputs,
	}, nil
}
