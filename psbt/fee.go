// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// SumUtxoInputValues attempts to extract the total input value from all
// UTXO information attached to the packet's inputs. An error is returned
// if an input carries no UTXO information or its non-witness UTXO does
// not match the outpoint it is spending.
func (p *Packet) SumUtxoInputValues() (btcutil.Amount, error) {
	if len(p.Inputs) != len(p.UnsignedTx.TxIn) {
		return 0, ErrUnmatchedInputCount
	}

	var sum btcutil.Amount
	for idx, pIn := range p.Inputs {
		switch {
		case pIn.WitnessUtxo != nil:
			sum += btcutil.Amount(pIn.WitnessUtxo.Value)

		case pIn.NonWitnessUtxo != nil:
			prevOut := p.UnsignedTx.TxIn[idx].PreviousOutPoint
			utxOuts := pIn.NonWitnessUtxo.TxOut
			if prevOut.Index >= uint32(len(utxOuts)) {
				return 0, fmt.Errorf("input %d non-witness "+
					"utxo has no output %d", idx,
					prevOut.Index)
			}

			sum += btcutil.Amount(utxOuts[prevOut.Index].Value)

		default:
			return 0, fmt.Errorf("input %d has no utxo "+
				"information", idx)
		}
	}

	return sum, nil
}

// SumOutputValues returns the total value of the unsigned transaction's
// outputs.
func (p *Packet) SumOutputValues() btcutil.Amount {
	var sum btcutil.Amount
	for _, txOut := range p.UnsignedTx.TxOut {
		sum += btcutil.Amount(txOut.Value)
	}

	return sum
}

// Fee returns the miner fee the packet's transaction pays, which requires
// UTXO information to be attached to every input.
func (p *Packet) Fee() (btcutil.Amount, error) {
	inputSum, err := p.SumUtxoInputValues()
	if err != nil {
		return 0, err
	}

	fee := inputSum - p.SumOutputValues()
	if fee < 0 {
		return 0, fmt.Errorf("outputs spend %v more than inputs "+
			"provide", -fee)
	}

	return fee, nil
}
