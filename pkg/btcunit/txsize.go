// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package btcunit provides types for dealing with bitcoin transaction
// sizes and fee rates.
package btcunit

import (
	"fmt"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// WeightUnit expresses a transaction size in weight units. The tx weight
// is calculated as `base tx size * 3 + total tx size`, where the base size
// excludes witness data.
type WeightUnit uint64

// ToVB converts the weight to virtual bytes, rounding up. One vbyte is
// four weight units.
func (wu WeightUnit) ToVB() VByte {
	return VByte((wu + blockchain.WitnessScaleFactor - 1) /
		blockchain.WitnessScaleFactor)
}

// String returns the weight with its unit suffix.
func (wu WeightUnit) String() string {
	return fmt.Sprintf("%d wu", uint64(wu))
}

// VByte expresses a transaction size in virtual bytes.
type VByte uint64

// ToWU converts the size to weight units.
func (vb VByte) ToWU() WeightUnit {
	return WeightUnit(vb * blockchain.WitnessScaleFactor)
}

// String returns the size with its unit suffix.
func (vb VByte) String() string {
	return fmt.Sprintf("%d vb", uint64(vb))
}

// TxWeight returns the weight of the given transaction.
func TxWeight(tx *wire.MsgTx) WeightUnit {
	return WeightUnit(blockchain.GetTransactionWeight(btcutil.NewTx(tx)))
}
