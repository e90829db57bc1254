// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcunit

import (
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
)

// floatStringPrecision is the number of decimal places used when
// rendering a fee rate. Three places keep low rates (e.g. 0.001 sat/vb)
// from rounding to zero.
const floatStringPrecision = 3

// SatPerVByte is a fee rate in satoshis per virtual byte. The rate is
// kept as a rational number to avoid rounding errors in conversions.
type SatPerVByte struct {
	rate *big.Rat
}

// NewSatPerVByte creates a fee rate from a whole sat/vb amount.
func NewSatPerVByte(rate btcutil.Amount) SatPerVByte {
	return SatPerVByte{rate: big.NewRat(int64(rate), 1)}
}

// CalcSatPerVByte derives the fee rate paid by a transaction of the
// given virtual size. A zero size yields a zero rate.
func CalcSatPerVByte(fee btcutil.Amount, vb VByte) SatPerVByte {
	if vb == 0 {
		return NewSatPerVByte(0)
	}

	return SatPerVByte{rate: big.NewRat(int64(fee), int64(vb))}
}

// FeeForVByte returns the fee this rate yields for a transaction of the
// given virtual size, rounded down.
func (s SatPerVByte) FeeForVByte(vb VByte) btcutil.Amount {
	total := new(big.Rat).Mul(s.rate, big.NewRat(int64(vb), 1))
	fee := new(big.Int).Quo(total.Num(), total.Denom())

	return btcutil.Amount(fee.Int64())
}

// Equal returns true if the two rates are numerically equal.
func (s SatPerVByte) Equal(other SatPerVByte) bool {
	return s.rate.Cmp(other.rate) == 0
}

// String returns the rate as a decimal with the sat/vb suffix.
func (s SatPerVByte) String() string {
	return s.rate.FloatString(floatStringPrecision) + " sat/vb"
}
