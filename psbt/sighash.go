// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"github.com/btcsuite/btcd/txscript"
)

// DecodeSighashType decodes a raw 32-bit sighash value into one of the
// standard sighash types. Any value outside the standard set, including any
// combination of extra bits, fails with a NonStandardSighashTypeError
// carrying the raw value.
func DecodeSighashType(raw uint32) (txscript.SigHashType, error) {
	switch txscript.SigHashType(raw) {
	case txscript.SigHashAll,
		txscript.SigHashNone,
		txscript.SigHashSingle,
		txscript.SigHashAll | txscript.SigHashAnyOneCanPay,
		txscript.SigHashNone | txscript.SigHashAnyOneCanPay,
		txscript.SigHashSingle | txscript.SigHashAnyOneCanPay:

		return txscript.SigHashType(raw), nil

	default:
		return 0, &NonStandardSighashTypeError{SighashType: raw}
	}
}
