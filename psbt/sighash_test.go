// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"
)

// TestDecodeSighashTypeStandard tests that every member of the standard
// sighash set decodes to its typed value.
func TestDecodeSighashTypeStandard(t *testing.T) {
	t.Parallel()

	standard := []uint32{0x01, 0x02, 0x03, 0x81, 0x82, 0x83}

	for _, raw := range standard {
		sht, err := DecodeSighashType(raw)
		require.NoError(t, err)
		require.Equal(t, txscript.SigHashType(raw), sht)
	}
}

// TestDecodeSighashTypeNonStandard tests that any value outside the standard
// set fails with a NonStandardSighashTypeError carrying the exact raw value.
func TestDecodeSighashTypeNonStandard(t *testing.T) {
	t.Parallel()

	nonStandard := []uint32{
		0x00, 0x04, 0x80, 0x84, 0xff, 0x100, 0x81000000, 0xffffffff,
	}

	for _, raw := range nonStandard {
		_, err := DecodeSighashType(raw)
		require.Error(t, err)

		var sighashErr *NonStandardSighashTypeError
		require.ErrorAs(t, err, &sighashErr)
		require.Equal(t, raw, sighashErr.SighashType)
	}
}
