// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// TestMergeDifferentUnsignedTx tests that merging two packets built around
// different unsigned transactions fails with an UnexpectedUnsignedTxError
// carrying the receiver's transaction as expected and the argument's as
// actual.
func TestMergeDifferentUnsignedTx(t *testing.T) {
	t.Parallel()

	// Arrange: two templates differing in lock time, so their txids
	// differ.
	txA := testUnsignedTx()
	txB := testUnsignedTx()
	txB.LockTime = 500_000

	packetA, err := NewFromUnsignedTx(txA)
	require.NoError(t, err)
	packetB, err := NewFromUnsignedTx(txB)
	require.NoError(t, err)

	// Act.
	err = packetA.Merge(packetB)

	// Assert.
	var mergeErr *UnexpectedUnsignedTxError
	require.ErrorAs(t, err, &mergeErr)
	require.Equal(t, txA, mergeErr.Expected)
	require.Equal(t, txB, mergeErr.Actual)
}

// TestMergeSameUnsignedTx tests that merging two views of the same
// transaction unions their partial signatures and fills empty singleton
// fields, with the receiver winning on conflicts.
func TestMergeSameUnsignedTx(t *testing.T) {
	t.Parallel()

	// Arrange: two packets over the same template, each holding one
	// signer's partial signature.
	packetA, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)
	packetB, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	sigA := &PartialSig{
		PubKey:    testPubKey(t),
		Signature: []byte{0x30, 0x0a},
	}
	sigB := &PartialSig{
		PubKey:    testPubKey(t),
		Signature: []byte{0x30, 0x0b},
	}

	packetA.Inputs[0].PartialSigs = []*PartialSig{sigA}
	packetA.Inputs[0].SighashType = txscript.SigHashAll

	packetB.Inputs[0].PartialSigs = []*PartialSig{sigB}
	packetB.Inputs[0].SighashType = txscript.SigHashSingle
	packetB.Inputs[0].RedeemScript = []byte{0x51}
	packetB.Outputs[0].WitnessScript = []byte{0x52}

	// Act.
	require.NoError(t, packetA.Merge(packetB))

	// Assert: both signatures present, receiver's sighash kept, empty
	// fields adopted from the other packet.
	require.ElementsMatch(
		t, []*PartialSig{sigA, sigB}, packetA.Inputs[0].PartialSigs,
	)
	require.Equal(t, txscript.SigHashAll, packetA.Inputs[0].SighashType)
	require.Equal(t, []byte{0x51}, packetA.Inputs[0].RedeemScript)
	require.Equal(t, []byte{0x52}, packetA.Outputs[0].WitnessScript)
}

// TestMergeIdempotentForDuplicates tests that merging a packet carrying
// entries the receiver already has does not duplicate them.
func TestMergeIdempotentForDuplicates(t *testing.T) {
	t.Parallel()

	packetA, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)
	packetB, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	sig := &PartialSig{
		PubKey:    testPubKey(t),
		Signature: []byte{0x30, 0x0a},
	}
	packetA.Inputs[0].PartialSigs = []*PartialSig{sig}
	packetB.Inputs[0].PartialSigs = []*PartialSig{sig}

	preimage := []byte("shared")
	hp := &HashPreimage{
		Kind:     HashKindSha256,
		Hash:     HashKindSha256.Hash(preimage),
		Preimage: preimage,
	}
	packetA.Inputs[0].HashPreimages = []*HashPreimage{hp}
	packetB.Inputs[0].HashPreimages = []*HashPreimage{hp}

	require.NoError(t, packetA.Merge(packetB))

	require.Len(t, packetA.Inputs[0].PartialSigs, 1)
	require.Len(t, packetA.Inputs[0].HashPreimages, 1)
}

// TestCombine tests folding several packets into one, including the empty
// and incompatible cases.
func TestCombine(t *testing.T) {
	t.Parallel()

	t.Run("no packets", func(t *testing.T) {
		t.Parallel()

		_, err := Combine()
		require.ErrorIs(t, err, ErrNoPackets)
	})

	t.Run("three compatible packets", func(t *testing.T) {
		t.Parallel()

		packets := make([]*Packet, 3)
		sigs := make([]*PartialSig, 3)
		for i := range packets {
			packet, err := NewFromUnsignedTx(testUnsignedTx())
			require.NoError(t, err)

			sigs[i] = &PartialSig{
				PubKey:    testPubKey(t),
				Signature: []byte{0x30, byte(i)},
			}
			packet.Inputs[0].PartialSigs = []*PartialSig{sigs[i]}
			packets[i] = packet
		}

		combined, err := Combine(packets...)
		require.NoError(t, err)
		require.Same(t, packets[0], combined)
		require.ElementsMatch(
			t, sigs, combined.Inputs[0].PartialSigs,
		)
	})

	t.Run("one incompatible packet aborts", func(t *testing.T) {
		t.Parallel()

		packetA, err := NewFromUnsignedTx(testUnsignedTx())
		require.NoError(t, err)

		otherTx := testUnsignedTx()
		otherTx.TxOut[0].Value++
		packetB, err := NewFromUnsignedTx(otherTx)
		require.NoError(t, err)

		_, err = Combine(packetA, packetB)

		var mergeErr *UnexpectedUnsignedTxError
		require.ErrorAs(t, err, &mergeErr)
	})
}

// TestMergeGlobalUnknowns tests that global unknown entries are unioned by
// their full raw key.
func TestMergeGlobalUnknowns(t *testing.T) {
	t.Parallel()

	packetA, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)
	packetB, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	shared := &Unknown{Key: []byte{0xfc, 0x01}, Value: []byte{0x01}}
	packetA.Unknowns = []*Unknown{shared}
	packetB.Unknowns = []*Unknown{
		shared,
		{Key: []byte{0xfc, 0x02}, Value: []byte{0x02}},
	}

	require.NoError(t, packetA.Merge(packetB))
	require.Len(t, packetA.Unknowns, 2)
}

// TestMergePreservesWitnessData is a regression guard: merging must never
// touch the unsigned transaction itself.
func TestMergePreservesWitnessData(t *testing.T) {
	t.Parallel()

	packetA, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)
	packetB, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	before := packetA.UnsignedTx.TxHash()
	require.NoError(t, packetA.Merge(packetB))
	require.Equal(t, before, packetA.UnsignedTx.TxHash())

	for _, txIn := range packetA.UnsignedTx.TxIn {
		require.Empty(t, txIn.SignatureScript)
		require.Empty(t, [][]byte(txIn.Witness))
	}
}

// TestMergeAdoptsUtxoData tests that UTXO information flows from the other
// packet when the receiver has none.
func TestMergeAdoptsUtxoData(t *testing.T) {
	t.Parallel()

	packetA, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)
	packetB, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	utxo := &wire.TxOut{Value: 1_000, PkScript: []byte{0x51}}
	packetB.Inputs[0].WitnessUtxo = utxo

	require.NoError(t, packetA.Merge(packetB))
	require.Equal(t, utxo, packetA.Inputs[0].WitnessUtxo)
}

// TestMergeMisalignedMaps tests that merging refuses packets whose metadata
// slices don't line up with their unsigned transaction, on either side,
// instead of indexing out of range. Both Packet and its fields are exported,
// so callers can hand in packets assembled by hand.
func TestMergeMisalignedMaps(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(receiver, arg *Packet)
		wantErr error
	}{{
		name: "argument missing input maps",
		mutate: func(receiver, arg *Packet) {
			arg.Inputs = nil
		},
		wantErr: ErrUnmatchedInputCount,
	}, {
		name: "argument missing output maps",
		mutate: func(receiver, arg *Packet) {
			arg.Outputs = arg.Outputs[:1]
		},
		wantErr: ErrUnmatchedOutputCount,
	}, {
		name: "receiver missing input maps",
		mutate: func(receiver, arg *Packet) {
			receiver.Inputs = nil
		},
		wantErr: ErrUnmatchedInputCount,
	}, {
		name: "argument without unsigned tx",
		mutate: func(receiver, arg *Packet) {
			arg.UnsignedTx = nil
		},
		wantErr: ErrMustHaveUnsignedTx,
	}}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Arrange: two well-formed views of the same
			// transaction, then break one of them.
			receiver, err := NewFromUnsignedTx(testUnsignedTx())
			require.NoError(t, err)
			arg, err := NewFromUnsignedTx(testUnsignedTx())
			require.NoError(t, err)

			tc.mutate(receiver, arg)

			// Act.
			err = receiver.Merge(arg)

			// Assert.
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestMergeBareArgumentPacket tests the bare hand-assembled packet case: a
// packet holding only the unsigned transaction, with no per-input or
// per-output maps at all, is rejected rather than crashing the merge.
func TestMergeBareArgumentPacket(t *testing.T) {
	t.Parallel()

	receiver, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	bare := &Packet{UnsignedTx: testUnsignedTx()}

	err = receiver.Merge(bare)
	require.ErrorIs(t, err, ErrUnmatchedInputCount)
}
