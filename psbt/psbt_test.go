// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// testUnsignedTx returns a minimal unsigned transaction with one input and
// two outputs, usable as a PSBT template.
func testUnsignedTx() *wire.MsgTx {
	tx := wire.NewMsgTx(2)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{
			Hash:  chainhash.Hash{0x01},
			Index: 0,
		},
		Sequence: wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{
		Value:    100_000,
		PkScript: []byte{txscript.OP_TRUE},
	})
	tx.AddTxOut(&wire.TxOut{
		Value:    50_000,
		PkScript: []byte{txscript.OP_FALSE},
	})

	return tx
}

// testPacketBytes serializes a bare packet built around testUnsignedTx.
func testPacketBytes(t *testing.T) []byte {
	t.Helper()

	packet, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, packet.Serialize(&buf))

	return buf.Bytes()
}

// testPubKey returns a freshly generated compressed public key.
func testPubKey(t *testing.T) []byte {
	t.Helper()

	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	return priv.PubKey().SerializeCompressed()
}

// TestNewFromRawBytesInvalidMagic tests that any byte stream not beginning
// with the "psbt" prefix fails with ErrInvalidMagic.
func TestNewFromRawBytesInvalidMagic(t *testing.T) {
	t.Parallel()

	raw := testPacketBytes(t)
	raw[0] ^= 0xff

	_, err := NewFromRawBytes(bytes.NewReader(raw), false)
	require.ErrorIs(t, err, ErrInvalidMagic)
}

// TestNewFromRawBytesInvalidSeparator tests that a stream with correct magic
// but a fifth byte other than 0xff fails with ErrInvalidSeparator.
func TestNewFromRawBytesInvalidSeparator(t *testing.T) {
	t.Parallel()

	raw := testPacketBytes(t)
	raw[4] = 0x00

	_, err := NewFromRawBytes(bytes.NewReader(raw), false)
	require.ErrorIs(t, err, ErrInvalidSeparator)
}

// TestNewFromRawBytesMissingUnsignedTx tests that a global map lacking the
// unsigned transaction entry fails with ErrMustHaveUnsignedTx, regardless of
// what other entries it contains.
func TestNewFromRawBytesMissingUnsignedTx(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		globalMap func(*bytes.Buffer)
	}{
		{
			name:      "empty global map",
			globalMap: func(*bytes.Buffer) {},
		},
		{
			name: "unknown entries only",
			globalMap: func(buf *bytes.Buffer) {
				err := serializeKVPairWithType(
					buf, 0xfc, []byte{0x01},
					[]byte{0x02},
				)
				require.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			buf.Write(psbtMagic[:])
			tc.globalMap(&buf)
			buf.WriteByte(0x00)

			_, err := NewFromRawBytes(
				bytes.NewReader(buf.Bytes()), false,
			)
			require.ErrorIs(t, err, ErrMustHaveUnsignedTx)
		})
	}
}

// TestNewFromRawBytesDuplicateGlobalKey tests that a global map carrying the
// unsigned transaction entry twice fails with a DuplicateKeyError reporting
// the duplicated key.
func TestNewFromRawBytesDuplicateGlobalKey(t *testing.T) {
	t.Parallel()

	var txBuf bytes.Buffer
	require.NoError(t, testUnsignedTx().SerializeNoWitness(&txBuf))

	var buf bytes.Buffer
	buf.Write(psbtMagic[:])
	for i := 0; i < 2; i++ {
		err := serializeKVPairWithType(
			&buf, uint8(UnsignedTxType), nil, txBuf.Bytes(),
		)
		require.NoError(t, err)
	}
	buf.WriteByte(0x00)

	_, err := NewFromRawBytes(bytes.NewReader(buf.Bytes()), false)

	var dupErr *DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, Key{Type: uint8(UnsignedTxType)}, dupErr.Key)
}

// TestUnsignedTxShape tests that a template carrying inline signature data
// is rejected, and that the script sig and witness checks are independent:
// an input with only a witness must not report the script sig error.
func TestUnsignedTxShape(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		mutate      func(*wire.MsgTx)
		expectedErr error
	}{
		{
			name: "script sig on first input",
			mutate: func(tx *wire.MsgTx) {
				tx.TxIn[0].SignatureScript = []byte{0x01}
			},
			expectedErr: ErrUnsignedTxHasScriptSigs,
		},
		{
			name: "witness only on first input",
			mutate: func(tx *wire.MsgTx) {
				tx.TxIn[0].Witness = wire.TxWitness{
					{0x01},
				}
			},
			expectedErr: ErrUnsignedTxHasScriptWitnesses,
		},
		{
			name: "script sig wins over witness on same input",
			mutate: func(tx *wire.MsgTx) {
				tx.TxIn[0].SignatureScript = []byte{0x01}
				tx.TxIn[0].Witness = wire.TxWitness{
					{0x01},
				}
			},
			expectedErr: ErrUnsignedTxHasScriptSigs,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := testUnsignedTx()
			tc.mutate(tx)

			_, err := NewFromUnsignedTx(tx)
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

// TestNewFromRawBytesScriptSigInTemplate tests that the template shape rule
// is also applied on the wire parsing path.
func TestNewFromRawBytesScriptSigInTemplate(t *testing.T) {
	t.Parallel()

	tx := testUnsignedTx()
	tx.TxIn[0].SignatureScript = []byte{0x51}

	var txBuf bytes.Buffer
	require.NoError(t, tx.SerializeNoWitness(&txBuf))

	var buf bytes.Buffer
	buf.Write(psbtMagic[:])
	err := serializeKVPairWithType(
		&buf, uint8(UnsignedTxType), nil, txBuf.Bytes(),
	)
	require.NoError(t, err)
	buf.WriteByte(0x00)

	_, err = NewFromRawBytes(bytes.NewReader(buf.Bytes()), false)
	require.ErrorIs(t, err, ErrUnsignedTxHasScriptSigs)
}

// TestRoundTrip tests that a packet with populated input and output maps
// survives a serialize and reparse unchanged.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	// Arrange: a packet with one decorated input and output.
	packet, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	preimage := []byte("preimage")
	packet.Inputs[0] = PInput{
		WitnessUtxo: &wire.TxOut{
			Value:    150_000,
			PkScript: []byte{txscript.OP_TRUE},
		},
		SighashType:   txscript.SigHashAll,
		WitnessScript: []byte{0x51, 0x52},
		PartialSigs: []*PartialSig{{
			PubKey:    testPubKey(t),
			Signature: []byte{0x30, 0x01, 0x01},
		}},
		Bip32Derivation: []*Bip32Derivation{{
			PubKey:               testPubKey(t),
			MasterKeyFingerprint: 0x01020304,
			Bip32Path:            []uint32{84, 0, 0},
		}},
		HashPreimages: []*HashPreimage{{
			Kind:     HashKindSha256,
			Hash:     HashKindSha256.Hash(preimage),
			Preimage: preimage,
		}},
	}
	packet.Outputs[1] = POutput{
		RedeemScript: []byte{0x51},
	}
	packet.Unknowns = []*Unknown{{
		Key:   []byte{0xfc, 0xaa},
		Value: []byte{0xbb},
	}}

	// Act: serialize and parse back, both in binary and base64 form.
	var buf bytes.Buffer
	require.NoError(t, packet.Serialize(&buf))

	reparsed, err := NewFromRawBytes(bytes.NewReader(buf.Bytes()), false)
	require.NoError(t, err)

	b64, err := packet.B64Encode()
	require.NoError(t, err)
	fromB64, err := NewFromRawBytes(strings.NewReader(b64), true)
	require.NoError(t, err)

	// Assert: all three packets are identical.
	require.Equal(t, packet, reparsed)
	require.Equal(t, packet, fromB64)
}

// TestSanityCheckMisalignedMaps tests that a packet whose metadata slices do
// not line up with the unsigned transaction fails its sanity check.
func TestSanityCheckMisalignedMaps(t *testing.T) {
	t.Parallel()

	packet, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	packet.Inputs = nil
	require.ErrorIs(t, packet.SanityCheck(), ErrUnmatchedInputCount)

	packet, err = NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	packet.Outputs = packet.Outputs[:1]
	require.ErrorIs(t, packet.SanityCheck(), ErrUnmatchedOutputCount)
}

// TestIsCompleteAndExtract tests completeness detection and final
// transaction extraction.
func TestIsCompleteAndExtract(t *testing.T) {
	t.Parallel()

	packet, err := NewFromUnsignedTx(testUnsignedTx())
	require.NoError(t, err)

	// An unfinalized input means no extraction.
	require.False(t, packet.IsComplete())
	_, err = Extract(packet)
	require.ErrorIs(t, err, ErrIncompletePacket)

	// Finalize the only input with a script sig.
	packet.Inputs[0].FinalScriptSig = []byte{0x51}
	require.True(t, packet.IsComplete())

	finalTx, err := Extract(packet)
	require.NoError(t, err)
	require.Equal(
		t, []byte{0x51}, finalTx.TxIn[0].SignatureScript,
	)

	// The template itself must remain untouched.
	require.Empty(t, packet.UnsignedTx.TxIn[0].SignatureScript)
}

// TestReadKeyValueTerminator tests that the zero-length key terminating a
// map surfaces as fn.None rather than an error, and that a regular pair is
// returned as fn.Some.
func TestReadKeyValueTerminator(t *testing.T) {
	t.Parallel()

	// A lone separator byte means no more pairs.
	kvOpt, err := readKeyValue(bytes.NewReader([]byte{0x00}))
	require.NoError(t, err)
	require.True(t, kvOpt.IsNone())

	// A regular pair round trips through its reader.
	var buf bytes.Buffer
	require.NoError(t, serializeKVPairWithType(
		&buf, 0x07, []byte{0xaa}, []byte{0xbb, 0xcc},
	))

	kvOpt, err = readKeyValue(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.True(t, kvOpt.IsSome())

	kv := kvOpt.UnwrapOr(KeyValue{})
	require.Equal(t, Key{Type: 0x07, Data: []byte{0xaa}}, kv.Key)
	require.Equal(t, []byte{0xbb, 0xcc}, kv.Value)
}
