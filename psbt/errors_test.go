// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"errors"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// TestErrorRendering tests that every error variant formats to a distinct,
// stable diagnostic string, and that rendering the same value twice yields
// byte-identical output.
func TestErrorRendering(t *testing.T) {
	t.Parallel()

	// Arrange: two distinct unsigned transactions for the merge error.
	tx1 := wire.NewMsgTx(2)
	tx2 := wire.NewMsgTx(2)
	tx2.LockTime = 1

	key := Key{Type: 0x03, Data: []byte{0xde, 0xad}}

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "invalid magic",
			err:      ErrInvalidMagic,
			expected: "invalid magic",
		},
		{
			name:     "invalid separator",
			err:      ErrInvalidSeparator,
			expected: "invalid separator",
		},
		{
			name:     "invalid key",
			err:      &InvalidKeyError{Key: key},
			expected: "invalid key: type: 0x3, key: dead",
		},
		{
			name:     "duplicate key",
			err:      &DuplicateKeyError{Key: key},
			expected: "duplicate key: type: 0x3, key: dead",
		},
		{
			name:     "unsigned tx has script sigs",
			err:      ErrUnsignedTxHasScriptSigs,
			expected: "the unsigned transaction has script sigs",
		},
		{
			name: "unsigned tx has script witnesses",
			err:  ErrUnsignedTxHasScriptWitnesses,
			expected: "the unsigned transaction has script " +
				"witnesses",
		},
		{
			name: "must have unsigned tx",
			err:  ErrMustHaveUnsignedTx,
			expected: "partially signed transactions must have " +
				"an unsigned transaction",
		},
		{
			name: "unexpected unsigned tx",
			err: &UnexpectedUnsignedTxError{
				Expected: tx1,
				Actual:   tx2,
			},
			expected: "different unsigned transaction: " +
				"expected " + tx1.TxHash().String() +
				", actual " + tx2.TxHash().String(),
		},
		{
			name: "non-standard sighash type",
			err: &NonStandardSighashTypeError{
				SighashType: 0x42,
			},
			expected: "non-standard sighash type: 66",
		},
		{
			name: "hash parse error",
			err: &HashParseError{
				Err: errors.New("invalid hash length"),
			},
			expected: "hash parse error: invalid hash length",
		},
		{
			name: "invalid preimage hash pair",
			err: &InvalidPreimageError{
				HashKind: HashKindSha256,
				Preimage: []byte{0x01, 0x02},
				Hash:     []byte{0xaa, 0xbb},
			},
			expected: "preimage 0102 does not match SHA256 " +
				"hash aabb",
		},
	}

	seen := make(map[string]struct{})
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Act: render the error twice.
			first := tc.err.Error()
			second := tc.err.Error()

			// Assert: the rendering is the expected stable
			// string and is deterministic.
			require.Equal(t, tc.expected, first)
			require.Equal(t, first, second)
		})

		// Assert: no two variants share a rendering.
		_, dup := seen[tc.expected]
		require.False(t, dup, "duplicate rendering %q", tc.expected)
		seen[tc.expected] = struct{}{}
	}
}

// TestHashParseErrorUnwrap tests that the lower-level hash decoding failure
// wrapped by a HashParseError can be recovered by callers.
func TestHashParseErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("wrong digest size")
	err := error(&HashParseError{Err: cause})

	require.ErrorIs(t, err, cause)

	var hashErr *HashParseError
	require.ErrorAs(t, err, &hashErr)
	require.Equal(t, cause, hashErr.Err)
}

// TestKeyString tests the stable rendering of raw keys with and without key
// data.
func TestKeyString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "type: 0x2", Key{Type: 2}.String())
	require.Equal(
		t, "type: 0xfc, key: 00ff",
		Key{Type: 0xfc, Data: []byte{0x00, 0xff}}.String(),
	)
}
