// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// HashKind enumerates the hash algorithms a PSBT preimage field may commit
// to.
type HashKind uint8

const (
	// HashKindRipemd160 is plain RIPEMD-160.
	HashKindRipemd160 HashKind = iota

	// HashKindSha256 is plain SHA-256.
	HashKindSha256

	// HashKindHash160 is RIPEMD-160 of SHA-256.
	HashKindHash160

	// HashKindHash256 is double SHA-256.
	HashKindHash256
)

// String returns the stable human readable name of the hash kind.
func (h HashKind) String() string {
	switch h {
	case HashKindRipemd160:
		return "RIPEMD160"
	case HashKindSha256:
		return "SHA256"
	case HashKindHash160:
		return "HASH160"
	case HashKindHash256:
		return "HASH256"
	default:
		return fmt.Sprintf("HashKind(%d)", uint8(h))
	}
}

// Size returns the digest length in bytes produced by the hash kind.
func (h HashKind) Size() int {
	switch h {
	case HashKindRipemd160, HashKindHash160:
		return ripemd160.Size
	default:
		return chainhash.HashSize
	}
}

// Hash applies the hash kind's algorithm to the passed preimage.
func (h HashKind) Hash(preimage []byte) []byte {
	switch h {
	case HashKindRipemd160:
		hasher := ripemd160.New()
		hasher.Write(preimage)
		return hasher.Sum(nil)

	case HashKindSha256:
		return chainhash.HashB(preimage)

	case HashKindHash160:
		return btcutil.Hash160(preimage)

	default:
		return chainhash.DoubleHashB(preimage)
	}
}

// HashPreimage is a claimed preimage for a digest carried in one of the
// per-input preimage fields.
type HashPreimage struct {
	// Kind is the hash algorithm the digest was produced with.
	Kind HashKind

	// Hash is the expected digest. Its length is fixed by Kind.
	Hash []byte

	// Preimage is the claimed preimage for Hash.
	Preimage []byte
}

// decodeDigest parses the raw bytes into a fixed-length digest for the given
// hash kind. A digest of the wrong length cannot be decoded and the failure
// is wrapped into a HashParseError, preserving the underlying cause.
func decodeDigest(kind HashKind, digest []byte) ([]byte, error) {
	switch kind {
	case HashKindSha256, HashKindHash256:
		// Decode through chainhash so the size check and its error
		// are the ones reported.
		hash, err := chainhash.NewHash(digest)
		if err != nil {
			return nil, &HashParseError{Err: err}
		}

		return hash[:], nil

	default:
		if len(digest) != ripemd160.Size {
			return nil, &HashParseError{
				Err: fmt.Errorf("invalid hash length of %d, "+
					"want %d", len(digest), ripemd160.Size),
			}
		}

		return digest, nil
	}
}

// VerifyPreimage checks that hashing the claimed preimage under the given
// hash kind reproduces the expected digest exactly. The digest is decoded
// first, so a digest of the wrong length yields a HashParseError rather than
// a preimage mismatch.
func VerifyPreimage(kind HashKind, preimage, digest []byte) error {
	decoded, err := decodeDigest(kind, digest)
	if err != nil {
		return err
	}

	if !bytes.Equal(kind.Hash(preimage), decoded) {
		return &InvalidPreimageError{
			HashKind: kind,
			Preimage: preimage,
			Hash:     digest,
		}
	}

	return nil
}

// preimageKindForInputType maps a per-input preimage field type onto its
// hash kind. The second return value is false for any other input type.
func preimageKindForInputType(it InputType) (HashKind, bool) {
	switch it {
	case Ripemd160HashType:
		return HashKindRipemd160, true
	case Sha256HashType:
		return HashKindSha256, true
	case Hash160HashType:
		return HashKindHash160, true
	case Hash256HashType:
		return HashKindHash256, true
	default:
		return 0, false
	}
}

// inputTypeForPreimageKind is the inverse of preimageKindForInputType, used
// when serializing preimage fields back out.
func inputTypeForPreimageKind(kind HashKind) InputType {
	switch kind {
	case HashKindRipemd160:
		return Ripemd160HashType
	case HashKindSha256:
		return Sha256HashType
	case HashKindHash160:
		return Hash160HashType
	default:
		return Hash256HashType
	}
}
