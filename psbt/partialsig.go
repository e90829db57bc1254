// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
)

// PartialSig is one partial signature for an input, keyed by the public key
// that produced it.
type PartialSig struct {
	PubKey    []byte
	Signature []byte
}

// PartialSigSorter implements sort.Interface for PartialSig, sorting by the
// serialized public key.
type PartialSigSorter []*PartialSig

func (s PartialSigSorter) Len() int { return len(s) }

func (s PartialSigSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s PartialSigSorter) Less(i, j int) bool {
	return bytes.Compare(s[i].PubKey, s[j].PubKey) < 0
}

// validatePubkey returns true if the passed bytes parse as a valid
// secp256k1 public key in compressed or uncompressed form.
func validatePubkey(pubKey []byte) bool {
	_, err := btcec.ParsePubKey(pubKey)
	return err == nil
}

// checkValid tests that the public key parses and that a signature is
// actually present. Full DER validation of the signature is left to the
// script engine at finalization time.
func (ps *PartialSig) checkValid() bool {
	return validatePubkey(ps.PubKey) && len(ps.Signature) > 0
}
