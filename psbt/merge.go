// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"
)

// Merge merges the metadata of other into p, serving the role of the
// Combiner per the PSBT BIP. Both packets must describe the same unsigned
// transaction, compared by txid; otherwise the merge fails with an
// UnexpectedUnsignedTxError carrying both transactions.
//
// For singleton fields the receiver's value wins when both packets carry
// one. Keyed fields (partial signatures, derivation paths, preimages,
// unknowns) are unioned, with entries already present in the receiver kept
// unchanged. p is modified in place; other is not.
func (p *Packet) Merge(other *Packet) error {
	// Caller-assembled packets may carry metadata slices that don't line
	// up with their transaction. Rule that out on both sides before any
	// indexed access below.
	if err := VerifyInputOutputLen(p, false, false); err != nil {
		return err
	}
	if err := VerifyInputOutputLen(other, false, false); err != nil {
		return err
	}

	if p.UnsignedTx.TxHash() != other.UnsignedTx.TxHash() {
		return &UnexpectedUnsignedTxError{
			Expected: p.UnsignedTx,
			Actual:   other.UnsignedTx,
		}
	}

	// The txids match and both packets passed the length check, so the
	// maps line up index by index.
	for i := range p.Inputs {
		mergeInput(&p.Inputs[i], &other.Inputs[i])
	}
	for i := range p.Outputs {
		mergeOutput(&p.Outputs[i], &other.Outputs[i])
	}

	p.Unknowns = mergeUnknowns(p.Unknowns, other.Unknowns)

	return nil
}

// Combine merges any number of packets into the first one, applying the
// same unsigned transaction compatibility rule pairwise. The first packet
// is modified in place and returned.
func Combine(packets ...*Packet) (*Packet, error) {
	if len(packets) == 0 {
		return nil, ErrNoPackets
	}

	result := packets[0]
	for _, other := range packets[1:] {
		if err := result.Merge(other); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// mergeInput merges the fields of src into dst, dst winning on conflicting
// singleton fields.
func mergeInput(dst, src *PInput) {
	if dst.NonWitnessUtxo == nil {
		dst.NonWitnessUtxo = src.NonWitnessUtxo
	}
	if dst.WitnessUtxo == nil {
		dst.WitnessUtxo = src.WitnessUtxo
	}
	if dst.SighashType == 0 {
		dst.SighashType = src.SighashType
	}
	if dst.RedeemScript == nil {
		dst.RedeemScript = src.RedeemScript
	}
	if dst.WitnessScript == nil {
		dst.WitnessScript = src.WitnessScript
	}
	if dst.FinalScriptSig == nil {
		dst.FinalScriptSig = src.FinalScriptSig
	}
	if dst.FinalScriptWitness == nil {
		dst.FinalScriptWitness = src.FinalScriptWitness
	}
	if dst.PorCommitment == nil {
		dst.PorCommitment = src.PorCommitment
	}

	for _, sig := range src.PartialSigs {
		if findPartialSig(dst.PartialSigs, sig.PubKey) {
			continue
		}
		dst.PartialSigs = append(dst.PartialSigs, sig)
	}

	for _, d := range src.Bip32Derivation {
		if findBip32Derivation(dst.Bip32Derivation, d.PubKey) {
			continue
		}
		dst.Bip32Derivation = append(dst.Bip32Derivation, d)
	}

	for _, hp := range src.HashPreimages {
		if findPreimage(dst.HashPreimages, hp.Kind, hp.Hash) {
			continue
		}
		dst.HashPreimages = append(dst.HashPreimages, hp)
	}

	dst.Unknowns = mergeUnknowns(dst.Unknowns, src.Unknowns)
}

// mergeOutput merges the fields of src into dst, dst winning on conflicting
// singleton fields.
func mergeOutput(dst, src *POutput) {
	if dst.RedeemScript == nil {
		dst.RedeemScript = src.RedeemScript
	}
	if dst.WitnessScript == nil {
		dst.WitnessScript = src.WitnessScript
	}

	for _, d := range src.Bip32Derivation {
		if findBip32Derivation(dst.Bip32Derivation, d.PubKey) {
			continue
		}
		dst.Bip32Derivation = append(dst.Bip32Derivation, d)
	}

	dst.Unknowns = mergeUnknowns(dst.Unknowns, src.Unknowns)
}

// mergeUnknowns unions two unknown-entry lists by full raw key, entries in
// dst kept unchanged on conflict.
func mergeUnknowns(dst, src []*Unknown) []*Unknown {
	for _, u := range src {
		exists := false
		for _, x := range dst {
			if bytes.Equal(x.Key, u.Key) {
				exists = true
				break
			}
		}
		if !exists {
			dst = append(dst, u)
		}
	}

	return dst
}

func findPartialSig(sigs []*PartialSig, pubKey []byte) bool {
	for _, s := range sigs {
		if bytes.Equal(s.PubKey, pubKey) {
			return true
		}
	}

	return false
}

func findBip32Derivation(derivs []*Bip32Derivation, pubKey []byte) bool {
	for _, d := range derivs {
		if bytes.Equal(d.PubKey, pubKey) {
			return true
		}
	}

	return false
}

func findPreimage(preimages []*HashPreimage, kind HashKind,
	hash []byte) bool {

	for _, hp := range preimages {
		if hp.Kind == kind && bytes.Equal(hp.Hash, hash) {
			return true
		}
	}

	return false
}
