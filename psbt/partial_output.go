// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"
	"io"
	"sort"
)

// POutput is a struct encapsulating all the data that can be attached to
// any specific output of the PSBT.
type POutput struct {
	RedeemScript    []byte
	WitnessScript   []byte
	Bip32Derivation []*Bip32Derivation
	Unknowns        []*Unknown
}

// NewPsbtOutput creates an instance of POutput; the three parameters
// excluding the Unknowns can be nil.
func NewPsbtOutput(redeemScript []byte, witnessScript []byte,
	bip32Derivation []*Bip32Derivation) *POutput {

	return &POutput{
		RedeemScript:    redeemScript,
		WitnessScript:   witnessScript,
		Bip32Derivation: bip32Derivation,
	}
}

// deserialize attempts to recreate a POutput object from the passed
// io.Reader.
func (po *POutput) deserialize(r io.Reader) error {
	for {
		kvOpt, err := readKeyValue(r)
		if err != nil {
			return err
		}

		// No more pairs, the output map is done.
		if kvOpt.IsNone() {
			break
		}
		kv := kvOpt.UnwrapOr(KeyValue{})

		switch OutputType(kv.Key.Type) {
		case RedeemScriptOutputType:
			if po.RedeemScript != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}
			po.RedeemScript = kv.Value

		case WitnessScriptOutputType:
			if po.WitnessScript != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}
			po.WitnessScript = kv.Value

		case Bip32DerivationOutputType:
			if !validatePubkey(kv.Key.Data) {
				return &InvalidKeyError{Key: kv.Key}
			}
			master, derivationPath, ok := readBip32Derivation(
				kv.Value,
			)
			if !ok {
				return &InvalidKeyError{Key: kv.Key}
			}

			for _, x := range po.Bip32Derivation {
				if bytes.Equal(x.PubKey, kv.Key.Data) {
					return &DuplicateKeyError{Key: kv.Key}
				}
			}

			po.Bip32Derivation = append(
				po.Bip32Derivation, &Bip32Derivation{
					PubKey:               kv.Key.Data,
					MasterKeyFingerprint: master,
					Bip32Path:            derivationPath,
				},
			)

		default:
			keyintanddata := []byte{kv.Key.Type}
			keyintanddata = append(keyintanddata, kv.Key.Data...)
			newUnknown := &Unknown{
				Key:   keyintanddata,
				Value: kv.Value,
			}

			for _, x := range po.Unknowns {
				if bytes.Equal(x.Key, newUnknown.Key) {
					return &DuplicateKeyError{Key: kv.Key}
				}
			}

			po.Unknowns = append(po.Unknowns, newUnknown)
		}
	}

	return nil
}

// serialize attempts to write out the POutput into the passed io.Writer.
func (po *POutput) serialize(w io.Writer) error {
	if po.RedeemScript != nil {
		err := serializeKVPairWithType(
			w, uint8(RedeemScriptOutputType), nil,
			po.RedeemScript,
		)
		if err != nil {
			return err
		}
	}

	if po.WitnessScript != nil {
		err := serializeKVPairWithType(
			w, uint8(WitnessScriptOutputType), nil,
			po.WitnessScript,
		)
		if err != nil {
			return err
		}
	}

	sort.Sort(Bip32Sorter(po.Bip32Derivation))
	for _, kd := range po.Bip32Derivation {
		err := serializeKVPairWithType(
			w, uint8(Bip32DerivationOutputType), kd.PubKey,
			SerializeBIP32Derivation(
				kd.MasterKeyFingerprint, kd.Bip32Path,
			),
		)
		if err != nil {
			return err
		}
	}

	for _, kv := range po.Unknowns {
		err := serializeKVpair(w, kv.Key, kv.Value)
		if err != nil {
			return err
		}
	}

	return nil
}
