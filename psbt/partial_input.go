// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// PInput is a struct encapsulating all the data that can be attached to any
// specific input of the PSBT.
type PInput struct {
	NonWitnessUtxo     *wire.MsgTx
	WitnessUtxo        *wire.TxOut
	PartialSigs        []*PartialSig
	SighashType        txscript.SigHashType
	RedeemScript       []byte
	WitnessScript      []byte
	Bip32Derivation    []*Bip32Derivation
	FinalScriptSig     []byte
	FinalScriptWitness []byte
	PorCommitment      []byte
	HashPreimages      []*HashPreimage
	Unknowns           []*Unknown
}

// NewPsbtInput creates an instance of PInput given either a nonWitnessUtxo
// or a witnessUtxo.
//
// NOTE: Only one of the two arguments should be specified, with the other
// being `nil`; otherwise the created PInput object will fail IsSane()
// checks and will not be usable.
func NewPsbtInput(nonWitnessUtxo *wire.MsgTx,
	witnessUtxo *wire.TxOut) *PInput {

	return &PInput{
		NonWitnessUtxo:  nonWitnessUtxo,
		WitnessUtxo:     witnessUtxo,
		PartialSigs:     []*PartialSig{},
		SighashType:     0,
		Bip32Derivation: []*Bip32Derivation{},
	}
}

// IsSane returns true only if there are no conflicting values in the PInput.
// It checks that witness and non-witness utxo entries do not both exist, and
// that witnessScript entries are only added to witness inputs.
func (pi *PInput) IsSane() bool {
	if pi.NonWitnessUtxo != nil && pi.WitnessUtxo != nil {
		return false
	}
	if pi.WitnessUtxo == nil && pi.WitnessScript != nil {
		return false
	}
	if pi.WitnessUtxo == nil && pi.FinalScriptWitness != nil {
		return false
	}

	return true
}

// deserialize attempts to deserialize a new PInput from the passed
// io.Reader, applying the per-field shape, duplicate, sighash and preimage
// rules as each pair is read. The first violated rule aborts the parse.
func (pi *PInput) deserialize(r io.Reader) error {
	for {
		kvOpt, err := readKeyValue(r)
		if err != nil {
			return err
		}

		// No more pairs, the input map is done.
		if kvOpt.IsNone() {
			break
		}
		kv := kvOpt.UnwrapOr(KeyValue{})

		switch InputType(kv.Key.Type) {
		case NonWitnessUtxoType:
			if pi.NonWitnessUtxo != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}

			tx := wire.NewMsgTx(2)
			err := tx.Deserialize(bytes.NewReader(kv.Value))
			if err != nil {
				return err
			}
			pi.NonWitnessUtxo = tx

		case WitnessUtxoType:
			if pi.WitnessUtxo != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}

			txout, err := readTxOut(kv.Value)
			if err != nil {
				return err
			}
			pi.WitnessUtxo = txout

		case PartialSigType:
			newPartialSig := PartialSig{
				PubKey:    kv.Key.Data,
				Signature: kv.Value,
			}
			if !newPartialSig.checkValid() {
				return &InvalidKeyError{Key: kv.Key}
			}

			for _, x := range pi.PartialSigs {
				if bytes.Equal(x.PubKey, newPartialSig.PubKey) {
					return &DuplicateKeyError{Key: kv.Key}
				}
			}

			pi.PartialSigs = append(pi.PartialSigs, &newPartialSig)

		case SighashType:
			if pi.SighashType != 0 {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}

			// The sighash type must be a 32-bit unsigned integer.
			if len(kv.Value) != 4 {
				return &InvalidKeyError{Key: kv.Key}
			}

			shtype, err := DecodeSighashType(
				binary.LittleEndian.Uint32(kv.Value),
			)
			if err != nil {
				return err
			}
			pi.SighashType = shtype

		case RedeemScriptInputType:
			if pi.RedeemScript != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}
			pi.RedeemScript = kv.Value

		case WitnessScriptInputType:
			if pi.WitnessScript != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}
			pi.WitnessScript = kv.Value

		case Bip32DerivationInputType:
			if !validatePubkey(kv.Key.Data) {
				return &InvalidKeyError{Key: kv.Key}
			}
			master, derivationPath, ok := readBip32Derivation(
				kv.Value,
			)
			if !ok {
				return &InvalidKeyError{Key: kv.Key}
			}

			for _, x := range pi.Bip32Derivation {
				if bytes.Equal(x.PubKey, kv.Key.Data) {
					return &DuplicateKeyError{Key: kv.Key}
				}
			}

			pi.Bip32Derivation = append(
				pi.Bip32Derivation, &Bip32Derivation{
					PubKey:               kv.Key.Data,
					MasterKeyFingerprint: master,
					Bip32Path:            derivationPath,
				},
			)

		case FinalScriptSigType:
			if pi.FinalScriptSig != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}
			pi.FinalScriptSig = kv.Value

		case FinalScriptWitnessType:
			if pi.FinalScriptWitness != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}
			pi.FinalScriptWitness = kv.Value

		case PorCommitmentType:
			if pi.PorCommitment != nil {
				return &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return &InvalidKeyError{Key: kv.Key}
			}
			pi.PorCommitment = kv.Value

		case Ripemd160HashType, Sha256HashType, Hash160HashType,
			Hash256HashType:

			kind, _ := preimageKindForInputType(
				InputType(kv.Key.Type),
			)

			// The key data is the expected digest and the value
			// is the claimed preimage. The pair must verify
			// before it is accepted into the map.
			err := VerifyPreimage(kind, kv.Value, kv.Key.Data)
			if err != nil {
				return err
			}

			for _, x := range pi.HashPreimages {
				if x.Kind == kind &&
					bytes.Equal(x.Hash, kv.Key.Data) {

					return &DuplicateKeyError{Key: kv.Key}
				}
			}

			pi.HashPreimages = append(
				pi.HashPreimages, &HashPreimage{
					Kind:     kind,
					Hash:     kv.Key.Data,
					Preimage: kv.Value,
				},
			)

		default:
			// A fall through case for any proprietary types.
			keyintanddata := []byte{kv.Key.Type}
			keyintanddata = append(keyintanddata, kv.Key.Data...)
			newUnknown := &Unknown{
				Key:   keyintanddata,
				Value: kv.Value,
			}

			for _, x := range pi.Unknowns {
				if bytes.Equal(x.Key, newUnknown.Key) {
					return &DuplicateKeyError{Key: kv.Key}
				}
			}

			pi.Unknowns = append(pi.Unknowns, newUnknown)
		}
	}

	return nil
}

// serialize attempts to serialize the target PInput into the passed
// io.Writer.
func (pi *PInput) serialize(w io.Writer) error {
	if !pi.IsSane() {
		return ErrInsanePInput
	}

	if pi.NonWitnessUtxo != nil {
		var buf bytes.Buffer
		err := pi.NonWitnessUtxo.Serialize(&buf)
		if err != nil {
			return err
		}

		err = serializeKVPairWithType(
			w, uint8(NonWitnessUtxoType), nil, buf.Bytes(),
		)
		if err != nil {
			return err
		}
	}

	if pi.WitnessUtxo != nil {
		var buf bytes.Buffer
		err := wire.WriteTxOut(&buf, 0, 0, pi.WitnessUtxo)
		if err != nil {
			return err
		}

		err = serializeKVPairWithType(
			w, uint8(WitnessUtxoType), nil, buf.Bytes(),
		)
		if err != nil {
			return err
		}
	}

	if pi.FinalScriptSig == nil && pi.FinalScriptWitness == nil {
		sort.Sort(PartialSigSorter(pi.PartialSigs))
		for _, ps := range pi.PartialSigs {
			err := serializeKVPairWithType(
				w, uint8(PartialSigType), ps.PubKey,
				ps.Signature,
			)
			if err != nil {
				return err
			}
		}

		if pi.SighashType != 0 {
			var shtBytes [4]byte
			binary.LittleEndian.PutUint32(
				shtBytes[:], uint32(pi.SighashType),
			)

			err := serializeKVPairWithType(
				w, uint8(SighashType), nil, shtBytes[:],
			)
			if err != nil {
				return err
			}
		}

		if pi.RedeemScript != nil {
			err := serializeKVPairWithType(
				w, uint8(RedeemScriptInputType), nil,
				pi.RedeemScript,
			)
			if err != nil {
				return err
			}
		}

		if pi.WitnessScript != nil {
			err := serializeKVPairWithType(
				w, uint8(WitnessScriptInputType), nil,
				pi.WitnessScript,
			)
			if err != nil {
				return err
			}
		}

		sort.Sort(Bip32Sorter(pi.Bip32Derivation))
		for _, kd := range pi.Bip32Derivation {
			err := serializeKVPairWithType(
				w, uint8(Bip32DerivationInputType), kd.PubKey,
				SerializeBIP32Derivation(
					kd.MasterKeyFingerprint, kd.Bip32Path,
				),
			)
			if err != nil {
				return err
			}
		}
	}

	if pi.FinalScriptSig != nil {
		err := serializeKVPairWithType(
			w, uint8(FinalScriptSigType), nil, pi.FinalScriptSig,
		)
		if err != nil {
			return err
		}
	}

	if pi.FinalScriptWitness != nil {
		err := serializeKVPairWithType(
			w, uint8(FinalScriptWitnessType), nil,
			pi.FinalScriptWitness,
		)
		if err != nil {
			return err
		}
	}

	if pi.PorCommitment != nil {
		err := serializeKVPairWithType(
			w, uint8(PorCommitmentType), nil, pi.PorCommitment,
		)
		if err != nil {
			return err
		}
	}

	for _, hp := range pi.HashPreimages {
		err := serializeKVPairWithType(
			w, uint8(inputTypeForPreimageKind(hp.Kind)), hp.Hash,
			hp.Preimage,
		)
		if err != nil {
			return err
		}
	}

	// Unknown is a special case; we don't have a key type, only a key
	// and a value field.
	for _, kv := range pi.Unknowns {
		err := serializeKVpair(w, kv.Key, kv.Value)
		if err != nil {
			return err
		}
	}

	return nil
}
