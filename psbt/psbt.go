// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package psbt implements Partially Signed Bitcoin Transactions per BIP 174:
// parsing, serialization, validation, merging, creation and extraction.
//
// PSBT bytes are untrusted input. Every structural and semantic rule the
// format imposes is enforced while parsing, and the first violated rule
// aborts the parse with one of the package's taxonomy errors. There is no
// best-effort recovery.
package psbt

import (
	"bytes"
	"encoding/base64"
	"io"

	"github.com/btcsuite/btcd/wire"
)

// psbtMagic is the required prefix of a serialized PSBT: the ASCII bytes of
// "psbt" followed by the 0xff separator.
var psbtMagic = [5]byte{0x70, 0x73, 0x62, 0x74, 0xff}

// Packet is the in-memory representation of a PSBT: the unsigned transaction
// template plus one metadata map per input and output, and any global
// entries of unknown type.
type Packet struct {
	// UnsignedTx is the transaction the PSBT is built around. Its inputs
	// carry no signature scripts or witnesses; signatures only ever live
	// in the Inputs maps.
	UnsignedTx *wire.MsgTx

	// Inputs contains one entry per transaction input.
	Inputs []PInput

	// Outputs contains one entry per transaction output.
	Outputs []POutput

	// Unknowns are global entries whose type is not understood by this
	// implementation. They are preserved verbatim.
	Unknowns []*Unknown
}

// validateUnsignedTx checks that the unsigned transaction template carries
// no inline signature data. Inputs are scanned lowest index first and for
// each input the signature script is checked before the witness, so the
// reported violation is deterministic when several inputs are malformed.
func validateUnsignedTx(tx *wire.MsgTx) error {
	for _, txIn := range tx.TxIn {
		if len(txIn.SignatureScript) != 0 {
			return ErrUnsignedTxHasScriptSigs
		}
		if len(txIn.Witness) != 0 {
			return ErrUnsignedTxHasScriptWitnesses
		}
	}

	return nil
}

// NewFromUnsignedTx creates a new Packet from an unsigned transaction. The
// transaction must not carry any signature scripts or witnesses.
func NewFromUnsignedTx(tx *wire.MsgTx) (*Packet, error) {
	err := validateUnsignedTx(tx)
	if err != nil {
		return nil, err
	}

	inSlice := make([]PInput, len(tx.TxIn))
	outSlice := make([]POutput, len(tx.TxOut))

	return &Packet{
		UnsignedTx: tx,
		Inputs:     inSlice,
		Outputs:    outSlice,
	}, nil
}

// NewFromRawBytes returns a new instance of a Packet struct created by
// reading from a byte slice. If the format is invalid, an error is returned.
// If the argument b64 is true, the passed byte slice is decoded from base64
// encoding before processing.
func NewFromRawBytes(r io.Reader, b64 bool) (*Packet, error) {
	// If the PSBT is encoded in bas64, then we'll create a new wrapper
	// reader that'll allow us to incrementally decode the contents of
	// the io.Reader.
	if b64 {
		based64EncodedReader := r
		r = base64.NewDecoder(base64.StdEncoding, based64EncodedReader)
	}

	// The Byte slice must be at least 5 bytes for the magic bytes and one
	// separator.
	var magic [5]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if !bytes.Equal(magic[:4], psbtMagic[:4]) {
		return nil, ErrInvalidMagic
	}
	if magic[4] != psbtMagic[4] {
		return nil, ErrInvalidSeparator
	}

	// Next we parse the GLOBAL section. There is currently only 1 known
	// key type, UnsignedTx. We insist this exists first; unknowns are
	// allowed, but only after.
	var (
		msgTx    *wire.MsgTx
		unknowns []*Unknown
	)
	for {
		kvOpt, err := readKeyValue(r)
		if err != nil {
			return nil, err
		}

		// No more pairs, the global map is done.
		if kvOpt.IsNone() {
			break
		}
		kv := kvOpt.UnwrapOr(KeyValue{})

		switch GlobalType(kv.Key.Type) {
		case UnsignedTxType:
			if msgTx != nil {
				return nil, &DuplicateKeyError{Key: kv.Key}
			}
			if len(kv.Key.Data) != 0 {
				return nil, &InvalidKeyError{Key: kv.Key}
			}

			tx := wire.NewMsgTx(2)
			err := tx.Deserialize(bytes.NewReader(kv.Value))
			if err != nil {
				return nil, err
			}
			msgTx = tx

		default:
			keyintanddata := []byte{kv.Key.Type}
			keyintanddata = append(
				keyintanddata, kv.Key.Data...,
			)
			newUnknown := &Unknown{
				Key:   keyintanddata,
				Value: kv.Value,
			}

			for _, x := range unknowns {
				if bytes.Equal(x.Key, newUnknown.Key) {
					return nil, &DuplicateKeyError{
						Key: kv.Key,
					}
				}
			}

			unknowns = append(unknowns, newUnknown)
		}
	}

	// A PSBT without an unsigned transaction is useless: nothing in the
	// input and output maps could be interpreted.
	if msgTx == nil {
		return nil, ErrMustHaveUnsignedTx
	}

	// The unsigned transaction must be a pure template.
	if err := validateUnsignedTx(msgTx); err != nil {
		return nil, err
	}

	// Next we parse the INPUT section.
	inSlice := make([]PInput, len(msgTx.TxIn))
	for i := range msgTx.TxIn {
		input := PInput{}
		err := input.deserialize(r)
		if err != nil {
			return nil, err
		}

		inSlice[i] = input
	}

	// Next we parse the OUTPUT section.
	outSlice := make([]POutput, len(msgTx.TxOut))
	for i := range msgTx.TxOut {
		output := POutput{}
		err := output.deserialize(r)
		if err != nil {
			return nil, err
		}

		outSlice[i] = output
	}

	// Populate the new Packet object.
	newPsbt := Packet{
		UnsignedTx: msgTx,
		Inputs:     inSlice,
		Outputs:    outSlice,
		Unknowns:   unknowns,
	}

	// Extended sanity checking is applied here to make sure the
	// externally-passed Packet follows all the rules.
	if err := newPsbt.SanityCheck(); err != nil {
		return nil, err
	}

	return &newPsbt, nil
}

// Serialize creates a binary serialization of the referenced Packet struct
// with lexicographical ordering (by key) of the subsections.
func (p *Packet) Serialize(w io.Writer) error {
	// First we write out the precise set of magic bytes.
	if _, err := w.Write(psbtMagic[:]); err != nil {
		return err
	}

	// Next we prep to write out the unsigned transaction by first
	// serializing it into an intermediate buffer.
	serializedTx := bytes.NewBuffer(
		make([]byte, 0, p.UnsignedTx.SerializeSize()),
	)
	if err := p.UnsignedTx.SerializeNoWitness(serializedTx); err != nil {
		return err
	}

	// Now that we have the serialized transaction, we'll write it out to
	// the proper global type.
	err := serializeKVPairWithType(
		w, uint8(UnsignedTxType), nil, serializedTx.Bytes(),
	)
	if err != nil {
		return err
	}

	// Unknown global entries are preserved as read.
	for _, kv := range p.Unknowns {
		err := serializeKVpair(w, kv.Key, kv.Value)
		if err != nil {
			return err
		}
	}

	// With that our global section is done, so we'll write out the
	// separator.
	separator := []byte{0x00}
	if _, err := w.Write(separator); err != nil {
		return err
	}

	for _, pInput := range p.Inputs {
		err := pInput.serialize(w)
		if err != nil {
			return err
		}

		if _, err := w.Write(separator); err != nil {
			return err
		}
	}

	for _, pOutput := range p.Outputs {
		err := pOutput.serialize(w)
		if err != nil {
			return err
		}

		if _, err := w.Write(separator); err != nil {
			return err
		}
	}

	return nil
}

// B64Encode returns the base64 encoding of the serialization of the
// referenced Packet object.
func (p *Packet) B64Encode() (string, error) {
	var b bytes.Buffer
	if err := p.Serialize(&b); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b.Bytes()), nil
}

// IsComplete returns true only if all of the inputs are finalized; this is
// particularly important in that it decides whether the final extraction to
// a network serialized signed transaction will be possible.
func (p *Packet) IsComplete() bool {
	for i := range p.UnsignedTx.TxIn {
		if !isFinalized(p, i) {
			return false
		}
	}

	return true
}

// isFinalized considers this input finalized if it contains at least one of
// the FinalScriptSig or FinalScriptWitness are filled (which only occurs in
// a successful call to Finalize*).
func isFinalized(p *Packet, inIndex int) bool {
	input := p.Inputs[inIndex]

	return input.FinalScriptSig != nil || input.FinalScriptWitness != nil
}

// SanityCheck checks conditions on a PSBT to ensure that it obeys the rules
// of BIP 174, and returns true if so, false if not.
func (p *Packet) SanityCheck() error {
	if p.UnsignedTx == nil {
		return ErrMustHaveUnsignedTx
	}

	if err := validateUnsignedTx(p.UnsignedTx); err != nil {
		return err
	}

	err := VerifyInputOutputLen(p, false, false)
	if err != nil {
		return err
	}

	for i := range p.Inputs {
		if !p.Inputs[i].IsSane() {
			return ErrInsanePInput
		}
	}

	return nil
}

// VerifyPreimages re-runs the hash preimage verification for every preimage
// pair attached to the packet's inputs. Packets produced by NewFromRawBytes
// have already had this applied; this is for packets assembled in memory.
func (p *Packet) VerifyPreimages() error {
	for i := range p.Inputs {
		for _, hp := range p.Inputs[i].HashPreimages {
			err := VerifyPreimage(hp.Kind, hp.Preimage, hp.Hash)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
