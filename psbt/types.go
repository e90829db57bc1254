// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

// GlobalType is the set of types defined per BIP 174 for the global scope of
// a PSBT.
type GlobalType uint8

const (
	// UnsignedTxType is the type for the transaction template all other
	// entries decorate. It is the only required global entry.
	UnsignedTxType GlobalType = 0

	// XpubType is the type for global extended public keys.
	XpubType GlobalType = 1

	// VersionType is the type for the global PSBT version number.
	VersionType GlobalType = 0xfb

	// ProprietaryGlobalType is the type for global proprietary entries.
	ProprietaryGlobalType GlobalType = 0xfc
)

// InputType is the set of types defined per BIP 174 for the per-input scope
// of a PSBT.
type InputType uint32

const (
	// NonWitnessUtxoType contains the full transaction funding this
	// input.
	NonWitnessUtxoType InputType = 0

	// WitnessUtxoType contains only the output funding this input.
	WitnessUtxoType InputType = 1

	// PartialSigType carries one partial signature, keyed by the signing
	// public key.
	PartialSigType InputType = 2

	// SighashType carries the sighash type to use for this input.
	SighashType InputType = 3

	// RedeemScriptInputType carries the redeem script for this input.
	RedeemScriptInputType InputType = 4

	// WitnessScriptInputType carries the witness script for this input.
	WitnessScriptInputType InputType = 5

	// Bip32DerivationInputType carries one BIP 32 derivation path, keyed
	// by the derived public key.
	Bip32DerivationInputType InputType = 6

	// FinalScriptSigType carries the fully constructed signature script.
	FinalScriptSigType InputType = 7

	// FinalScriptWitnessType carries the fully constructed witness.
	FinalScriptWitnessType InputType = 8

	// PorCommitmentType carries a proof-of-reserves commitment.
	PorCommitmentType InputType = 9

	// Ripemd160HashType carries a RIPEMD-160 preimage, keyed by the
	// expected 20 byte digest.
	Ripemd160HashType InputType = 10

	// Sha256HashType carries a SHA-256 preimage, keyed by the expected 32
	// byte digest.
	Sha256HashType InputType = 11

	// Hash160HashType carries a HASH160 (RIPEMD160 of SHA256) preimage,
	// keyed by the expected 20 byte digest.
	Hash160HashType InputType = 12

	// Hash256HashType carries a HASH256 (double SHA256) preimage, keyed
	// by the expected 32 byte digest.
	Hash256HashType InputType = 13

	// ProprietaryInputType is the type for per-input proprietary entries.
	ProprietaryInputType InputType = 0xfc
)

// OutputType is the set of types defined per BIP 174 for the per-output
// scope of a PSBT.
type OutputType uint32

const (
	// RedeemScriptOutputType carries the redeem script for this output.
	RedeemScriptOutputType OutputType = 0

	// WitnessScriptOutputType carries the witness script for this output.
	WitnessScriptOutputType OutputType = 1

	// Bip32DerivationOutputType carries one BIP 32 derivation path, keyed
	// by the derived public key.
	Bip32DerivationOutputType OutputType = 2
)

const (
	// MaxPsbtKeyLength is the longest key we will accept for a key-value
	// pair. Identical to the limit used for script elements.
	MaxPsbtKeyLength = 10000

	// MaxPsbtValueLength is the longest value we will accept for a
	// key-value pair, matching the maximum transaction size.
	MaxPsbtValueLength = 4000000
)
