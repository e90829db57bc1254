// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"
	"encoding/binary"
)

// Bip32Derivation encapsulates the BIP 32 derivation of one public key: the
// fingerprint of the master key and the path from it to the derived key.
type Bip32Derivation struct {
	// PubKey is the serialized public key the derivation describes.
	PubKey []byte

	// MasterKeyFingerprint is the first four bytes of the hash160 of the
	// master public key.
	MasterKeyFingerprint uint32

	// Bip32Path is the derivation path, hardened elements having the
	// hardened offset applied.
	Bip32Path []uint32
}

// Bip32Sorter implements sort.Interface for Bip32Derivation, sorting by the
// serialized public key.
type Bip32Sorter []*Bip32Derivation

func (s Bip32Sorter) Len() int { return len(s) }

func (s Bip32Sorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s Bip32Sorter) Less(i, j int) bool {
	return bytes.Compare(s[i].PubKey, s[j].PubKey) < 0
}

// readBip32Derivation deserializes a byte slice containing a master key
// fingerprint followed by a derivation path of 32-bit little endian child
// indexes. The second return value is false if the slice is not a whole
// number of 4 byte elements with at least the fingerprint present.
func readBip32Derivation(path []byte) (uint32, []uint32, bool) {
	if len(path) < 4 || len(path)%4 != 0 {
		return 0, nil, false
	}

	masterKeyInt := binary.LittleEndian.Uint32(path[:4])

	var paths []uint32
	for i := 4; i < len(path); i += 4 {
		paths = append(paths, binary.LittleEndian.Uint32(path[i:i+4]))
	}

	return masterKeyInt, paths, true
}

// SerializeBIP32Derivation encodes a master key fingerprint and derivation
// path into the value format of the BIP 32 derivation fields.
func SerializeBIP32Derivation(masterKeyFingerprint uint32,
	bip32Path []uint32) []byte {

	derivationPath := make([]byte, 0, 4+4*len(bip32Path))

	var masterKeyBytes [4]byte
	binary.LittleEndian.PutUint32(masterKeyBytes[:], masterKeyFingerprint)
	derivationPath = append(derivationPath, masterKeyBytes[:]...)

	for _, path := range bip32Path {
		var pathBytes [4]byte
		binary.LittleEndian.PutUint32(pathBytes[:], path)
		derivationPath = append(derivationPath, pathBytes[:]...)
	}

	return derivationPath
}
