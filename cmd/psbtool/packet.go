// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcpsbt/psbt"
)

// psbtMagicPrefix is the binary serialization prefix, used to tell raw
// packet files apart from base64 ones.
var psbtMagicPrefix = []byte{0x70, 0x73, 0x62, 0x74, 0xff}

// readPacketArg parses a packet from a command line argument. The
// argument is either a path to a file holding a binary or base64 packet,
// or the base64 packet itself.
func readPacketArg(arg string) (*psbt.Packet, error) {
	if arg == "" {
		return nil, fmt.Errorf("missing packet argument")
	}

	raw := []byte(arg)
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		raw, err = os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
	}

	if bytes.HasPrefix(raw, psbtMagicPrefix) {
		return psbt.NewFromRawBytes(bytes.NewReader(raw), false)
	}

	trimmed := strings.TrimSpace(string(raw))

	// Hex input decodes to the binary serialization.
	if decoded, err := hex.DecodeString(trimmed); err == nil &&
		bytes.HasPrefix(decoded, psbtMagicPrefix) {

		return psbt.NewFromRawBytes(bytes.NewReader(decoded), false)
	}

	return psbt.NewFromRawBytes(strings.NewReader(trimmed), true)
}

// printPacket writes the base64 encoding of the packet to stdout.
func printPacket(packet *psbt.Packet) error {
	b64, err := packet.B64Encode()
	if err != nil {
		return err
	}

	fmt.Println(b64)

	return nil
}
