// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var verifyCommand = cli.Command{
	Name:      "verify",
	Usage:     "Parse a packet and verify its hash preimages",
	ArgsUsage: "<psbt file or base64>",
	Action:    verifyAction,
}

func verifyAction(ctx *cli.Context) error {
	// Parsing already applies the full rule set, so a packet that makes
	// it out of readPacketArg is structurally valid.
	packet, err := readPacketArg(ctx.Args().First())
	if err != nil {
		return err
	}

	if err := packet.SanityCheck(); err != nil {
		return err
	}

	if err := packet.VerifyPreimages(); err != nil {
		return err
	}

	fmt.Printf("ok: %v\n", packet.UnsignedTx.TxHash())

	return nil
}
