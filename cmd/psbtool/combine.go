// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/btcsuite/btcpsbt/psbt"
	"github.com/urfave/cli/v2"
)

var combineCommand = cli.Command{
	Name:      "combine",
	Usage:     "Combine packets for the same unsigned transaction",
	ArgsUsage: "<psbt> <psbt> [<psbt>...]",
	Action:    combineAction,
}

func combineAction(ctx *cli.Context) error {
	var packets []*psbt.Packet
	for _, arg := range ctx.Args().Slice() {
		packet, err := readPacketArg(arg)
		if err != nil {
			return err
		}
		packets = append(packets, packet)
	}

	combined, err := psbt.Combine(packets...)
	if err != nil {
		return err
	}

	return printPacket(combined)
}
