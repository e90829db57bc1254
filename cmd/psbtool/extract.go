// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcpsbt/psbt"
	"github.com/urfave/cli/v2"
)

var extractCommand = cli.Command{
	Name:      "extract",
	Usage:     "Extract the final network transaction from a complete packet",
	ArgsUsage: "<psbt file or base64>",
	Action:    extractAction,
}

func extractAction(ctx *cli.Context) error {
	packet, err := readPacketArg(ctx.Args().First())
	if err != nil {
		return err
	}

	finalTx, err := psbt.Extract(packet)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := finalTx.Serialize(&buf); err != nil {
		return err
	}

	fmt.Println(hex.EncodeToString(buf.Bytes()))

	return nil
}
