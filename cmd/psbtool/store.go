// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcpsbt/store"
	"github.com/urfave/cli/v2"
)

var labelFlag = cli.StringFlag{
	Name:  "label",
	Usage: "label stored alongside the packet",
	Value: "",
}

var storeCommand = cli.Command{
	Name:  "store",
	Usage: "Persist and retrieve packets",
	Subcommands: []*cli.Command{
		{
			Name:      "put",
			Usage:     "Store a packet, overwriting any previous version",
			ArgsUsage: "<psbt file or base64>",
			Flags:     []cli.Flag{&labelFlag},
			Action:    storePutAction,
		},
		{
			Name:      "get",
			Usage:     "Fetch a stored packet by txid",
			ArgsUsage: "<txid>",
			Action:    storeGetAction,
		},
		{
			Name:   "list",
			Usage:  "List stored packets",
			Action: storeListAction,
		},
		{
			Name:      "delete",
			Usage:     "Delete a stored packet by txid",
			ArgsUsage: "<txid>",
			Action:    storeDeleteAction,
		},
		{
			Name:      "merge",
			Usage:     "Merge a packet into the stored one for the same txid",
			ArgsUsage: "<psbt file or base64>",
			Action:    storeMergeAction,
		},
	},
}

func storePutAction(ctx *cli.Context) error {
	packet, err := readPacketArg(ctx.Args().First())
	if err != nil {
		return err
	}

	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	txid, err := s.PutPacket(ctx.Context, store.PutPacketParams{
		Packet: packet,
		Label:  ctx.String("label"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("stored: %v\n", txid)

	return nil
}

func storeGetAction(ctx *cli.Context) error {
	txid, err := chainhash.NewHashFromStr(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid txid: %w", err)
	}

	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	packet, err := s.GetPacket(ctx.Context, *txid)
	if err != nil {
		return err
	}

	return printPacket(packet)
}

func storeListAction(ctx *cli.Context) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	infos, err := s.ListPackets(ctx.Context)
	if err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Printf("%v\t%s\t%s\n", info.Txid,
			info.UpdatedAt.Format("2006-01-02 15:04:05"),
			info.Label)
	}

	return nil
}

func storeDeleteAction(ctx *cli.Context) error {
	txid, err := chainhash.NewHashFromStr(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid txid: %w", err)
	}

	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := s.DeletePacket(ctx.Context, *txid); err != nil {
		return err
	}

	fmt.Printf("deleted: %v\n", txid)

	return nil
}

func storeMergeAction(ctx *cli.Context) error {
	packet, err := readPacketArg(ctx.Args().First())
	if err != nil {
		return err
	}

	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	merged, err := s.MergePacket(ctx.Context, packet)
	if err != nil {
		return err
	}

	return printPacket(merged)
}
