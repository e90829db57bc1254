// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/btcsuite/btcpsbt/pkg/btcunit"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
)

var decodeCommand = cli.Command{
	Name:      "decode",
	Usage:     "Decode a packet and print a human readable summary",
	ArgsUsage: "<psbt file or base64>",
	Action:    decodeAction,
}

func decodeAction(ctx *cli.Context) error {
	packet, err := readPacketArg(ctx.Args().First())
	if err != nil {
		return err
	}

	if ctx.Bool("debug") {
		spew.Dump(packet)
		return nil
	}

	fmt.Printf("txid: %v\n", packet.UnsignedTx.TxHash())
	fmt.Printf("version: %d\n", packet.UnsignedTx.Version)
	fmt.Printf("locktime: %d\n", packet.UnsignedTx.LockTime)
	fmt.Printf("complete: %v\n", packet.IsComplete())

	// The fee is only known once every input carries UTXO information.
	if fee, err := packet.Fee(); err == nil {
		vsize := btcunit.TxWeight(packet.UnsignedTx).ToVB()
		fmt.Printf("fee: %v (%v on the unsigned tx's %v)\n", fee,
			btcunit.CalcSatPerVByte(fee, vsize), vsize)
	}

	for i, txIn := range packet.UnsignedTx.TxIn {
		pIn := packet.Inputs[i]

		fmt.Printf("input %d: %v\n", i, txIn.PreviousOutPoint)
		if pIn.NonWitnessUtxo != nil {
			fmt.Printf("  non-witness utxo: %v\n",
				pIn.NonWitnessUtxo.TxHash())
		}
		if pIn.WitnessUtxo != nil {
			fmt.Printf("  witness utxo: %d sat\n",
				pIn.WitnessUtxo.Value)
		}
		if pIn.SighashType != 0 {
			fmt.Printf("  sighash type: %v\n", pIn.SighashType)
		}
		for _, sig := range pIn.PartialSigs {
			fmt.Printf("  partial sig: pubkey %x\n", sig.PubKey)
		}
		for _, preimage := range pIn.HashPreimages {
			fmt.Printf("  %v preimage %x for hash %x\n",
				preimage.Kind, preimage.Preimage,
				preimage.Hash)
		}
		if pIn.FinalScriptSig != nil ||
			pIn.FinalScriptWitness != nil {

			fmt.Printf("  finalized\n")
		}
	}

	for i, txOut := range packet.UnsignedTx.TxOut {
		fmt.Printf("output %d: %d sat, script %x\n", i, txOut.Value,
			txOut.PkScript)
	}

	return nil
}
