// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcpsbt/psbt"
	"github.com/urfave/cli/v2"
)

var (
	inputFlag = cli.StringSliceFlag{
		Name:     "in",
		Usage:    "input outpoint as txid:vout, repeatable",
		Required: true,
	}

	outputFlag = cli.StringSliceFlag{
		Name:     "out",
		Usage:    "output as pkscript_hex:amount_sat, repeatable",
		Required: true,
	}

	versionFlag = cli.Int64Flag{
		Name:  "txversion",
		Usage: "transaction version",
		Value: 2,
	}

	locktimeFlag = cli.Uint64Flag{
		Name:  "locktime",
		Usage: "transaction lock time",
		Value: 0,
	}

	sequenceFlag = cli.Uint64Flag{
		Name:  "sequence",
		Usage: "sequence number applied to every input",
		Value: uint64(wire.MaxTxInSequenceNum),
	}
)

var createCommand = cli.Command{
	Name:  "create",
	Usage: "Create a new packet from outpoints and outputs",
	Flags: []cli.Flag{
		&inputFlag, &outputFlag, &versionFlag, &locktimeFlag,
		&sequenceFlag,
	},
	Action: createAction,
}

func createAction(ctx *cli.Context) error {
	var inputs []*wire.OutPoint
	for _, in := range ctx.StringSlice("in") {
		op, err := parseOutPoint(in)
		if err != nil {
			return err
		}
		inputs = append(inputs, op)
	}

	var outputs []*wire.TxOut
	for _, out := range ctx.StringSlice("out") {
		txOut, err := parseTxOut(out)
		if err != nil {
			return err
		}
		outputs = append(outputs, txOut)
	}

	sequences := make([]uint32, len(inputs))
	for i := range sequences {
		sequences[i] = uint32(ctx.Uint64("sequence"))
	}

	packet, err := psbt.New(
		inputs, outputs, int32(ctx.Int64("txversion")),
		uint32(ctx.Uint64("locktime")), sequences,
	)
	if err != nil {
		return err
	}

	return printPacket(packet)
}

// parseOutPoint parses a txid:vout string into an outpoint.
func parseOutPoint(s string) (*wire.OutPoint, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid outpoint %q, want txid:vout",
			s)
	}

	hash, err := chainhash.NewHashFromStr(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid txid in %q: %w", s, err)
	}

	vout, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid vout in %q: %w", s, err)
	}

	return wire.NewOutPoint(hash, uint32(vout)), nil
}

// parseTxOut parses a pkscript_hex:amount_sat string into a tx output.
func parseTxOut(s string) (*wire.TxOut, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid output %q, want "+
			"pkscript_hex:amount_sat", s)
	}

	pkScript, err := hex.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pkscript in %q: %w", s, err)
	}

	amount, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount in %q: %w", s, err)
	}

	return wire.NewTxOut(amount, pkScript), nil
}
