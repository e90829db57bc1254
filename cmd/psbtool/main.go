// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/btcsuite/btclog"
	"github.com/btcsuite/btcpsbt/store"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var version = "dev"

var debugFlag = cli.BoolFlag{
	Name:  "debug",
	Usage: "enable debug logging and verbose structure dumps",
	Value: false,
}

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "psbtool"
	app.Usage = "Create, inspect, combine and store partially signed " +
		"bitcoin transactions"
	app.Flags = []cli.Flag{&debugFlag}
	app.Commands = append(
		app.Commands,
		&decodeCommand,
		&createCommand,
		&combineCommand,
		&extractCommand,
		&verifyCommand,
		&storeCommand,
	)

	app.Before = func(ctx *cli.Context) error {
		if ctx.Bool("debug") {
			log.SetLevel(log.DebugLevel)

			backend := btclog.NewBackend(os.Stderr)
			storeLog := backend.Logger("STOR")
			level, _ := btclog.LevelFromString("debug")
			storeLog.SetLevel(level)
			store.UseLogger(storeLog)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setConfig(cfg)

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}
