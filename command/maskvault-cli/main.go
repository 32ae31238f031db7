// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maskvault-cli - command line client for a maskvaultd daemon
//
// speaks the protected side of the interface, so it must present the
// vault origin the daemon was configured with
package main

import (
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	origin  string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "maskvault-cli"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:2160",
			Usage: " maskvaultd host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "origin, o",
			Value: "",
			Usage: "*the vault origin the daemon was configured with `URL`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "origins",
			Usage:  "list every stored origin record",
			Action: runOrigins,
		},
		{
			Name:      "origin",
			Usage:     "fetch one origin record, creating it on first sight",
			ArgsUsage: "URL",
			Action:    runOrigin,
		},
		{
			Name:      "add-identity",
			Usage:     "mint the next mask for an origin",
			ArgsUsage: "URL",
			Action:    runAddIdentity,
		},
		{
			Name:      "login-options",
			Usage:     "list every mask usable to log in to an origin",
			ArgsUsage: "URL",
			Action:    runLoginOptions,
		},
		{
			Name:   "assets",
			Usage:  "list every stored asset record",
			Action: runAssets,
		},
		{
			Name:   "statistics",
			Usage:  "show the usage counters",
			Action: runStatistics,
		},
		{
			Name:   "reset-statistics",
			Usage:  "zero the usage counters",
			Action: runResetStatistics,
		},
		{
			Name:      "entropy",
			Usage:     "derive origin-scoped entropy for a salt",
			ArgsUsage: "ORIGIN SALT",
			Action:    runEntropy,
		},
	}

	app.Before = func(c *cli.Context) error {
		app.Metadata = map[string]interface{}{
			"config": &metadata{
				connect: c.GlobalString("connect"),
				origin:  c.GlobalString("origin"),
				verbose: c.GlobalBool("verbose"),
				e:       app.ErrWriter,
				w:       app.Writer,
			},
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		emsg(app.ErrWriter, "terminated with error: %s", err)
		os.Exit(1)
	}
}
