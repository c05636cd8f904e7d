// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	useTLS      bool
	fingerprint string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "supplychain-cli"
	app.Usage = "client for the supplychaind ledger"
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
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " supplychaind host/IP and port, `HOST:PORT`",
			EnvVar: "SUPPLYCHAIN_CONNECT",
		},
		cli.BoolFlag{
			Name:  "tls, t",
			Usage: " use TLS for the RPC connection",
		},
		cli.StringFlag{
			Name:  "fingerprint, f",
			Value: "",
			Usage: " expected server certificate SHA3-256 `HEX` (implies --tls)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "stage",
			Usage:     "add a transaction to the open block",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Int64Flag{
					Name:  "item, i",
					Usage: "*item identifier `ID`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*item description `STRING`",
				},
				cli.StringFlag{
					Name:  "signature, s",
					Value: "",
					Usage: "*signature `STRING`",
				},
			},
			Action: runStage,
		},
		{
			Name:      "mine",
			Usage:     "seal the open block",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "difficulty, d",
					Value: "",
					Usage: " required digest `PREFIX` [server default]",
				},
			},
			Action: runMine,
		},
		{
			Name:      "list",
			Usage:     "list block summaries",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first block `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum blocks to return `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "get",
			Usage:     "show a single block",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "number, n",
					Value: 0,
					Usage: "+block `NUMBER`",
				},
				cli.StringFlag{
					Name:  "hash, H",
					Value: "",
					Usage: "+block `DIGEST`",
				},
			},
			Action: runGet,
		},
		{
			Name:   "validate",
			Usage:  "check hash links and proof of work of the whole chain",
			Action: runValidate,
		},
		{
			Name:   "persist",
			Usage:  "write the chain to the server store",
			Action: runPersist,
		},
		{
			Name:   "reload",
			Usage:  "replace the server chain with the stored copy",
			Action: runReload,
		},
		{
			Name:   "info",
			Usage:  "display supplychaind status",
			Action: runInfo,
		},
		{
			Name:   "version",
			Usage:  "display supplychain-cli version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		fingerprint := c.GlobalString("fingerprint")
		c.App.Metadata["config"] = &metadata{
			connect:     c.GlobalString("connect"),
			useTLS:      c.GlobalBool("tls") || "" != fingerprint,
			fingerprint: fingerprint,
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		return nil
	}

	return app
}
