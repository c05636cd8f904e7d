// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/ledger"
	"github.com/bitmark-inc/supplychaind/rpc/certificate"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.MakeSelfSigned("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "validate", "stage", "mine", "dump", "d":
		return false // defer processing until the ledger is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  validate                            - check the stored chain\n")
		fmt.Printf("\n")

		fmt.Printf("  stage ID DESCRIPTION SIG            - add a transaction to the open block and save\n")
		fmt.Printf("\n")

		fmt.Printf("  mine [DIFFICULTY]                   - seal the open block and save\n")
		fmt.Printf("\n")

		fmt.Printf("  dump [S [E [FILE]]]        (d)      - dump block(s) as a JSON structures to stdout/file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger is loaded so these commands can access and/or change
// the stored chain
func processDataCommand(log *logger.L, arguments []string, l *ledger.Ledger) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "validate":
		err := l.Validate()
		if integrity, ok := fault.IsErrIntegrity(err); ok {
			exitwithstatus.Message("chain is invalid at block: %d  error: %s", integrity.Number, integrity.Err)
		} else if nil != err {
			exitwithstatus.Message("validate error: %s", err)
		}
		fmt.Printf("chain is valid: %d blocks\n", l.Info().Blocks)

	case "stage":
		if len(arguments) < 3 {
			exitwithstatus.Message("missing arguments: ID DESCRIPTION SIGNATURE")
		}
		itemId, err := strconv.ParseInt(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in item id: %s", err)
		}
		err = l.StageTransaction(itemId, arguments[1], arguments[2])
		if nil != err {
			exitwithstatus.Message("stage error: %s", err)
		}
		if err := l.Persist(); nil != err {
			exitwithstatus.Message("save error: %s", err)
		}
		fmt.Printf("staged item: %d  in block: %d\n", itemId, l.Info().Blocks-1)

	case "mine":
		prefix := ""
		if len(arguments) > 0 {
			prefix = strings.TrimSpace(arguments[0])
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(ch)
		go func() {
			select {
			case <-ch:
				cancel()
			case <-ctx.Done():
			}
		}()

		log.Infof("mine difficulty: %q", prefix)
		summary, err := l.MineNextBlock(ctx, prefix)
		if nil != err {
			exitwithstatus.Message("mine error: %s", err)
		}
		fmt.Printf("mined block: %d  hash: %s  nonce: %d\n", summary.Number, summary.Digest, summary.Nonce)

	case "dump", "d":
		size := uint64(l.Info().Blocks)
		if 0 == size {
			exitwithstatus.Message("chain is empty")
		}

		n := uint64(0)
		nEnd := size - 1
		var err error

		if len(arguments) > 0 {
			n, err = strconv.ParseUint(arguments[0], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in block number: %s", err)
			}
			nEnd = n
		}

		// optional end range
		if len(arguments) > 1 {
			nEnd, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in ending block number: %s", err)
			}
			if nEnd < n {
				exitwithstatus.Message("error: invalid ending block number: %d must not be less than %d", nEnd, n)
			}
		}

		output := "-"
		if len(arguments) > 2 {
			output = strings.TrimSpace(arguments[2])
		}
		fd := os.Stdout

		if output != "" && output != "-" {
			fd, err = os.Create(output)
			if nil != err {
				exitwithstatus.Message("error: creating: %q error: %s", output, err)
			}
			defer fd.Close()
		}

		blocks := make([]ledger.Summary, 0, nEnd-n+1)
		for ; n <= nEnd; n += 1 {
			summary, err := l.Get(n)
			if nil != err {
				exitwithstatus.Message("dump block: %d  error: %s", n, err)
			}
			blocks = append(blocks, summary)
		}

		s, err := json.MarshalIndent(blocks, "", "  ")
		if nil != err {
			exitwithstatus.Message("dump block JSON error: %s", err)
		}
		fmt.Fprintf(fd, "%s\n", s)

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the file name with an optional directory prefix from the first argument
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) > 0 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}
