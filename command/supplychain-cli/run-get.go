// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	rpcledger "github.com/bitmark-inc/supplychaind/rpc/ledger"
)

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	hash := c.String("hash")
	if "" != hash && c.IsSet("number") {
		return ErrBothNumberAndHash
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	var response *rpcledger.GetReply
	if "" != hash {
		response, err = client.GetByDigest(hash)
	} else {
		response, err = client.GetByNumber(c.Uint64("number"))
	}
	if nil != err {
		return err
	}

	printJson(m.w, response.Block)

	return nil
}
