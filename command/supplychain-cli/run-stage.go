// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/supplychaind/command/supplychain-cli/rpccalls"
)

func runStage(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	description, err := checkNonEmpty(c.String("description"), ErrDescriptionIsEmpty)
	if nil != err {
		return err
	}
	signature, err := checkNonEmpty(c.String("signature"), ErrSignatureIsEmpty)
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Stage(&rpccalls.StageData{
		ItemId:      c.Int64("item"),
		Description: description,
		Signature:   signature,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
