// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runMine(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Mine(c.String("difficulty"))
	if nil != err {
		return err
	}

	printJson(m.w, response.Block)

	if "" != response.PersistError {
		return ErrBlockNotPersisted
	}
	return nil
}
