// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/bitmark-inc/supplychaind/command/supplychain-cli/rpccalls"
)

func newClient(m *metadata) (*rpccalls.Client, error) {
	return rpccalls.NewClient(m.connect, m.useTLS, m.fingerprint, m.verbose, m.e)
}

func checkNonEmpty(s string, err error) (string, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return "", err
	}
	return s, nil
}
