// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - network listeners for the JSON RPC and HTTP
// explorer servers
package listeners

// Listener - a configured server, Serve starts background accept
// loops and Close stops them
type Listener interface {
	Serve() error
	Close() error
}
