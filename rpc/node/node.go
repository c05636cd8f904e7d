// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/ledger"
	"github.com/bitmark-inc/supplychaind/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Start      time.Time
	Version    string
	Operations ledger.Operations
	counter    *counter.Counter
}

// New - create the node RPC service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, operations ledger.Operations) *Node {
	return &Node{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:      start,
		Version:    version,
		Operations: operations,
		counter:    counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version string      `json:"version"`
	Uptime  string      `json:"uptime"`
	RPCs    uint64      `json:"rpcs"`
	Ledger  ledger.Info `json:"ledger"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Operations {
		return fault.ErrNotInitialised
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.Ledger = node.Operations.Info()
	return nil
}
