// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/ledger"
	rpcledger "github.com/bitmark-inc/supplychaind/rpc/ledger"
	"github.com/bitmark-inc/supplychaind/rpc/node"
)

// Create - an RPC server with all services registered, ctx is done
// at shutdown
func Create(ctx context.Context, log *logger.L, version string, rpcCount *counter.Counter, operations ledger.Operations) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(rpcledger.New(ctx, log, start, operations))
	_ = server.Register(node.New(log, start, version, rpcCount, operations))

	return server
}
