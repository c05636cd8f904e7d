// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"context"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/fixtures"
	"github.com/bitmark-inc/supplychaind/ledger"
	rpcledger "github.com/bitmark-inc/supplychaind/rpc/ledger"
	"github.com/bitmark-inc/supplychaind/rpc/mocks"
	"github.com/bitmark-inc/supplychaind/rpc/node"
	"github.com/bitmark-inc/supplychaind/rpc/server"
)

// connect a JSON RPC client to a freshly created server over a pipe
func setup(t *testing.T) (*rpc.Client, *mocks.MockOperations, func()) {
	fixtures.SetupTestLogger()

	ctl := gomock.NewController(t)
	m := mocks.NewMockOperations(ctl)

	c := counter.Counter(0)
	s := server.Create(context.Background(), logger.New(fixtures.LogCategory), "1.0", &c, m)

	serverConn, clientConn := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	client := jsonrpc.NewClient(clientConn)

	return client, m, func() {
		client.Close()
		ctl.Finish()
		fixtures.TeardownTestLogger()
	}
}

// following tests make sure proper methods are registered to server

func TestLedgerStage(t *testing.T) {
	client, m, teardown := setup(t)
	defer teardown()

	m.EXPECT().StageTransaction(int64(4), "crate", "sig4").Return(fault.ErrNoActiveBlock).Times(1)

	arg := rpcledger.StageArguments{
		ItemId:      4,
		Description: "crate",
		Signature:   "sig4",
	}
	var reply rpcledger.StageReply
	err := client.Call("Ledger.Stage", &arg, &reply)
	assert.NotNil(t, err, "wrong Ledger.Stage")
	assert.Equal(t, fault.ErrNoActiveBlock.Error(), err.Error(), "wrong reply")
}

func TestLedgerList(t *testing.T) {
	client, _, teardown := setup(t)
	defer teardown()

	arg := rpcledger.ListArguments{
		Start: 0,
		Count: 0,
	}
	var reply rpcledger.ListReply
	err := client.Call("Ledger.List", &arg, &reply)
	assert.NotNil(t, err, "wrong Ledger.List")
	assert.Equal(t, fault.ErrInvalidCount.Error(), err.Error(), "wrong reply")
}

func TestLedgerGet(t *testing.T) {
	client, m, teardown := setup(t)
	defer teardown()

	m.EXPECT().Get(uint64(12)).Return(ledger.Summary{}, fault.ErrBlockNotFound).Times(1)

	arg := rpcledger.GetArguments{
		Number: 12,
	}
	var reply rpcledger.GetReply
	err := client.Call("Ledger.Get", &arg, &reply)
	assert.NotNil(t, err, "wrong Ledger.Get")
	assert.Equal(t, fault.ErrBlockNotFound.Error(), err.Error(), "wrong reply")
}

func TestLedgerValidate(t *testing.T) {
	client, m, teardown := setup(t)
	defer teardown()

	m.EXPECT().Validate().Return(&fault.IntegrityError{Number: 3, Err: fault.ErrDigestDoesNotMatch}).Times(1)

	var reply rpcledger.ValidateReply
	err := client.Call("Ledger.Validate", &rpcledger.ValidateArguments{}, &reply)
	assert.Nil(t, err, "wrong Ledger.Validate")
	assert.False(t, reply.Valid, "wrong valid")
	assert.Equal(t, uint64(3), reply.Number, "wrong block number")
}

func TestLedgerPersist(t *testing.T) {
	client, m, teardown := setup(t)
	defer teardown()

	m.EXPECT().Persist().Return(fault.ErrRecordChecksum).Times(1)

	var reply rpcledger.StoreReply
	err := client.Call("Ledger.Persist", &rpcledger.StoreArguments{}, &reply)
	assert.NotNil(t, err, "wrong Ledger.Persist")
	assert.Equal(t, fault.ErrRecordChecksum.Error(), err.Error(), "wrong reply")
}

func TestNodeInfo(t *testing.T) {
	client, m, teardown := setup(t)
	defer teardown()

	m.EXPECT().Info().Return(ledger.Info{Blocks: 7, Head: "00ee"}).Times(1)

	var reply node.InfoReply
	err := client.Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
	assert.Equal(t, 7, reply.Ledger.Blocks, "wrong block count")
	assert.Equal(t, "00ee", reply.Ledger.Head, "wrong head")
}
