// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	rpcledger "github.com/bitmark-inc/supplychaind/rpc/ledger"
)

// StageData - parameters for a new transaction
type StageData struct {
	ItemId      int64
	Description string
	Signature   string
}

// Stage - add a transaction to the open block
func (client *Client) Stage(stageConfig *StageData) (*rpcledger.StageReply, error) {

	args := rpcledger.StageArguments{
		ItemId:      stageConfig.ItemId,
		Description: stageConfig.Description,
		Signature:   stageConfig.Signature,
	}

	client.printJson("Stage Request", args)

	var reply rpcledger.StageReply
	if err := client.client.Call("Ledger.Stage", &args, &reply); nil != err {
		return nil, err
	}

	client.printJson("Stage Reply", reply)

	return &reply, nil
}

// Mine - seal the open block, an empty difficulty keeps the
// server setting
func (client *Client) Mine(difficulty string) (*rpcledger.MineReply, error) {

	args := rpcledger.MineArguments{
		Difficulty: difficulty,
	}

	client.printJson("Mine Request", args)

	var reply rpcledger.MineReply
	if err := client.client.Call("Ledger.Mine", &args, &reply); nil != err {
		return nil, err
	}

	client.printJson("Mine Reply", reply)

	return &reply, nil
}

// List - a page of block summaries
func (client *Client) List(start uint64, count int) (*rpcledger.ListReply, error) {

	args := rpcledger.ListArguments{
		Start: start,
		Count: count,
	}

	client.printJson("List Request", args)

	var reply rpcledger.ListReply
	if err := client.client.Call("Ledger.List", &args, &reply); nil != err {
		return nil, err
	}

	client.printJson("List Reply", reply)

	return &reply, nil
}

// GetByNumber - one block by its index
func (client *Client) GetByNumber(number uint64) (*rpcledger.GetReply, error) {
	return client.get(rpcledger.GetArguments{Number: number})
}

// GetByDigest - one block by its hex digest
func (client *Client) GetByDigest(digest string) (*rpcledger.GetReply, error) {
	return client.get(rpcledger.GetArguments{Digest: digest})
}

func (client *Client) get(args rpcledger.GetArguments) (*rpcledger.GetReply, error) {

	client.printJson("Get Request", args)

	var reply rpcledger.GetReply
	if err := client.client.Call("Ledger.Get", &args, &reply); nil != err {
		return nil, err
	}

	client.printJson("Get Reply", reply)

	return &reply, nil
}

// Validate - check the whole chain on the server
func (client *Client) Validate() (*rpcledger.ValidateReply, error) {

	var reply rpcledger.ValidateReply
	if err := client.client.Call("Ledger.Validate", &rpcledger.ValidateArguments{}, &reply); nil != err {
		return nil, err
	}

	client.printJson("Validate Reply", reply)

	return &reply, nil
}

// Persist - write the chain to the server store
func (client *Client) Persist() (*rpcledger.StoreReply, error) {
	return client.store("Ledger.Persist")
}

// Reload - replace the server chain with the stored copy
func (client *Client) Reload() (*rpcledger.StoreReply, error) {
	return client.store("Ledger.Reload")
}

func (client *Client) store(method string) (*rpcledger.StoreReply, error) {

	var reply rpcledger.StoreReply
	if err := client.client.Call(method, &rpcledger.StoreArguments{}, &reply); nil != err {
		return nil, err
	}

	client.printJson(method+" Reply", reply)

	return &reply, nil
}
