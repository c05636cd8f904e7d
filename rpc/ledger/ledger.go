// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/supplychaind/fault"
	chain "github.com/bitmark-inc/supplychaind/ledger"
	"github.com/bitmark-inc/supplychaind/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100

	// mining is slow so allow far fewer calls
	rateLimitMine = 1
	rateBurstMine = 2
)

// limit for count
const maximumBlockList = 100

// MineTimeout - longest search a client request may start, below
// the explorer's write timeout
const MineTimeout = 4 * time.Minute

// Ledger - an RPC entry for chain related functions
type Ledger struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	MineLimiter *rate.Limiter
	Start       time.Time
	Operations  chain.Operations

	// cancelled at shutdown
	Context     context.Context
	MineTimeout time.Duration
}

// New - create the ledger RPC service, searches stop when ctx is done
func New(ctx context.Context, log *logger.L, start time.Time, operations chain.Operations) *Ledger {
	return &Ledger{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		MineLimiter: rate.NewLimiter(rateLimitMine, rateBurstMine),
		Start:       start,
		Operations:  operations,
		Context:     ctx,
		MineTimeout: MineTimeout,
	}
}

// MineContext - bound a search started by request to the timeout and
// to the lifetime of base
func MineContext(base context.Context, request context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(request, timeout)
	} else {
		ctx, cancel = context.WithCancel(request)
	}

	if base != request {
		go func() {
			select {
			case <-base.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
	}
	return ctx, cancel
}

// ---

// StageArguments - a transaction for the open block
type StageArguments struct {
	ItemId      int64  `json:"item_id"`
	Description string `json:"description"`
	Signature   string `json:"signature"`
}

// StageReply - result of staging
type StageReply struct {
	Staged int `json:"staged"`
}

// Stage - add a transaction to the open block
func (l *Ledger) Stage(arguments *StageArguments, reply *StageReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	err := l.Operations.StageTransaction(arguments.ItemId, arguments.Description, arguments.Signature)
	if nil != err {
		l.Log.Debugf("stage item: %d  error: %s", arguments.ItemId, err)
		return err
	}

	reply.Staged = l.Operations.Info().Staged
	return nil
}

// ---

// MineArguments - difficulty for the next block, empty for the
// configured default
type MineArguments struct {
	Difficulty string `json:"difficulty"`
}

// MineReply - the sealed block, a non-empty PersistError means the
// block is sealed in memory but was not written to the store
type MineReply struct {
	Block        chain.Summary `json:"block"`
	PersistError string        `json:"persistError,omitempty"`
}

// Mine - seal the open block, or a new genesis on an empty chain
func (l *Ledger) Mine(arguments *MineArguments, reply *MineReply) error {

	if err := ratelimit.Limit(l.MineLimiter); nil != err {
		return err
	}

	prefix := ""
	if nil != arguments {
		prefix = arguments.Difficulty
	}

	ctx, cancel := MineContext(l.Context, l.Context, l.MineTimeout)
	defer cancel()

	summary, err := l.Operations.MineNextBlock(ctx, prefix)
	if nil != err && !summary.Sealed {
		l.Log.Warnf("mine difficulty: %q  error: %s", prefix, err)
		return err
	}

	if nil != err {
		l.Log.Errorf("mined block: %d  hash: %s  persist error: %s", summary.Number, summary.Digest, err)
		reply.PersistError = err.Error()
	} else {
		l.Log.Infof("mined block: %d  hash: %s", summary.Number, summary.Digest)
	}
	reply.Block = summary
	return nil
}

// ---

// ListArguments - page through the chain from the head
type ListArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// ListReply - a page of blocks, NextStart is zero when no more remain
type ListReply struct {
	Blocks    []chain.Summary `json:"blocks"`
	NextStart uint64          `json:"nextStart,string"`
}

// List - blocks head first, Start skips that many blocks
func (l *Ledger) List(arguments *ListArguments, reply *ListReply) error {

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	if err := ratelimit.LimitN(l.Limiter, arguments.Count, maximumBlockList); nil != err {
		return err
	}

	blocks := l.Operations.ListBlocks()

	reply.Blocks = []chain.Summary{}
	if arguments.Start >= uint64(len(blocks)) {
		return nil
	}

	end := arguments.Start + uint64(arguments.Count)
	if end >= uint64(len(blocks)) {
		end = uint64(len(blocks))
	} else {
		reply.NextStart = end
	}

	reply.Blocks = blocks[arguments.Start:end]
	return nil
}

// ---

// GetArguments - select a block by digest, or by number when the
// digest is empty
type GetArguments struct {
	Number uint64 `json:"number,string"`
	Digest string `json:"hash"`
}

// GetReply - the selected block
type GetReply struct {
	Block chain.Summary `json:"block"`
}

// Get - fetch a single block
func (l *Ledger) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	var err error
	if "" != arguments.Digest {
		reply.Block, err = l.Operations.Lookup(arguments.Digest)
	} else {
		reply.Block, err = l.Operations.Get(arguments.Number)
	}
	return err
}

// ---

// ValidateArguments - empty arguments for validate request
type ValidateArguments struct{}

// ValidateReply - outcome of a full chain check
type ValidateReply struct {
	Valid  bool   `json:"valid"`
	Number uint64 `json:"number"`
	Error  string `json:"error,omitempty"`
}

// Validate - check the whole chain, an integrity failure is a
// successful call with Valid false
func (l *Ledger) Validate(_ *ValidateArguments, reply *ValidateReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	report, err := Report(l.Operations.Validate())
	if nil != err {
		return err
	}
	*reply = report
	return nil
}

// Report - convert the result of a chain validation into a reply,
// errors other than integrity failures are returned unchanged
func Report(err error) (ValidateReply, error) {
	if nil == err {
		return ValidateReply{Valid: true}, nil
	}
	integrity, ok := fault.IsErrIntegrity(err)
	if !ok {
		return ValidateReply{}, err
	}
	return ValidateReply{
		Valid:  false,
		Number: integrity.Number,
		Error:  integrity.Err.Error(),
	}, nil
}

// ---

// StoreArguments - empty arguments for persist and reload
type StoreArguments struct{}

// StoreReply - chain size after the store operation
type StoreReply struct {
	Blocks int `json:"blocks"`
}

// Persist - write the chain to the store
func (l *Ledger) Persist(_ *StoreArguments, reply *StoreReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if err := l.Operations.Persist(); nil != err {
		l.Log.Errorf("persist error: %s", err)
		return err
	}
	reply.Blocks = l.Operations.Info().Blocks
	return nil
}

// Reload - replace the chain with the store contents, an invalid
// stored chain leaves the current one in place
func (l *Ledger) Reload(_ *StoreArguments, reply *StoreReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if err := l.Operations.Reload(); nil != err {
		l.Log.Errorf("reload error: %s", err)
		return err
	}
	reply.Blocks = l.Operations.Info().Blocks
	return nil
}
