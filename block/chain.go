// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/blockrecord"
	"github.com/bitmark-inc/supplychaind/difficulty"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/transactionrecord"
)

// Miner - nonce search used to seal the head
type Miner interface {
	Mine(ctx context.Context, header blockrecord.Header, target *difficulty.Difficulty) (blockrecord.NonceType, blockdigest.Digest, error)
}

// Chain - arena of blocks, genesis first
type Chain struct {
	sync.RWMutex

	log    *logger.L
	hasher *blockdigest.Hasher
	miner  Miner
	now    func() time.Time

	blocks  []*blockrecord.Block
	sealing bool
}

// New - an empty chain, nil clock selects time.Now
func New(log *logger.L, hasher *blockdigest.Hasher, miner Miner, clock func() time.Time) *Chain {
	if nil == clock {
		clock = time.Now
	}
	return &Chain{
		log:    log,
		hasher: hasher,
		miner:  miner,
		now:    clock,
		blocks: make([]*blockrecord.Block, 0, 16),
	}
}

// Size - number of blocks
func (chain *Chain) Size() int {
	chain.RLock()
	defer chain.RUnlock()
	return len(chain.blocks)
}

// IsSealing - true while a nonce search is in progress
func (chain *Chain) IsSealing() bool {
	chain.RLock()
	defer chain.RUnlock()
	return chain.sealing
}

// Head - copy of the newest block
func (chain *Chain) Head() (*blockrecord.Block, error) {
	chain.RLock()
	defer chain.RUnlock()

	if 0 == len(chain.blocks) {
		return nil, fault.ErrBlockNotFound
	}
	return chain.blocks[len(chain.blocks)-1].Copy(), nil
}

// Get - copy of a block by number
func (chain *Chain) Get(number uint64) (*blockrecord.Block, error) {
	chain.RLock()
	defer chain.RUnlock()

	if number >= uint64(len(chain.blocks)) {
		return nil, fault.ErrBlockNotFound
	}
	return chain.blocks[number].Copy(), nil
}

// Blocks - copies of all blocks, genesis first
func (chain *Chain) Blocks() []*blockrecord.Block {
	chain.RLock()
	defer chain.RUnlock()

	blocks := make([]*blockrecord.Block, len(chain.blocks))
	for i, b := range chain.blocks {
		blocks[i] = b.Copy()
	}
	return blocks
}

// Replace - swap the whole arena, used when reloading from a store
//
// no validation is done here, the caller runs Validate
func (chain *Chain) Replace(blocks []*blockrecord.Block) error {
	chain.Lock()
	defer chain.Unlock()

	if chain.sealing {
		return fault.ErrBlockSealing
	}

	arena := make([]*blockrecord.Block, len(blocks))
	for i, b := range blocks {
		arena[i] = b.Copy()
	}
	chain.blocks = arena

	chain.log.Infof("chain replaced with: %d blocks", len(arena))
	return nil
}

// AppendTransaction - add a transaction to the unsealed head
//
// when the head is sealed a new block is opened after it, an empty
// chain has no block to receive transactions
func (chain *Chain) AppendTransaction(itemId int64, description string, signature string) error {
	tx, err := transactionrecord.New(itemId, description, signature)
	if nil != err {
		return err
	}

	chain.Lock()
	defer chain.Unlock()

	if chain.sealing {
		return fault.ErrBlockSealing
	}

	n := len(chain.blocks)
	if 0 == n {
		return fault.ErrNoActiveBlock
	}

	head := chain.blocks[n-1]
	if head.Sealed {
		head = blockrecord.New(head.Number+1, chain.now(), head.Digest)
		chain.blocks = append(chain.blocks, head)
		chain.log.Infof("opened block: %d", head.Number)
	}

	if head.IsFull() {
		return fault.ErrBlockFull
	}

	head.Transactions = append(head.Transactions, *tx)
	chain.log.Debugf("block: %d  transaction: %d  item: %d", head.Number, len(head.Transactions), tx.ItemId)
	return nil
}

// SealHead - mine the unsealed head, or a new empty block if there
// is none, and link it as the sealed head
//
// on any error the chain is exactly as it was before the call
func (chain *Chain) SealHead(ctx context.Context, target *difficulty.Difficulty) (*blockrecord.Block, error) {
	if nil == target {
		return nil, fault.ErrInvalidDifficulty
	}

	chain.Lock()
	if chain.sealing {
		chain.Unlock()
		return nil, fault.ErrBlockSealing
	}

	staged := false
	var candidate *blockrecord.Block
	n := len(chain.blocks)
	switch {
	case 0 == n:
		candidate = blockrecord.New(0, chain.now(), blockdigest.Sentinel)
	case !chain.blocks[n-1].Sealed:
		candidate = chain.blocks[n-1].Copy()
		staged = true
	default:
		head := chain.blocks[n-1]
		candidate = blockrecord.New(head.Number+1, chain.now(), head.Digest)
	}
	chain.sealing = true
	chain.Unlock()

	nonce, digest, err := chain.miner.Mine(ctx, candidate.Header(), target)

	chain.Lock()
	defer chain.Unlock()
	chain.sealing = false

	if nil != err {
		chain.log.Warnf("block: %d  not sealed: %s", candidate.Number, err)
		return nil, err
	}

	candidate.Seal(nonce, digest, target.Prefix())
	if staged {
		chain.blocks[n-1] = candidate
	} else {
		chain.blocks = append(chain.blocks, candidate)
	}

	chain.log.Infof("sealed block: %d  transactions: %d  digest: %s", candidate.Number, len(candidate.Transactions), candidate.Digest)
	return candidate.Copy(), nil
}

// Validate - check every block from genesis to head, the first
// failure is returned as a *fault.IntegrityError
func (chain *Chain) Validate() error {
	chain.RLock()
	defer chain.RUnlock()

	return ValidateBlocks(chain.hasher, chain.blocks)
}

// ValidateBlocks - check a genesis first list of blocks against the
// chain rules without installing them
func ValidateBlocks(hasher *blockdigest.Hasher, blocks []*blockrecord.Block) error {
	last := len(blocks) - 1
	var predecessor *blockrecord.Block
	for i, b := range blocks {
		err := blockrecord.Validate(hasher, b, predecessor, uint64(i), i == last)
		if nil != err {
			return &fault.IntegrityError{
				Number: uint64(i),
				Err:    err,
			}
		}
		predecessor = b
	}
	return nil
}
