// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/supplychaind/block"
	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/blockrecord"
	"github.com/bitmark-inc/supplychaind/difficulty"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/mine"
	"github.com/bitmark-inc/supplychaind/storage"
)

// lookup cache timing
const (
	indexExpiration = 30 * time.Minute
	indexCleanup    = 10 * time.Minute
)

// Summary - display form of a block
type Summary = blockrecord.Summary

// Options - ledger settings, zero values select defaults
type Options struct {
	Algorithm     string
	Difficulty    string
	CheckInterval uint64
	Timeout       time.Duration
	Clock         func() time.Time
}

// Ledger - a chain together with its store
type Ledger struct {
	sync.Mutex // serialises Persist and Reload

	log        *logger.L
	hasher     *blockdigest.Hasher
	miner      *mine.Miner
	chain      *block.Chain
	store      storage.Store
	difficulty *difficulty.Difficulty
	timeout    time.Duration

	// non-zero from the start of a seal until its persist completes
	mining int32

	// digest → block number
	index *cache.Cache

	// store file state after this process last wrote or read it
	stamp fileStamp
}

type fileStamp struct {
	size    int64
	modTime time.Time
}

// Open - create a ledger and load the store contents
//
// an unknown hash algorithm, an invalid difficulty, an unreadable
// store or a store holding an invalid chain are all errors
func Open(log *logger.L, store storage.Store, options Options) (*Ledger, error) {
	algorithm := options.Algorithm
	if "" == algorithm {
		algorithm = blockdigest.DefaultAlg
	}
	hasher, err := blockdigest.New(algorithm)
	if nil != err {
		log.Criticalf("hash algorithm: %q  error: %s", algorithm, err)
		return nil, err
	}

	prefix := options.Difficulty
	if "" == prefix {
		prefix = difficulty.Default
	}
	target, err := difficulty.New(prefix)
	if nil != err {
		log.Criticalf("difficulty: %q  error: %s", prefix, err)
		return nil, err
	}

	miner := mine.New(logger.New("miner"), hasher, options.CheckInterval)

	l := &Ledger{
		log:        log,
		hasher:     hasher,
		miner:      miner,
		chain:      block.New(logger.New("chain"), hasher, miner, options.Clock),
		store:      store,
		difficulty: target,
		timeout:    options.Timeout,
		index:      cache.New(indexExpiration, indexCleanup),
	}

	log.Infof("hash: %s  difficulty: %q  store: %s", algorithm, target, store.Path())

	err = l.Reload()
	if nil != err {
		return nil, err
	}
	return l, nil
}

// Close - release the store
func (l *Ledger) Close() error {
	return l.store.Close()
}

// Chain - the underlying chain
func (l *Ledger) Chain() *block.Chain {
	return l.chain
}

// StageTransaction - add a transaction to the block being assembled
func (l *Ledger) StageTransaction(itemId int64, description string, signature string) error {
	err := l.chain.AppendTransaction(itemId, description, signature)
	if nil != err {
		l.log.Warnf("stage item: %d  error: %s", itemId, err)
		return err
	}
	return nil
}

// MineNextBlock - seal the staged block (or a new empty one) and
// persist the chain
//
// an empty prefix selects the configured difficulty. If sealing
// succeeds but persisting fails the sealed block is returned with
// the persistence error
func (l *Ledger) MineNextBlock(ctx context.Context, prefix string) (Summary, error) {
	target := l.difficulty
	if "" != prefix {
		d, err := difficulty.New(prefix)
		if nil != err {
			return Summary{}, err
		}
		target = d
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	// reload is refused from the seal until its persist completes
	if !atomic.CompareAndSwapInt32(&l.mining, 0, 1) {
		return Summary{}, fault.ErrBlockSealing
	}
	defer atomic.StoreInt32(&l.mining, 0)

	b, err := l.chain.SealHead(ctx, target)
	if nil != err {
		return Summary{}, err
	}
	l.index.Set(b.Digest.String(), b.Number, cache.DefaultExpiration)

	summary := b.Summary()
	err = l.Persist()
	if nil != err {
		// sealed in memory only, a restart loses this block
		fault.Criticalf("block: %d sealed but not persisted: %s", b.Number, err)
		return summary, err
	}
	return summary, nil
}

// ListBlocks - summaries from head to genesis
func (l *Ledger) ListBlocks() []Summary {
	cursor := l.chain.Traverse()
	summaries := make([]Summary, 0, cursor.Count())
	for b, ok := cursor.Next(); ok; b, ok = cursor.Next() {
		summaries = append(summaries, b.Summary())
	}
	return summaries
}

// Get - summary of a block by number
func (l *Ledger) Get(number uint64) (Summary, error) {
	b, err := l.chain.Get(number)
	if nil != err {
		return Summary{}, err
	}
	return b.Summary(), nil
}

// Validate - check the in-memory chain
func (l *Ledger) Validate() error {
	return l.chain.Validate()
}

// Persist - write the whole chain to the store
func (l *Ledger) Persist() error {
	l.Lock()
	defer l.Unlock()

	if l.stamp != stampOf(l.store.Path()) {
		l.log.Warnf("store: %q changed externally, overwriting", l.store.Path())
	}

	blocks := l.chain.Blocks()
	err := l.store.Save(blocks)
	if nil != err {
		l.log.Errorf("persist: %d blocks  error: %s", len(blocks), err)
		return err
	}
	l.stamp = stampOf(l.store.Path())

	l.log.Infof("persisted: %d blocks", len(blocks))
	return nil
}

// Reload - replace the in-memory chain with the store contents
//
// the stored chain is validated first, if it is invalid the current
// chain is kept and the *fault.IntegrityError returned
func (l *Ledger) Reload() error {
	if l.isMining() {
		l.log.Warn("reload rejected: mining in progress")
		return fault.ErrBlockSealing
	}

	l.Lock()
	defer l.Unlock()

	if l.isMining() {
		l.log.Warn("reload rejected: mining in progress")
		return fault.ErrBlockSealing
	}

	blocks, err := l.store.Load()
	if nil != err {
		l.log.Errorf("reload error: %s", err)
		return err
	}

	err = block.ValidateBlocks(l.hasher, blocks)
	if nil != err {
		l.log.Errorf("reload rejected: %s", err)
		return err
	}

	err = l.chain.Replace(blocks)
	if nil != err {
		l.log.Warnf("reload rejected: %s", err)
		return err
	}

	l.index.Flush()
	for _, b := range blocks {
		if b.Sealed {
			l.index.Set(b.Digest.String(), b.Number, cache.DefaultExpiration)
		}
	}
	l.stamp = stampOf(l.store.Path())

	l.log.Infof("reloaded: %d blocks", len(blocks))
	return nil
}

func (l *Ledger) isMining() bool {
	return 0 != atomic.LoadInt32(&l.mining)
}

// true if the store file is as this process last left it
func (l *Ledger) unchangedOnDisk() bool {
	l.Lock()
	defer l.Unlock()
	return l.stamp == stampOf(l.store.Path())
}

func stampOf(path string) fileStamp {
	info, err := os.Stat(path)
	if nil != err || info.IsDir() {
		return fileStamp{}
	}
	return fileStamp{
		size:    info.Size(),
		modTime: info.ModTime(),
	}
}
