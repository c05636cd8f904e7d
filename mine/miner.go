// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/blockrecord"
	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/difficulty"
	"github.com/bitmark-inc/supplychaind/fault"
)

// DefaultCheckInterval - nonces tried between cancellation checks
const DefaultCheckInterval = 4096

// Miner - searches for a nonce whose digest meets a difficulty
type Miner struct {
	log           *logger.L
	hasher        *blockdigest.Hasher
	checkInterval uint64
	hashes        counter.Counter
}

// result of one search
type result struct {
	nonce  blockrecord.NonceType
	digest blockdigest.Digest
	hashes uint64
	err    error
}

// New - create a miner, zero check interval selects the default
func New(log *logger.L, hasher *blockdigest.Hasher, checkInterval uint64) *Miner {
	if 0 == checkInterval {
		checkInterval = DefaultCheckInterval
	}
	return &Miner{
		log:           log,
		hasher:        hasher,
		checkInterval: checkInterval,
	}
}

// Hashes - total digests computed by this miner
func (miner *Miner) Hashes() uint64 {
	return miner.hashes.Uint64()
}

// Algorithm - name of the hash in use
func (miner *Miner) Algorithm() string {
	return miner.hasher.Algorithm()
}

// Mine - find the smallest nonce for the header that meets the
// difficulty
//
// the search runs on its own goroutine and the caller blocks until
// it completes or ctx is done, nothing outside the miner is modified
func (miner *Miner) Mine(ctx context.Context, header blockrecord.Header, target *difficulty.Difficulty) (blockrecord.NonceType, blockdigest.Digest, error) {
	if nil == target {
		return 0, blockdigest.Digest{}, fault.ErrInvalidDifficulty
	}

	miner.log.Infof("mining block: %d  difficulty: %q  expected hashes: %.0f", header.Number, target, target.ExpectedHashes())

	done := make(chan result, 1)
	start := time.Now()

	go func() {
		done <- miner.search(ctx, header, target)
	}()

	r := <-done

	elapsed := time.Since(start)
	if elapsed > 0 {
		rate := float64(r.hashes) / elapsed.Minutes()
		miner.log.Infof("hashes: %d  hash rate: %f H/min", r.hashes, rate)
	}

	if nil != r.err {
		miner.log.Warnf("block: %d  search stopped after hashes: %d  error: %s", header.Number, r.hashes, r.err)
		return 0, blockdigest.Digest{}, r.err
	}

	miner.log.Infof("block: %d  nonce: %d  digest: %s", header.Number, r.nonce, r.digest)
	return r.nonce, r.digest, nil
}

func (miner *Miner) search(ctx context.Context, header blockrecord.Header, target *difficulty.Difficulty) result {
	stem := header.Stem()
	n := len(stem)

	// room for the longest decimal nonce
	buffer := make([]byte, n, n+20)
	copy(buffer, stem)

	var count uint64
	defer func() {
		miner.hashes.Add(count)
	}()

	for nonce := uint64(0); ; nonce += 1 {
		if 0 == nonce%miner.checkInterval {
			select {
			case <-ctx.Done():
				return result{
					nonce:  blockrecord.NonceType(nonce),
					hashes: count,
					err:    fmt.Errorf("%w: %s", fault.ErrMiningCancelled, ctx.Err()),
				}
			default:
			}
		}

		digest := miner.hasher.Digest(blockrecord.AppendNonce(buffer[:n], blockrecord.NonceType(nonce)))
		count += 1

		if target.Met(digest) {
			return result{
				nonce:  blockrecord.NonceType(nonce),
				digest: digest,
				hashes: count,
			}
		}

		if math.MaxUint64 == nonce {
			return result{
				nonce:  blockrecord.NonceType(nonce),
				hashes: count,
				err:    fault.ErrNonceExhausted,
			}
		}
	}
}
