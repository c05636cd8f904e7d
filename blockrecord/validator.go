// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/difficulty"
	"github.com/bitmark-inc/supplychaind/fault"
)

// ValidSequence - block at position i of the chain must carry number i
func ValidSequence(block *Block, position uint64) error {
	if block.Number != position {
		return fault.ErrNumberOutOfSequence
	}
	return nil
}

// ValidCapacity - transaction count within the block limit
func ValidCapacity(block *Block) error {
	if len(block.Transactions) > MaximumTransactions {
		return fault.ErrTooManyTransactions
	}
	return nil
}

// ValidLink - previous digest must be the sentinel for genesis
// (nil predecessor) or the predecessor's digest
func ValidLink(block *Block, predecessor *Block) error {
	if nil == predecessor {
		if block.PreviousBlock != blockdigest.Sentinel {
			return fault.ErrGenesisPrevious
		}
		return nil
	}
	if block.PreviousBlock != predecessor.Digest {
		return fault.ErrPreviousDoesNotMatch
	}
	return nil
}

// ValidProof - recompute the digest of a sealed block and check it
// against the stored digest and the difficulty it was mined at
func ValidProof(hasher *blockdigest.Hasher, block *Block) error {
	if !block.Sealed || block.Digest.IsZero() {
		return fault.ErrSealedBlock
	}

	d, err := difficulty.New(block.Difficulty)
	if nil != err {
		return err
	}

	digest := hasher.Digest(block.Header().Material(block.Nonce))
	if digest != block.Digest {
		return fault.ErrDigestDoesNotMatch
	}
	if !d.Met(digest) {
		return fault.ErrDifficultyNotMet
	}
	return nil
}

// Validate - all per-block rules for the block at a position of the
// chain, only the head may be unsealed
func Validate(hasher *blockdigest.Hasher, block *Block, predecessor *Block, position uint64, isHead bool) error {
	if err := ValidSequence(block, position); nil != err {
		return err
	}
	if err := ValidCapacity(block); nil != err {
		return err
	}
	if err := ValidLink(block, predecessor); nil != err {
		return err
	}
	if !block.Sealed {
		if !isHead {
			return fault.ErrUnsealedBlockNotAtHead
		}
		return nil
	}
	return ValidProof(hasher, block)
}
