// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/blockrecord"
	"github.com/bitmark-inc/supplychaind/difficulty"
	"github.com/bitmark-inc/supplychaind/fault"
)

// brute force a single hex digit prefix, around 16 hashes
func sealForTest(t *testing.T, hasher *blockdigest.Hasher, b *blockrecord.Block, prefix string) {
	d, err := difficulty.New(prefix)
	if nil != err {
		t.Fatalf("difficulty error: %s", err)
	}
	stem := b.Header().Stem()
	n := len(stem)
	for nonce := blockrecord.NonceType(0); ; nonce += 1 {
		digest := hasher.Digest(blockrecord.AppendNonce(stem[:n], nonce))
		if d.Met(digest) {
			b.Seal(nonce, digest, prefix)
			return
		}
	}
}

func newHasher(t *testing.T) *blockdigest.Hasher {
	hasher, err := blockdigest.New(blockdigest.SHA256)
	if nil != err {
		t.Fatalf("hasher error: %s", err)
	}
	return hasher
}

func TestValidateGenesis(t *testing.T) {
	hasher := newHasher(t)
	genesis := blockrecord.New(0, testTime, blockdigest.Sentinel)

	// unsealed head is allowed
	assert.Nil(t, blockrecord.Validate(hasher, genesis, nil, 0, true), "unsealed head")
	assert.Equal(t, fault.ErrUnsealedBlockNotAtHead, blockrecord.Validate(hasher, genesis, nil, 0, false), "unsealed body")

	sealForTest(t, hasher, genesis, "0")
	assert.Nil(t, blockrecord.Validate(hasher, genesis, nil, 0, true), "sealed genesis")
	assert.Equal(t, fault.ErrNumberOutOfSequence, blockrecord.Validate(hasher, genesis, nil, 1, true), "sequence")

	bad := genesis.Copy()
	bad.PreviousBlock = blockdigest.Digest{1}
	assert.Equal(t, fault.ErrGenesisPrevious, blockrecord.Validate(hasher, bad, nil, 0, true), "genesis previous")
}

func TestValidateLinkAndProof(t *testing.T) {
	hasher := newHasher(t)
	genesis := blockrecord.New(0, testTime, blockdigest.Sentinel)
	sealForTest(t, hasher, genesis, "0")

	next := blockrecord.New(1, testTime, genesis.Digest)
	sealForTest(t, hasher, next, "a")
	assert.Nil(t, blockrecord.Validate(hasher, next, genesis, 1, true), "valid")

	unlinked := next.Copy()
	unlinked.PreviousBlock = blockdigest.Sentinel
	assert.Equal(t, fault.ErrPreviousDoesNotMatch, blockrecord.Validate(hasher, unlinked, genesis, 1, true), "link")

	tampered := next.Copy()
	tampered.Nonce += 1
	assert.Equal(t, fault.ErrDigestDoesNotMatch, blockrecord.ValidProof(hasher, tampered), "nonce")

	tampered = next.Copy()
	tampered.Timestamp = tampered.Timestamp.Add(1e9)
	assert.Equal(t, fault.ErrDigestDoesNotMatch, blockrecord.ValidProof(hasher, tampered), "timestamp")

	wrongPrefix := next.Copy()
	wrongPrefix.Difficulty = "b"
	assert.Equal(t, fault.ErrDifficultyNotMet, blockrecord.ValidProof(hasher, wrongPrefix), "prefix")

	badPrefix := next.Copy()
	badPrefix.Difficulty = ""
	assert.Equal(t, fault.ErrInvalidDifficulty, blockrecord.ValidProof(hasher, badPrefix), "empty prefix")

	noDigest := next.Copy()
	noDigest.Digest = blockdigest.Digest{}
	assert.Equal(t, fault.ErrSealedBlock, blockrecord.ValidProof(hasher, noDigest), "zero digest")
}
