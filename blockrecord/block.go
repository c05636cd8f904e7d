// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/transactionrecord"
)

// MaximumTransactions - capacity of a block
const MaximumTransactions = 5

// Block - one entry of the chain
//
// Digest, Nonce and Difficulty are only meaningful once Sealed
type Block struct {
	Number        uint64
	Timestamp     time.Time
	Transactions  []transactionrecord.Transaction
	PreviousBlock blockdigest.Digest
	Digest        blockdigest.Digest
	Nonce         NonceType
	Difficulty    string
	Sealed        bool
}

// New - an empty unsealed block with the timestamp cut to whole
// seconds so it survives the packed record unchanged
func New(number uint64, timestamp time.Time, previous blockdigest.Digest) *Block {
	return &Block{
		Number:        number,
		Timestamp:     time.Unix(timestamp.Unix(), 0).UTC(),
		Transactions:  make([]transactionrecord.Transaction, 0, MaximumTransactions),
		PreviousBlock: previous,
	}
}

// IsFull - true when no more transactions fit
func (block *Block) IsFull() bool {
	return len(block.Transactions) >= MaximumTransactions
}

// Copy - deep copy so callers never share transactions with the chain
func (block *Block) Copy() *Block {
	c := *block
	n := len(block.Transactions)
	capacity := MaximumTransactions
	if n > capacity {
		capacity = n
	}
	c.Transactions = make([]transactionrecord.Transaction, n, capacity)
	copy(c.Transactions, block.Transactions)
	return &c
}

// Seal - fix the proof of work result
func (block *Block) Seal(nonce NonceType, digest blockdigest.Digest, prefix string) {
	block.Nonce = nonce
	block.Digest = digest
	block.Difficulty = prefix
	block.Sealed = true
}

// Header - the fields covered by the proof of work
func (block *Block) Header() Header {
	return Header{
		Number:        block.Number,
		Timestamp:     block.Timestamp.Unix(),
		PreviousBlock: block.PreviousBlock,
	}
}

// Header - the hashed part of a block
//
// transactions are not part of the header material
type Header struct {
	Number        uint64
	Timestamp     int64
	PreviousBlock blockdigest.Digest
}

// Stem - header material without the nonce, the miner appends
// successive nonces to this
func (header Header) Stem() []byte {
	buffer := make([]byte, 0, 2*20+blockdigest.StringLength+20)
	buffer = strconv.AppendUint(buffer, header.Number, 10)
	buffer = strconv.AppendInt(buffer, header.Timestamp, 10)
	n := len(buffer)
	buffer = buffer[:n+blockdigest.StringLength]
	hex.Encode(buffer[n:], header.PreviousBlock[:])
	return buffer
}

// Material - canonical bytes hashed for a given nonce:
// decimal number, decimal unix seconds, lowercase hex previous
// digest and decimal nonce with no separators
func (header Header) Material(nonce NonceType) []byte {
	return AppendNonce(header.Stem(), nonce)
}

// AppendNonce - complete a stem, the stem's backing array is reused
func AppendNonce(stem []byte, nonce NonceType) []byte {
	return strconv.AppendUint(stem, uint64(nonce), 10)
}
