// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/difficulty"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/transactionrecord"
)

// byte sizes for various fields
const (
	NumberSize           = 8                        // This block's number
	TimestampSize        = 8                        // seconds since 1970-01-01T00:00 UTC
	TransactionCountSize = 2                        // Count of transactions
	FlagsSize            = 1                        // bit 0: sealed
	DifficultyLengthSize = 1                        // bytes used in difficulty
	DifficultySize       = difficulty.MaximumLength // hex prefix
	PreviousBlockSize    = blockdigest.Length       // digest of the previous block
	DigestSize           = blockdigest.Length       // digest of this block
	NonceSize            = 8                        // 64-bit number (starts at 0)
)

// offsets of the fields
const (
	numberOffset           = 0
	timestampOffset        = numberOffset + NumberSize
	transactionCountOffset = timestampOffset + TimestampSize
	flagsOffset            = transactionCountOffset + TransactionCountSize
	difficultyLengthOffset = flagsOffset + FlagsSize
	difficultyOffset       = difficultyLengthOffset + DifficultyLengthSize
	previousBlockOffset    = difficultyOffset + DifficultySize
	digestOffset           = previousBlockOffset + PreviousBlockSize
	nonceOffset            = digestOffset + DigestSize
	transactionsOffset     = nonceOffset + NonceSize

	// TotalSize - bytes in a packed block, unused slots are zero
	TotalSize = transactionsOffset + MaximumTransactions*transactionrecord.TotalSize
)

const (
	flagSealed = 1 << 0
	flagsMask  = flagSealed
)

// PackedBlock - use fix size array to simplify storage
type PackedBlock [TotalSize]byte

// Pack - convert a block to its fixed size record
func (block *Block) Pack() (PackedBlock, error) {
	record := PackedBlock{}

	count := len(block.Transactions)
	if count > MaximumTransactions {
		return record, fault.ErrTooManyTransactions
	}
	if len(block.Difficulty) > DifficultySize {
		return record, fault.ErrInvalidDifficulty
	}

	binary.LittleEndian.PutUint64(record[numberOffset:], block.Number)
	binary.LittleEndian.PutUint64(record[timestampOffset:], uint64(block.Timestamp.Unix()))
	binary.LittleEndian.PutUint16(record[transactionCountOffset:], uint16(count))
	if block.Sealed {
		record[flagsOffset] |= flagSealed
	}
	record[difficultyLengthOffset] = byte(len(block.Difficulty))
	copy(record[difficultyOffset:previousBlockOffset], block.Difficulty)
	copy(record[previousBlockOffset:digestOffset], block.PreviousBlock[:])
	copy(record[digestOffset:nonceOffset], block.Digest[:])
	binary.LittleEndian.PutUint64(record[nonceOffset:], uint64(block.Nonce))

	for i := range block.Transactions {
		packed := block.Transactions[i].Pack()
		start := transactionsOffset + i*transactionrecord.TotalSize
		copy(record[start:start+transactionrecord.TotalSize], packed[:])
	}
	return record, nil
}

// Unpack - turn a record back into a block
//
// only the record format is checked here, chain rules are the
// caller's concern
func (record *PackedBlock) Unpack() (*Block, error) {
	count := int(binary.LittleEndian.Uint16(record[transactionCountOffset:]))
	if count > MaximumTransactions {
		return nil, fault.ErrTooManyTransactions
	}

	flags := record[flagsOffset]
	if 0 != flags&^flagsMask {
		return nil, fault.ErrRecordHeader
	}

	difficultyLength := int(record[difficultyLengthOffset])
	if difficultyLength > DifficultySize {
		return nil, fault.ErrInvalidDifficulty
	}

	block := &Block{
		Number:       binary.LittleEndian.Uint64(record[numberOffset:]),
		Timestamp:    time.Unix(int64(binary.LittleEndian.Uint64(record[timestampOffset:])), 0).UTC(),
		Transactions: make([]transactionrecord.Transaction, 0, MaximumTransactions),
		Nonce:        NonceType(binary.LittleEndian.Uint64(record[nonceOffset:])),
		Difficulty:   string(record[difficultyOffset : difficultyOffset+difficultyLength]),
		Sealed:       0 != flags&flagSealed,
	}

	err := blockdigest.DigestFromBytes(&block.PreviousBlock, record[previousBlockOffset:digestOffset])
	if nil != err {
		return nil, err
	}
	err = blockdigest.DigestFromBytes(&block.Digest, record[digestOffset:nonceOffset])
	if nil != err {
		return nil, err
	}

	for i := 0; i < count; i += 1 {
		start := transactionsOffset + i*transactionrecord.TotalSize
		packed := transactionrecord.Packed{}
		copy(packed[:], record[start:start+transactionrecord.TotalSize])
		tx, err := packed.Unpack()
		if nil != err {
			return nil, err
		}
		block.Transactions = append(block.Transactions, *tx)
	}
	return block, nil
}
