// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"time"

	"github.com/bitmark-inc/supplychaind/transactionrecord"
)

// Summary - display form of a block
//
// field names follow the explorer's JSON
type Summary struct {
	Number       uint64                          `json:"index"`
	Timestamp    time.Time                       `json:"timestamp"`
	Previous     string                          `json:"prev_hash"`
	Digest       string                          `json:"hash"`
	Nonce        NonceType                       `json:"nonce"`
	Difficulty   string                          `json:"difficulty"`
	Sealed       bool                            `json:"sealed"`
	Transactions []transactionrecord.Transaction `json:"transactions"`
}

// Summary - display copy of a block, an unsealed block has an empty
// digest string
func (block *Block) Summary() Summary {
	s := Summary{
		Number:       block.Number,
		Timestamp:    block.Timestamp,
		Previous:     block.PreviousBlock.String(),
		Nonce:        block.Nonce,
		Difficulty:   block.Difficulty,
		Sealed:       block.Sealed,
		Transactions: make([]transactionrecord.Transaction, len(block.Transactions)),
	}
	copy(s.Transactions, block.Transactions)
	if block.Sealed {
		s.Digest = block.Digest.String()
	}
	return s
}
