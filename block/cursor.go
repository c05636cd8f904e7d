// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/supplychaind/blockrecord"
)

// Cursor - head to genesis iteration over a snapshot of the chain
type Cursor struct {
	snapshot []*blockrecord.Block
	index    int
}

// Traverse - snapshot the chain for iteration
//
// sealed blocks are never modified in place so only an unsealed
// head needs copying here
func (chain *Chain) Traverse() *Cursor {
	chain.RLock()
	defer chain.RUnlock()

	snapshot := make([]*blockrecord.Block, len(chain.blocks))
	copy(snapshot, chain.blocks)
	if n := len(snapshot); n > 0 && !snapshot[n-1].Sealed {
		snapshot[n-1] = snapshot[n-1].Copy()
	}

	return &Cursor{
		snapshot: snapshot,
		index:    len(snapshot),
	}
}

// Next - copy of the next older block, false after genesis
func (cursor *Cursor) Next() (*blockrecord.Block, bool) {
	if cursor.index <= 0 {
		return nil, false
	}
	cursor.index -= 1
	return cursor.snapshot[cursor.index].Copy(), true
}

// Reset - restart from the head of the same snapshot
func (cursor *Cursor) Reset() {
	cursor.index = len(cursor.snapshot)
}

// Count - blocks in the snapshot
func (cursor *Cursor) Count() int {
	return len(cursor.snapshot)
}
