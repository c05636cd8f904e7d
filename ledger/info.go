// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

// Info - ledger status
type Info struct {
	Blocks     int    `json:"blocks"`
	Head       string `json:"head"`
	Staged     int    `json:"staged"`
	Sealing    bool   `json:"sealing"`
	Difficulty string `json:"difficulty"`
	Algorithm  string `json:"algorithm"`
	Hashes     uint64 `json:"hashes"`
	Store      string `json:"store"`
}

// Info - current status, Head is the digest of the newest sealed
// block and Staged the transactions waiting in an unsealed head
func (l *Ledger) Info() Info {
	info := Info{
		Blocks:     l.chain.Size(),
		Sealing:    l.chain.IsSealing() || l.isMining(),
		Difficulty: l.difficulty.Prefix(),
		Algorithm:  l.miner.Algorithm(),
		Hashes:     l.miner.Hashes(),
		Store:      l.store.Path(),
	}

	cursor := l.chain.Traverse()
	for b, ok := cursor.Next(); ok; b, ok = cursor.Next() {
		if b.Sealed {
			info.Head = b.Digest.String()
			break
		}
		info.Staged = len(b.Transactions)
	}
	return info
}
