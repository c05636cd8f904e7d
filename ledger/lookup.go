// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/fault"
)

// Lookup - summary of the sealed block with the given digest
func (l *Ledger) Lookup(hexDigest string) (Summary, error) {
	d, err := blockdigest.FromString(hexDigest)
	if nil != err {
		return Summary{}, err
	}
	key := d.String()

	if n, found := l.index.Get(key); found {
		b, err := l.chain.Get(n.(uint64))
		if nil == err && b.Sealed && b.Digest == d {
			return b.Summary(), nil
		}
		l.index.Delete(key)
	}

	// expired or never indexed
	cursor := l.chain.Traverse()
	for b, ok := cursor.Next(); ok; b, ok = cursor.Next() {
		if b.Sealed && b.Digest == d {
			l.index.Set(key, b.Number, cache.DefaultExpiration)
			return b.Summary(), nil
		}
	}
	return Summary{}, fault.ErrBlockNotFound
}
