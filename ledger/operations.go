// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
)

// Operations - the ledger calls used by the outer surfaces
type Operations interface {
	StageTransaction(itemId int64, description string, signature string) error
	MineNextBlock(ctx context.Context, prefix string) (Summary, error)
	ListBlocks() []Summary
	Get(number uint64) (Summary, error)
	Lookup(hexDigest string) (Summary, error)
	Validate() error
	Persist() error
	Reload() error
	Info() Info
}
