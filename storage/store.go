// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"

	"github.com/bitmark-inc/supplychaind/blockrecord"
	"github.com/bitmark-inc/supplychaind/fault"
)

// store types
const (
	TypeFile    = "file"
	TypeLevelDB = "leveldb"
)

// Store - persists the complete chain
type Store interface {
	// replace stored contents with blocks, genesis first
	Save(blocks []*blockrecord.Block) error

	// all stored blocks, genesis first, empty if nothing is stored
	Load() ([]*blockrecord.Block, error)

	// location on disk
	Path() string

	Close() error
}

// New - open a store of the given type
func New(storeType string, path string) (Store, error) {
	switch strings.ToLower(storeType) {
	case TypeFile, "":
		return NewFile(path), nil
	case TypeLevelDB:
		return NewLevelDB(path)
	default:
		return nil, fault.ErrInvalidStoreType
	}
}
