// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/supplychaind/blockrecord"
	"github.com/bitmark-inc/supplychaind/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
	blockPrefix      = 'B'
)

// LevelDB - chain stored as one key per block
//
// key: 'B' ++ big endian block position, so iteration is genesis first
type LevelDB struct {
	sync.Mutex
	path string
	db   *leveldb.DB
}

// NewLevelDB - open or create the database
func NewLevelDB(path string) (*LevelDB, error) {
	db, version, err := getDB(path)
	if nil != err {
		return nil, &fault.PersistenceError{Op: "open", Path: path, Err: err}
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		db.Close()
		return nil, &fault.PersistenceError{Op: "open", Path: path, Err: fault.ErrStoreVersion}
	}

	if 0 == version {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, &fault.PersistenceError{Op: "open", Path: path, Err: err}
		}
	}

	return &LevelDB{
		path: path,
		db:   db,
	}, nil
}

// Path - the database directory
func (l *LevelDB) Path() string {
	return l.path
}

// Close - close the database
func (l *LevelDB) Close() error {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// Save - replace every block key in a single batch
func (l *LevelDB) Save(blocks []*blockrecord.Block) error {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return &fault.PersistenceError{Op: "save", Path: l.path, Err: fault.ErrNotInitialised}
	}

	batch := new(leveldb.Batch)

	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{blockPrefix}), nil)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return &fault.PersistenceError{Op: "save", Path: l.path, Err: err}
	}

	for i, block := range blocks {
		record, err := encodeRecord(uint64(i), block)
		if nil != err {
			return &fault.PersistenceError{Op: "save", Path: l.path, Err: err}
		}
		batch.Put(blockKey(uint64(i)), record)
	}

	err := l.db.Write(batch, &ldb_opt.WriteOptions{Sync: true})
	if nil != err {
		return &fault.PersistenceError{Op: "save", Path: l.path, Err: err}
	}
	return nil
}

// Load - all blocks in key order
func (l *LevelDB) Load() ([]*blockrecord.Block, error) {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return nil, &fault.PersistenceError{Op: "load", Path: l.path, Err: fault.ErrNotInitialised}
	}

	blocks := make([]*blockrecord.Block, 0, 16)

	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{blockPrefix}), nil)
	defer iter.Release()

	for position := uint64(0); iter.Next(); position += 1 {
		if !bytes.Equal(blockKey(position), iter.Key()) {
			return nil, &fault.PersistenceError{Op: "load", Path: l.path, Err: fault.ErrNumberOutOfSequence}
		}
		block, err := decodeRecord(position, iter.Value())
		if nil != err {
			return nil, &fault.PersistenceError{Op: "load", Path: l.path, Err: err}
		}
		blocks = append(blocks, block)
	}
	if err := iter.Error(); nil != err {
		return nil, &fault.PersistenceError{Op: "load", Path: l.path, Err: err}
	}
	return blocks, nil
}

func blockKey(position uint64) []byte {
	key := make([]byte, 9)
	key[0] = blockPrefix
	binary.BigEndian.PutUint64(key[1:], position)
	return key
}

// return:
//   databse handle
//   version number
func getDB(name string) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
