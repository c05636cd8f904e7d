// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/supplychaind/blockrecord"
	"github.com/bitmark-inc/supplychaind/fault"
)

// file header: magic ++ version ++ packed block size
const (
	fileVersion    = 1
	fileHeaderSize = 8
)

var fileMagic = []byte("SCHN")

// File - chain stored as one file of fixed size records
type File struct {
	path string
}

// NewFile - a store at path, nothing is opened until used
func NewFile(path string) *File {
	return &File{
		path: path,
	}
}

// Path - the chain file
func (f *File) Path() string {
	return f.path
}

// Close - nothing is held open between calls
func (f *File) Close() error {
	return nil
}

// Save - write all blocks to a temporary file then rename it over
// the chain file so a failure leaves the previous file in place
func (f *File) Save(blocks []*blockrecord.Block) error {
	err := f.save(blocks)
	if nil != err {
		return &fault.PersistenceError{Op: "save", Path: f.path, Err: err}
	}
	return nil
}

func (f *File) save(blocks []*blockrecord.Block) (err error) {
	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if nil != err {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		if nil != err {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)

	header := make([]byte, fileHeaderSize)
	copy(header, fileMagic)
	binary.LittleEndian.PutUint16(header[4:], fileVersion)
	binary.LittleEndian.PutUint16(header[6:], blockrecord.TotalSize)
	if _, err = w.Write(header); nil != err {
		return err
	}

	for i, block := range blocks {
		var record []byte
		record, err = encodeRecord(uint64(i), block)
		if nil != err {
			return err
		}
		if _, err = w.Write(record); nil != err {
			return err
		}
	}

	if err = w.Flush(); nil != err {
		return err
	}
	if err = tmp.Sync(); nil != err {
		return err
	}
	if err = tmp.Close(); nil != err {
		return err
	}
	if err = os.Rename(tmpName, f.path); nil != err {
		return err
	}

	return syncDir(dir)
}

// Load - read all blocks, a missing or empty file is an empty chain
func (f *File) Load() ([]*blockrecord.Block, error) {
	blocks, err := f.load()
	if nil != err {
		return nil, &fault.PersistenceError{Op: "load", Path: f.path, Err: err}
	}
	return blocks, nil
}

func (f *File) load() ([]*blockrecord.Block, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return []*blockrecord.Block{}, nil
	}
	if nil != err {
		return nil, err
	}
	if 0 == len(data) {
		return []*blockrecord.Block{}, nil
	}

	if len(data) < fileHeaderSize || !bytes.Equal(data[:4], fileMagic) {
		return nil, fault.ErrRecordHeader
	}
	if fileVersion != binary.LittleEndian.Uint16(data[4:]) {
		return nil, fault.ErrStoreVersion
	}
	if blockrecord.TotalSize != binary.LittleEndian.Uint16(data[6:]) {
		return nil, fault.ErrRecordHeader
	}

	body := data[fileHeaderSize:]
	blocks := make([]*blockrecord.Block, 0, len(body)/recordSize)
	for i := 0; len(body) > 0; i += 1 {
		if len(body) < recordSize {
			return nil, fault.ErrRecordTruncated
		}
		block, err := decodeRecord(uint64(i), body[:recordSize])
		if nil != err {
			return nil, err
		}
		blocks = append(blocks, block)
		body = body[recordSize:]
	}
	return blocks, nil
}

// make a rename durable
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if nil != err {
		return err
	}
	defer d.Close()

	// not every filesystem can sync a directory
	_ = d.Sync()
	return nil
}
