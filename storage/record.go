// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"hash/crc64"

	"github.com/bitmark-inc/supplychaind/blockrecord"
	"github.com/bitmark-inc/supplychaind/fault"
)

// bytes in one stored record: packed block ++ crc
const (
	crcSize    = 8
	recordSize = blockrecord.TotalSize + crcSize
)

// create the CRC64 table
var table = crc64.MakeTable(crc64.ECMA)

// CRC - check code of a packed block seeded with its position so a
// record moved to another slot is also detected
func CRC(position uint64, packed []byte) uint64 {
	return crc64.Update(position, table, packed)
}

// pack a block and append its check code
func encodeRecord(position uint64, block *blockrecord.Block) ([]byte, error) {
	packed, err := block.Pack()
	if nil != err {
		return nil, err
	}
	record := make([]byte, recordSize)
	copy(record, packed[:])
	binary.LittleEndian.PutUint64(record[blockrecord.TotalSize:], CRC(position, packed[:]))
	return record, nil
}

// check and unpack one record
func decodeRecord(position uint64, record []byte) (*blockrecord.Block, error) {
	if len(record) < recordSize {
		return nil, fault.ErrRecordTruncated
	}

	packed := blockrecord.PackedBlock{}
	copy(packed[:], record[:blockrecord.TotalSize])

	crc := binary.LittleEndian.Uint64(record[blockrecord.TotalSize:])
	if crc != CRC(position, packed[:]) {
		return nil, fault.ErrRecordChecksum
	}
	return packed.Unpack()
}
