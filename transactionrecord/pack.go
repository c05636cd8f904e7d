// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/supplychaind/fault"
)

// Packed - fixed size record of a transaction
type Packed [TotalSize]byte

// Pack - turn a transaction into its record
func (tx *Transaction) Pack() Packed {
	record := Packed{}
	binary.LittleEndian.PutUint64(record[itemIdOffset:], uint64(tx.ItemId))
	copy(record[descriptionOffset:signatureOffset], tx.Description)
	copy(record[signatureOffset:], tx.Signature)
	return record
}

// Unpack - turn a record back into a transaction
func (record Packed) Unpack() (*Transaction, error) {
	description, err := unpackText(record[descriptionOffset:signatureOffset])
	if nil != err {
		return nil, err
	}
	signature, err := unpackText(record[signatureOffset:])
	if nil != err {
		return nil, err
	}
	return &Transaction{
		ItemId:      int64(binary.LittleEndian.Uint64(record[itemIdOffset:])),
		Description: description,
		Signature:   signature,
	}, nil
}

// text ends at the first NUL, everything after must also be NUL
func unpackText(field []byte) (string, error) {
	n := bytes.IndexByte(field, 0)
	if n < 0 {
		return "", fault.ErrInvalidCharacter
	}
	for _, b := range field[n:] {
		if 0 != b {
			return "", fault.ErrInvalidCharacter
		}
	}
	return string(field[:n]), nil
}
