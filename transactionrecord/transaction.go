// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - supply chain transaction and its
// fixed size packed form
package transactionrecord

import (
	"strings"
	"unicode/utf8"

	"github.com/bitmark-inc/supplychaind/fault"
)

// byte sizes for various fields
const (
	ItemIdSize      = 8   // signed 64 bit item identifier
	DescriptionSize = 256 // NUL padded text
	SignatureSize   = 256 // NUL padded text

	// longest text kept, one byte is always left for a NUL
	MaximumTextLength = DescriptionSize - 1
)

// offsets of the fields
const (
	itemIdOffset      = 0
	descriptionOffset = itemIdOffset + ItemIdSize
	signatureOffset   = descriptionOffset + DescriptionSize

	// TotalSize - bytes in a packed transaction
	TotalSize = signatureOffset + SignatureSize
)

// Transaction - one supply chain event
//
// the signature is opaque, it is stored but never verified
type Transaction struct {
	ItemId      int64  `json:"item_id"`
	Description string `json:"description"`
	Signature   string `json:"signature"`
}

// New - create a transaction, long text is truncated
func New(itemId int64, description string, signature string) (*Transaction, error) {
	d, err := boundText(description)
	if nil != err {
		return nil, err
	}
	s, err := boundText(signature)
	if nil != err {
		return nil, err
	}
	return &Transaction{
		ItemId:      itemId,
		Description: d,
		Signature:   s,
	}, nil
}

// NUL is the record padding so it cannot appear inside text
func boundText(s string) (string, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return "", fault.ErrInvalidCharacter
	}
	return truncate(s, MaximumTextLength), nil
}

// cut to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n -= 1
	}
	return s[:n]
}
