// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/transactionrecord"
)

func TestNew(t *testing.T) {
	tx, err := transactionrecord.New(1, "widget", "sig1")
	assert.Nil(t, err, "new")
	assert.Equal(t, int64(1), tx.ItemId, "item id")
	assert.Equal(t, "widget", tx.Description, "description")
	assert.Equal(t, "sig1", tx.Signature, "signature")
}

func TestNewTruncates(t *testing.T) {
	long := strings.Repeat("d", 300)
	tx, err := transactionrecord.New(2, long, long)
	assert.Nil(t, err, "new")
	assert.Equal(t, transactionrecord.MaximumTextLength, len(tx.Description), "description length")
	assert.Equal(t, transactionrecord.MaximumTextLength, len(tx.Signature), "signature length")
}

func TestNewTruncatesAtRuneBoundary(t *testing.T) {
	// 254 ASCII bytes then a 3 byte rune straddling the limit
	s := strings.Repeat("a", 254) + "€" + "tail"
	tx, err := transactionrecord.New(3, s, "")
	assert.Nil(t, err, "new")
	assert.Equal(t, strings.Repeat("a", 254), tx.Description, "split rune")
	assert.True(t, utf8.ValidString(tx.Description), "invalid UTF-8")
}

func TestNewRejectsNUL(t *testing.T) {
	_, err := transactionrecord.New(4, "bad\x00text", "sig")
	assert.Equal(t, fault.ErrInvalidCharacter, err, "description NUL")

	_, err = transactionrecord.New(4, "text", "\x00")
	assert.Equal(t, fault.ErrInvalidCharacter, err, "signature NUL")
}

func TestPackUnpack(t *testing.T) {
	items := []transactionrecord.Transaction{
		{ItemId: 0, Description: "", Signature: ""},
		{ItemId: -17, Description: "crate of apples", Signature: "sig:farm-1"},
		{ItemId: 1 << 40, Description: "中文描述", Signature: strings.Repeat("s", transactionrecord.MaximumTextLength)},
	}

	for i, item := range items {
		packed := item.Pack()
		assert.Equal(t, transactionrecord.TotalSize, len(packed), "%d: size", i)

		unpacked, err := packed.Unpack()
		if nil != err {
			t.Fatalf("%d: unpack error: %s", i, err)
		}
		assert.Equal(t, item, *unpacked, "%d: round trip", i)
	}
}

func TestUnpackGarbage(t *testing.T) {
	tx := transactionrecord.Transaction{ItemId: 1, Description: "ok", Signature: "ok"}
	packed := tx.Pack()

	// text after the terminator
	packed[8+10] = 'x'
	_, err := packed.Unpack()
	assert.Equal(t, fault.ErrInvalidCharacter, err, "garbage after NUL")

	// no terminator at all
	for i := 8; i < 8+transactionrecord.DescriptionSize; i += 1 {
		packed[i] = 'x'
	}
	_, err = packed.Unpack()
	assert.Equal(t, fault.ErrInvalidCharacter, err, "missing NUL")
}
