// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"strconv"

	"github.com/bitmark-inc/supplychaind/fault"
)

// NonceType - type for nonce
type NonceType uint64

// String - decimal form as used in the header material
func (nonce NonceType) String() string {
	return strconv.FormatUint(uint64(nonce), 10)
}

// MarshalJSON - convert a nonce to a quoted decimal string for JSON
// so large values survive javascript clients
func (nonce NonceType) MarshalJSON() ([]byte, error) {
	buffer := make([]byte, 0, 22)
	buffer = append(buffer, '"')
	buffer = strconv.AppendUint(buffer, uint64(nonce), 10)
	buffer = append(buffer, '"')
	return buffer, nil
}

// UnmarshalJSON - convert a quoted or bare decimal to nonce value
func (nonce *NonceType) UnmarshalJSON(s []byte) error {
	if len(s) >= 2 && '"' == s[0] && '"' == s[len(s)-1] {
		s = s[1 : len(s)-1]
	}
	n, err := strconv.ParseUint(string(s), 10, 64)
	if nil != err {
		return fault.ErrInvalidCharacter
	}
	*nonce = NonceType(n)
	return nil
}
