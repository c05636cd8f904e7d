// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mine - proof of work nonce search
//
// the search starts at nonce zero and increments by one so a given
// header and difficulty always produce the same minimal nonce
package mine
