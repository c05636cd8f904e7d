// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockrecord - block entity, the header material hashed
// by the miner, the fixed size packed record written by the stores
// and the per-block validation rules
//
// a block is unsealed while it is accepting transactions, the
// miner seals it exactly once by fixing digest, nonce and
// difficulty
package blockrecord
