// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the operations offered to callers: stage
// transactions, mine, list, look up, persist, reload and validate
//
// a Ledger binds one chain to one store and a default difficulty
package ledger
