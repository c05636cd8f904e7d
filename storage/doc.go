// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - durable copies of the chain
//
// blocks are written genesis first and read back in the same order
// so that Load exactly reverses Save. Each block is stored as its
// fixed size packed record followed by a CRC64 of that record.
//
// stores never validate chain rules, callers validate after Load
package storage
