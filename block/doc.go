// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - the in-memory chain
//
// blocks are held in an arena ordered genesis first, a block refers
// to its predecessor only by digest. Only the head may be unsealed.
// Callers always receive copies.
//
// the chain lock is not held while a nonce is searched for, so
// reads and validation of sealed history continue during mining
// while staging, a second seal and replacement are rejected
package block
