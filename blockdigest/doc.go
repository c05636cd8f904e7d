// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockdigest - block header hashing
//
// A Hasher turns header material into a 256 bit digest. The
// algorithm is selected once at start up and the digest is always
// shown as 64 lowercase hex characters.
package blockdigest
