// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors are grouped in classes so that callers can decide on
// recovery: validation (invalid, length) leaves the chain unchanged,
// records and integrity errors describe damaged chain data,
// persistence errors wrap I/O failures and initialise errors abort
// start up.
package fault
