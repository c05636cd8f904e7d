// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/supplychaind/fault"
)

// common errors - keep in alphabetic order
const (
	ErrBlockNotPersisted  = fault.ProcessError("block sealed but not persisted")
	ErrBothNumberAndHash  = fault.InvalidError("only one of number or hash may be given")
	ErrChainInvalid       = fault.RecordError("chain failed validation")
	ErrDescriptionIsEmpty = fault.InvalidError("description is empty")
	ErrSignatureIsEmpty   = fault.InvalidError("signature is empty")
)
