// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - request throttling shared by the RPC services
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/supplychaind/fault"
)

// Limit - limiting for a single request
func Limit(limiter *rate.Limiter) error {
	return LimitN(limiter, 1, 1)
}

// LimitN - limiting for a request returning count items
//
// an invalid count is charged as a single request and rejected
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	invalid := count <= 0 || count > maximumCount
	if invalid {
		count = 1
	}

	r := limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())

	if invalid {
		return fault.ErrInvalidCount
	}
	return nil
}
