// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package difficulty - proof of work target
//
// The target is a required hex prefix of the block digest; each
// extra character multiplies the expected work by sixteen.
package difficulty

import (
	"math"
	"strings"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/fault"
)

// limits on the prefix length
const (
	MinimumLength = 1
	MaximumLength = blockdigest.StringLength
)

// Default - the original four leading zeros
const Default = "0000"

// Difficulty - a required digest prefix
type Difficulty struct {
	prefix string
}

// New - validate a hex prefix
func New(prefix string) (*Difficulty, error) {
	prefix = strings.ToLower(prefix)
	if len(prefix) < MinimumLength || len(prefix) > MaximumLength {
		return nil, fault.ErrInvalidDifficulty
	}
	for _, c := range prefix {
		if !isHex(c) {
			return nil, fault.ErrInvalidDifficulty
		}
	}
	return &Difficulty{prefix: prefix}, nil
}

// Zeros - the conventional form: n leading zero digits
func Zeros(n int) (*Difficulty, error) {
	if n < 0 {
		return nil, fault.ErrInvalidDifficulty
	}
	return New(strings.Repeat("0", n))
}

// Prefix - the required prefix
func (difficulty *Difficulty) Prefix() string {
	return difficulty.prefix
}

// Len - number of hex digits in the prefix
func (difficulty *Difficulty) Len() int {
	return len(difficulty.prefix)
}

// String - for fmt %s
func (difficulty *Difficulty) String() string {
	return difficulty.prefix
}

// Met - check a digest against the prefix
func (difficulty *Difficulty) Met(digest blockdigest.Digest) bool {
	return strings.HasPrefix(digest.String(), difficulty.prefix)
}

// ExpectedHashes - mean number of attempts to find a match
func (difficulty *Difficulty) ExpectedHashes() float64 {
	return math.Pow(16, float64(len(difficulty.prefix)))
}

// MarshalText - convert to JSON string
func (difficulty *Difficulty) MarshalText() ([]byte, error) {
	return []byte(difficulty.prefix), nil
}

// UnmarshalText - parse and validate a JSON string
func (difficulty *Difficulty) UnmarshalText(s []byte) error {
	d, err := New(string(s))
	if nil != err {
		return err
	}
	difficulty.prefix = d.prefix
	return nil
}

func isHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
