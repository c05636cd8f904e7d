// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdigest

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"strings"

	"github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/supplychaind/fault"
)

// supported algorithms
const (
	SHA256     = "sha256"
	SHA3       = "sha3-256"
	Blake2b    = "blake2b-256"
	Argon2d    = "argon2d"
	DefaultAlg = SHA256
)

// argon2 parameters, lighter than a memory hard block chain would
// use since every nonce attempt costs one hash
const (
	argonMode        = argon2.ModeArgon2d
	argonMemory      = 1 << 12 // 4 MiB
	argonParallelism = 1
	argonIterations  = 1
	argonVersion     = argon2.Version13
)

// data used to check an algorithm works before it is handed out
var probe = []byte("0" + strings.Repeat("0", StringLength) + "0")

// Hasher - a pure digest function over header material
type Hasher struct {
	algorithm string
	newHash   func() (hash.Hash, error)
	argon     *argon2.Context
}

// New - create a hasher for the named algorithm
//
// fails with ErrDigestInitialise if the algorithm is unknown or the
// primitive cannot be set up, which callers must treat as fatal
func New(algorithm string) (*Hasher, error) {
	if "" == algorithm {
		algorithm = DefaultAlg
	}

	h := &Hasher{
		algorithm: strings.ToLower(algorithm),
	}

	switch h.algorithm {
	case SHA256:
		h.newHash = func() (hash.Hash, error) { return sha256.New(), nil }
	case SHA3:
		h.newHash = func() (hash.Hash, error) { return sha3.New256(), nil }
	case Blake2b:
		h.newHash = func() (hash.Hash, error) { return blake2b.New256(nil) }
	case Argon2d:
		h.argon = &argon2.Context{
			Iterations:  argonIterations,
			Memory:      argonMemory,
			Parallelism: argonParallelism,
			HashLen:     Length,
			Mode:        argonMode,
			Version:     argonVersion,
		}
	default:
		return nil, fmt.Errorf("%w: %s: %q", fault.ErrDigestInitialise, fault.ErrUnknownHashAlgorithm, algorithm)
	}

	if _, err := h.sum(probe); nil != err {
		return nil, fmt.Errorf("%w: %s: %s", fault.ErrDigestInitialise, h.algorithm, err)
	}
	return h, nil
}

// Algorithm - name of the algorithm in use
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Digest - hash arbitrary bytes
func (h *Hasher) Digest(data []byte) Digest {
	digest, err := h.sum(data)
	fault.PanicIfError("blockdigest.Digest", err)
	return digest
}

func (h *Hasher) sum(data []byte) (Digest, error) {
	var digest Digest

	if nil != h.argon {
		result, err := argon2.Hash(h.argon, data, data)
		if nil != err {
			return digest, err
		}
		copy(digest[:], result)
		return digest, nil
	}

	hh, err := h.newHash()
	if nil != err {
		return digest, err
	}
	hh.Write(data)
	copy(digest[:], hh.Sum(nil))
	return digest, nil
}
