// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InitialiseError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrBlockFull              = LengthError("block is full, mine a new block first")
	ErrBlockNotFound          = NotFoundError("block not found")
	ErrBlockSealing           = InvalidError("block is being sealed")
	ErrCertificateFileExists  = ExistsError("certificate file already exists")
	ErrDifficultyNotMet       = RecordError("block digest does not meet difficulty")
	ErrDigestDoesNotMatch     = RecordError("block digest does not match header")
	ErrDigestInitialise       = InitialiseError("digest initialise failed")
	ErrFingerprintMismatch    = InvalidError("certificate fingerprint mismatch")
	ErrGenesisPrevious        = RecordError("genesis previous digest is not the sentinel")
	ErrInvalidCharacter       = InvalidError("invalid character")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidDifficulty      = InvalidError("invalid difficulty")
	ErrInvalidDigest          = InvalidError("invalid digest")
	ErrInvalidIpAddress       = InvalidError("invalid IP address")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidStoreType       = InvalidError("invalid store type")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrKeyFileExists          = ExistsError("key file already exists")
	ErrMiningCancelled        = ProcessError("mining cancelled")
	ErrMissingParameters      = InvalidError("missing parameters")
	ErrNoActiveBlock          = InvalidError("no blocks exist yet, mine a block first")
	ErrNonceExhausted         = ProcessError("nonce space exhausted")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrNumberOutOfSequence    = RecordError("block number out of sequence")
	ErrPreviousDoesNotMatch   = RecordError("previous block digest does not match")
	ErrRateLimiting           = InvalidError("rate limiting")
	ErrRecordChecksum         = RecordError("record checksum mismatch")
	ErrRecordHeader           = RecordError("invalid store header")
	ErrRecordTruncated        = LengthError("record is truncated")
	ErrSealedBlock            = RecordError("sealed block has no digest")
	ErrStoreVersion           = RecordError("unsupported store version")
	ErrTooManyTransactions    = LengthError("transaction count exceeds capacity")
	ErrUnsealedBlockNotAtHead = RecordError("unsealed block is not the chain head")
	ErrUnknownHashAlgorithm   = InitialiseError("unknown hash algorithm")
)

// the error interface methods
func (e GenericError) Error() string    { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InitialiseError) Error() string { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// IntegrityError - the first block found to break hash linkage or
// proof of work during validation
type IntegrityError struct {
	Number uint64
	Err    error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation at block: %d  error: %s", e.Number, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// PersistenceError - an I/O or format failure while saving or loading
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// determine the class of an error
func IsErrExists(e error) bool     { var x ExistsError; return errors.As(e, &x) }
func IsErrInitialise(e error) bool { var x InitialiseError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool    { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool     { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool   { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool    { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool     { var x RecordError; return errors.As(e, &x) }

// IsErrValidation - caller supplied something the chain rejected
// without changing state
func IsErrValidation(e error) bool { return IsErrInvalid(e) || IsErrLength(e) }

// IsErrIntegrity - check for an integrity violation and return it
func IsErrIntegrity(e error) (*IntegrityError, bool) {
	var x *IntegrityError
	if errors.As(e, &x) {
		return x, true
	}
	return nil, false
}

// IsErrPersistence - check for a persistence failure
func IsErrPersistence(e error) bool {
	var x *PersistenceError
	return errors.As(e, &x)
}
