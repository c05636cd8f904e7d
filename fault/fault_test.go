// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bitmark-inc/supplychaind/fault"
)

var (
	ErrExistsOne     = fault.ExistsError("exists one ")
	ErrInitialiseOne = fault.InitialiseError("initialise one")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrLengthOne     = fault.LengthError("length one")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrRecordOne     = fault.RecordError("record one")
)

// test that the error classes are distinct, including when wrapped
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		exists     bool
		initialise bool
		invalid    bool
		length     bool
		notFound   bool
		process    bool
		record     bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false},
		{ErrInitialiseOne, false, true, false, false, false, false, false},
		{ErrInvalidOne, false, false, true, false, false, false, false},
		{ErrLengthOne, false, false, false, true, false, false, false},
		{ErrNotFoundOne, false, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, false, true, false},
		{ErrRecordOne, false, false, false, false, false, false, true},
		{fmt.Errorf("wrapped: %w", ErrLengthOne), false, false, false, true, false, false, false},
		{&fault.IntegrityError{Number: 3, Err: ErrRecordOne}, false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInitialise(err) != e.initialise {
			t.Errorf("%d: expected 'initialise' == %v for err = %v", i, e.initialise, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
	}
}

func TestValidation(t *testing.T) {
	if !fault.IsErrValidation(fault.ErrBlockFull) {
		t.Errorf("block full should be a validation error")
	}
	if !fault.IsErrValidation(fault.ErrNoActiveBlock) {
		t.Errorf("no active block should be a validation error")
	}
	if fault.IsErrValidation(fault.ErrPreviousDoesNotMatch) {
		t.Errorf("previous mismatch should not be a validation error")
	}
}

func TestIntegrity(t *testing.T) {
	err := fmt.Errorf("reload: %w", &fault.IntegrityError{Number: 7, Err: fault.ErrDifficultyNotMet})

	ie, ok := fault.IsErrIntegrity(err)
	if !ok {
		t.Fatalf("expected integrity error from: %v", err)
	}
	if 7 != ie.Number {
		t.Errorf("number: %d  expected: 7", ie.Number)
	}
	if !errors.Is(err, fault.ErrDifficultyNotMet) {
		t.Errorf("integrity error does not unwrap to its cause")
	}

	if _, ok := fault.IsErrIntegrity(fault.ErrBlockFull); ok {
		t.Errorf("block full is not an integrity error")
	}
}

func TestPersistence(t *testing.T) {
	err := &fault.PersistenceError{Op: "load", Path: "chain.dat", Err: fault.ErrRecordTruncated}

	if !fault.IsErrPersistence(err) {
		t.Errorf("expected persistence error")
	}
	if !fault.IsErrLength(err) {
		t.Errorf("truncated record should classify as length error")
	}
	if "load \"chain.dat\": record is truncated" != err.Error() {
		t.Errorf("unexpected message: %s", err)
	}
}
