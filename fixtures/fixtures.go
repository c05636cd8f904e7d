// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/blockdigest"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// Time - fixed clock for deterministic blocks
var Time = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

// Clock - returns Time, advancing one second per call
func Clock() func() time.Time {
	t := Time
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// SetupTestLogger - log to a scratch directory at critical level
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// TempFile - a path inside a fresh temporary directory, the
// returned function removes the directory
func TempFile(name string) (string, func()) {
	d, err := os.MkdirTemp("", "supplychaind-")
	if nil != err {
		panic(err)
	}
	return filepath.Join(d, name), func() {
		_ = os.RemoveAll(d)
	}
}

// Hasher - the default hash algorithm
func Hasher() *blockdigest.Hasher {
	h, err := blockdigest.New(blockdigest.DefaultAlg)
	if nil != err {
		panic(err)
	}
	return h
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
