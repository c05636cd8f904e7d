// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/background"
	"github.com/bitmark-inc/supplychaind/difficulty"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/fixtures"
	"github.com/bitmark-inc/supplychaind/ledger"
)

func waitFor(condition func() bool) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func TestWatcherReloadsExternalChange(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	path, cleanup := fixtures.TempFile("chain.dat")
	defer cleanup()

	watched := openLedger(t, path, ledger.Options{})
	defer watched.Close()

	w, err := ledger.NewWatcher(logger.New(fixtures.LogCategory), watched)
	if nil != err {
		t.Fatalf("watcher error: %s", err)
	}
	p := background.Start(background.Processes{w}, nil)
	defer p.Stop()

	// own writes leave the chain alone
	_, err = watched.MineNextBlock(context.Background(), "")
	assert.Nil(t, err, "genesis")
	assert.Nil(t, watched.StageTransaction(1, "widget", "sig1"), "stage")
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 2, watched.Chain().Size(), "staged block kept")

	// another writer extends the file
	writer := openLedger(t, path, ledger.Options{})
	defer writer.Close()
	assert.Nil(t, writer.StageTransaction(2, "gadget", "sig2"), "stage")
	_, err = writer.MineNextBlock(context.Background(), "")
	assert.Nil(t, err, "mine")

	ok := waitFor(func() bool {
		head, err := watched.Chain().Head()
		return nil == err && head.Sealed && 1 == head.Number
	})
	assert.True(t, ok, "external change not loaded")
	assert.Equal(t, writer.ListBlocks(), watched.ListBlocks(), "chains differ")
}

func TestWatcherRetriesWhileMining(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	path, cleanup := fixtures.TempFile("chain.dat")
	defer cleanup()

	watched := openLedger(t, path, ledger.Options{CheckInterval: 64})
	defer watched.Close()

	_, err := watched.MineNextBlock(context.Background(), "")
	assert.Nil(t, err, "genesis")

	w, err := ledger.NewWatcher(logger.New(fixtures.LogCategory), watched)
	if nil != err {
		t.Fatalf("watcher error: %s", err)
	}
	p := background.Start(background.Processes{w}, nil)
	defer p.Stop()

	// keep the watched ledger busy on an unreachable difficulty
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		_, err := watched.MineNextBlock(ctx, strings.Repeat("f", difficulty.MaximumLength))
		done <- err
	}()
	assert.True(t, waitFor(func() bool { return watched.Info().Sealing }), "not mining")

	writer := openLedger(t, path, ledger.Options{})
	defer writer.Close()
	assert.Nil(t, writer.StageTransaction(5, "barrel", "sig5"), "stage")
	_, err = writer.MineNextBlock(context.Background(), "")
	assert.Nil(t, err, "mine")

	// the first reload attempts are refused
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 1, watched.Chain().Size(), "reloaded while mining")

	cancel()
	err = <-done
	assert.True(t, errors.Is(err, fault.ErrMiningCancelled), "cancel: %v", err)

	ok := waitFor(func() bool {
		head, err := watched.Chain().Head()
		return nil == err && head.Sealed && 1 == head.Number
	})
	assert.True(t, ok, "external change not loaded after mining")
	assert.Equal(t, writer.ListBlocks(), watched.ListBlocks(), "chains differ")
}
