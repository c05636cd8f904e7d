// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/supplychaind/fault"
)

// delay after the last event before reloading
const settleTime = 200 * time.Millisecond

// Watcher - reloads the ledger when another program rewrites the
// chain file
//
// the directory is watched rather than the file since a save
// renames a new file over the old one
type Watcher struct {
	log     *logger.L
	ledger  *Ledger
	watcher *fsnotify.Watcher
	name    string
}

// NewWatcher - watch the ledger's store file
func NewWatcher(log *logger.L, ledger *Ledger) (*Watcher, error) {
	path, err := filepath.Abs(filepath.Clean(ledger.store.Path()))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	err = watcher.Add(filepath.Dir(path))
	if nil != err {
		log.Errorf("watch: %q  error: %s", filepath.Dir(path), err)
		watcher.Close()
		return nil, err
	}

	return &Watcher{
		log:     log,
		ledger:  ledger,
		watcher: watcher,
		name:    filepath.Base(path),
	}, nil
}

// Run - background process loop
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Info("starting…")

	defer w.watcher.Close()

	// nil until an event arrives
	var settle <-chan time.Time

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Base(event.Name) != w.name || !isChange(event) {
				continue loop
			}
			log.Debugf("file event: %v", event)
			settle = time.After(settleTime)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)

		case <-settle:
			settle = nil
			if w.reload() {
				settle = time.After(settleTime)
			}
		}
	}

	log.Info("stopped")
}

// true if the ledger was busy and the reload must be tried again
func (w *Watcher) reload() bool {
	if w.ledger.unchangedOnDisk() {
		w.log.Debug("own write, ignored")
		return false
	}

	err := w.ledger.Reload()
	if errors.Is(err, fault.ErrBlockSealing) {
		w.log.Info("ledger busy, reload retry scheduled")
		return true
	}
	if nil != err {
		w.log.Warnf("external change not loaded: %s", err)
		return false
	}
	w.log.Info("external change loaded")
	return false
}

// a removed file is not treated as an empty chain
func isChange(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write) != 0
}
