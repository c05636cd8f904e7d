// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/supplychaind/background"
)

// collects staged transaction descriptions until shutdown, then
// drains anything still queued
type stagingQueue struct {
	incoming chan string
	staged   []string
}

func Example() {

	queue := &stagingQueue{
		incoming: make(chan string, 4),
	}
	queue.incoming <- "widget"
	queue.incoming <- "gadget"

	p := background.Start(background.Processes{queue}, nil)
	p.Stop()

	fmt.Printf("staged: %s\n", strings.Join(queue.staged, ", "))
	// Output:
	// staged: widget, gadget
}

func (q *stagingQueue) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case description := <-q.incoming:
			q.staged = append(q.staged, description)
		}
	}

	for {
		select {
		case description := <-q.incoming:
			q.staged = append(q.staged, description)
		default:
			return
		}
	}
}
