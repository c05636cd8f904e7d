// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// periodic memory statistics, runs as a background process
type memstats struct {
	log *logger.L
}

func (s memstats) Run(_ interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		text, err := json.Marshal(m)
		if nil != err {
			s.log.Errorf("marshal error: %s", err)
		} else {
			s.log.Debugf("stats: %s", text)
		}
		a := m.Alloc / mega
		t := m.TotalAlloc / mega
		o := m.Sys / mega
		s.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, o)

		select {
		case <-shutdown:
			return
		case <-ticker.C:
		}
	}
}
