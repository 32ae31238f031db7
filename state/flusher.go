// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/background"
)

// NewFlusher - background process writing the document on an interval
//
// the guard must be the same lock that serialises request handling,
// so a flush never observes a half-applied mutation; a final flush
// runs on shutdown
func NewFlusher(store *Store, guard sync.Locker, interval time.Duration) background.Process {

	log := logger.New("flusher")

	return func(args interface{}, shutdown <-chan struct{}, done chan<- struct{}) {
		defer close(done)

		log.Info("starting…")

		timer := time.NewTicker(interval)
		defer timer.Stop()

	loop:
		for {
			select {
			case <-shutdown:
				break loop
			case <-timer.C:
				flush(store, guard, log)
			}
		}

		flush(store, guard, log)
		log.Info("finished")
	}
}

func flush(store *Store, guard sync.Locker, log *logger.L) {
	guard.Lock()
	defer guard.Unlock()

	if err := store.FlushIfDirty(); nil != err {
		log.Errorf("flush failed: %s", err)
	}
}
