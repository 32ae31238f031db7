// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stats

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/background"
	"github.com/maskvault-inc/maskvaultd/state"
)

// Publisher - sink for periodic statistics snapshots
type Publisher interface {
	Publish(snapshot *state.Statistics) error
}

// LogPublisher - writes snapshots to the activity log
type LogPublisher struct {
	Log *logger.L
}

// Publish - record one snapshot
func (publisher LogPublisher) Publish(snapshot *state.Statistics) error {
	publisher.Log.Infof("statistics: %+v", snapshot)
	return nil
}

// NewRollover - background process publishing and resetting counters
//
// a failed publish keeps the counters so the next tick carries the
// accumulated values; nothing is lost, only delayed
func NewRollover(aggregator *Aggregator, publisher Publisher, guard sync.Locker, interval time.Duration) background.Process {

	log := logger.New("rollover")

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
				rollover(aggregator, publisher, guard, log)
			}
		}

		log.Info("finished")
	}
}

func rollover(aggregator *Aggregator, publisher Publisher, guard sync.Locker, log *logger.L) {
	guard.Lock()
	defer guard.Unlock()

	snapshot, err := aggregator.Snapshot()
	if nil != err {
		log.Errorf("snapshot failed: %s", err)
		return
	}

	if err := publisher.Publish(snapshot); nil != err {
		log.Warnf("publish failed, keeping counters: %s", err)
		return
	}

	if err := aggregator.Reset(); nil != err {
		log.Errorf("reset failed: %s", err)
	}
}
