// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/maskvault-inc/maskvaultd/state"
	"github.com/maskvault-inc/maskvaultd/stats"
)

// Statistics - usage counter access
type Statistics struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Stats   *stats.Aggregator
}

// StatisticsGetReply - a copy of the current counters
type StatisticsGetReply struct {
	Statistics *state.Statistics `cbor:"statistics"`
}

// Get - snapshot the counters
func (handler *Statistics) Get(reply *StatisticsGetReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}

	snapshot, err := handler.Stats.Snapshot()
	if nil != err {
		return err
	}

	reply.Statistics = snapshot
	return nil
}

// StatisticsResetReply - reset result
type StatisticsResetReply struct {
	Done bool `cbor:"done"`
}

// Reset - zero the counters and stamp the reset time
func (handler *Statistics) Reset(reply *StatisticsResetReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}

	if err := handler.Stats.Reset(); nil != err {
		return err
	}

	reply.Done = true
	return nil
}
