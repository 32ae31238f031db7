// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stats - usage counter aggregation
//
// counters only ever grow between resets; a reset replaces the whole
// statistics block and stamps the reset time
package stats

import (
	"math/big"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/state"
	"github.com/maskvault-inc/maskvaultd/ticker"
)

// Kind - which counter to bump
type Kind int

// possible counter kinds
const (
	MasksCreated Kind = iota + 1
	SignaturesProduced
	OriginsLinked
	OriginsUnlinked
	AccountsCreated
	Sent // requires a ticker and quantity payload
)

// Aggregator - counter access over the vault document
type Aggregator struct {
	store *state.Store
	log   *logger.L
}

// New - create an aggregator over a store
func New(store *state.Store) *Aggregator {
	return &Aggregator{
		store: store,
		log:   logger.New("stats"),
	}
}

// Increment - add one to a scalar counter
//
// the Sent kind carries a payload and must go through IncrementSent
func (aggregator *Aggregator) Increment(kind Kind) error {
	data, err := aggregator.store.Load()
	if nil != err {
		return err
	}

	switch kind {
	case MasksCreated:
		data.Statistics.MasksCreated += 1
	case SignaturesProduced:
		data.Statistics.SignaturesProduced += 1
	case OriginsLinked:
		data.Statistics.OriginsLinked += 1
	case OriginsUnlinked:
		data.Statistics.OriginsUnlinked += 1
	case AccountsCreated:
		data.Statistics.AccountsCreated += 1
	case Sent:
		return fault.ErrStatisticsPayloadMissing
	default:
		return fault.ErrStatisticsPayloadMissing
	}

	aggregator.store.MarkDirty()
	return nil
}

// IncrementSent - add a transferred quantity to a ticker total
func (aggregator *Aggregator) IncrementSent(symbol ticker.Ticker, quantity *big.Int) error {
	if !symbol.IsValid() {
		return fault.ErrInvalidTicker
	}
	if nil == quantity || quantity.Sign() < 0 {
		return fault.ErrStatisticsPayloadMissing
	}

	data, err := aggregator.store.Load()
	if nil != err {
		return err
	}

	total, ok := data.Statistics.Sent[symbol]
	if !ok {
		total = big.NewInt(0)
	}
	data.Statistics.Sent[symbol] = new(big.Int).Add(total, quantity)

	aggregator.store.MarkDirty()
	return nil
}

// Snapshot - deep copy of the current counters
//
// callers push snapshots to external aggregation; handing out the
// live block would let them mutate state behind the dirty flag
func (aggregator *Aggregator) Snapshot() (*state.Statistics, error) {
	data, err := aggregator.store.Load()
	if nil != err {
		return nil, err
	}

	sent := make(map[ticker.Ticker]*big.Int, len(data.Statistics.Sent))
	for symbol, total := range data.Statistics.Sent {
		sent[symbol] = new(big.Int).Set(total)
	}

	return &state.Statistics{
		LastResetTimestamp: data.Statistics.LastResetTimestamp,
		MasksCreated:       data.Statistics.MasksCreated,
		SignaturesProduced: data.Statistics.SignaturesProduced,
		OriginsLinked:      data.Statistics.OriginsLinked,
		OriginsUnlinked:    data.Statistics.OriginsUnlinked,
		AccountsCreated:    data.Statistics.AccountsCreated,
		Sent:               sent,
	}, nil
}

// Reset - zero every counter and stamp the reset time
func (aggregator *Aggregator) Reset() error {
	data, err := aggregator.store.Load()
	if nil != err {
		return err
	}

	data.Statistics = state.NewStatistics(aggregator.store.Now())
	aggregator.store.MarkDirty()
	return nil
}
