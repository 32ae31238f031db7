// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/maskvault-inc/maskvaultd/assets"
	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/linkage"
	"github.com/maskvault-inc/maskvaultd/state"
	"github.com/maskvault-inc/maskvaultd/stats"
)

// State - vault document queries
type State struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Graph   *linkage.Graph
	Ledger  *assets.Ledger
	Stats   *stats.Aggregator
}

// OriginDataArguments - arguments for a single origin record
type OriginDataArguments struct {
	Origin string `cbor:"origin"`
}

// OriginDataReply - one origin record
type OriginDataReply struct {
	Data *state.OriginData `cbor:"data"`
}

// GetOriginData - fetch an origin record, creating it on first sight
func (handler *State) GetOriginData(arguments *OriginDataArguments, reply *OriginDataReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.Origin {
		return fault.ErrMissingParameters
	}

	data, created, err := handler.Graph.OriginData(arguments.Origin)
	if nil != err {
		return err
	}
	if created {
		if err := handler.Stats.Increment(stats.MasksCreated); nil != err {
			return err
		}
	}

	reply.Data = data
	return nil
}

// AllOriginDataArguments - optional origin filter, empty means all
type AllOriginDataArguments struct {
	Origins []string `cbor:"origins,omitempty"`
}

// AllOriginDataReply - origin records by origin
type AllOriginDataReply struct {
	Data map[string]*state.OriginData `cbor:"data"`
}

// GetAllOriginData - fetch stored origin records
//
// filtered origins with no stored record are simply absent from the
// reply, they are not created
func (handler *State) GetAllOriginData(arguments *AllOriginDataArguments, reply *AllOriginDataReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}

	all, err := handler.Graph.AllOriginData()
	if nil != err {
		return err
	}

	if 0 == len(arguments.Origins) {
		reply.Data = all
		return nil
	}

	filtered := make(map[string]*state.OriginData, len(arguments.Origins))
	for _, origin := range arguments.Origins {
		if data, ok := all[origin]; ok {
			filtered[origin] = data
		}
	}
	reply.Data = filtered
	return nil
}

// AllAssetDataArguments - optional asset filter, empty means all
type AllAssetDataArguments struct {
	AssetIDs []string `cbor:"assetIds,omitempty"`
}

// AllAssetDataReply - asset records by asset id
type AllAssetDataReply struct {
	Data map[string]*state.AssetData `cbor:"data"`
}

// GetAllAssetData - fetch stored asset records
func (handler *State) GetAllAssetData(arguments *AllAssetDataArguments, reply *AllAssetDataReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}

	all, err := handler.Ledger.AllAssetData()
	if nil != err {
		return err
	}

	if 0 == len(arguments.AssetIDs) {
		reply.Data = all
		return nil
	}

	filtered := make(map[string]*state.AssetData, len(arguments.AssetIDs))
	for _, assetID := range arguments.AssetIDs {
		if data, ok := all[assetID]; ok {
			filtered[assetID] = data
		}
	}
	reply.Data = filtered
	return nil
}
