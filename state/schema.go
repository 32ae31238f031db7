// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - the persisted vault document
//
// one versioned document holds everything: per-origin masks and
// links, per-asset account registries and usage statistics; it is
// loaded once, mutated in memory and flushed wholesale when dirty
package state

import (
	"math/big"
	"time"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/ticker"
)

// CurrentVersion - schema version of the document
const CurrentVersion = 1

// Mask - a pseudonymous identity shown to one origin
//
// the principal is re-derivable and immutable; only the pseudonym is
// user editable
type Mask struct {
	Pseudonym string `cbor:"pseudonym"`
	Principal string `cbor:"principal"`
}

// Session - the identity an origin is currently logged in with
type Session struct {
	DeriviationOrigin string `cbor:"deriviationOrigin"`
	IdentityID        uint64 `cbor:"identityId"`
}

// OriginData - per-origin record
//
// LinksTo and LinksFrom are the two halves of one symmetric
// relation: for any pair (A,B) A.LinksTo[B] holds exactly when
// B.LinksFrom[A] holds
type OriginData struct {
	Masks          map[uint64]*Mask `cbor:"masks"`
	LinksFrom      map[string]bool  `cbor:"linksFrom"`
	LinksTo        map[string]bool  `cbor:"linksTo"`
	CurrentSession *Session         `cbor:"currentSession,omitempty"`
}

// AssetData - account name registry of one token
type AssetData struct {
	Accounts map[uint64]string `cbor:"accounts"`
}

// Statistics - usage counters since the last reset
type Statistics struct {
	LastResetTimestamp int64                      `cbor:"lastResetTimestamp"`
	MasksCreated       uint64                     `cbor:"masks_created"`
	SignaturesProduced uint64                     `cbor:"signatures_produced"`
	OriginsLinked      uint64                     `cbor:"origins_linked"`
	OriginsUnlinked    uint64                     `cbor:"origins_unlinked"`
	AccountsCreated    uint64                     `cbor:"icrc1_accounts_created"`
	Sent               map[ticker.Ticker]*big.Int `cbor:"icrc1_sent"`
}

// State - the root document
type State struct {
	Version    uint64                 `cbor:"version"`
	OriginData map[string]*OriginData `cbor:"originData"`
	AssetData  map[string]*AssetData  `cbor:"assetData"`
	Statistics *Statistics            `cbor:"statistics"`
}

// NewState - document defaults for a fresh installation
func NewState(now time.Time) *State {
	return &State{
		Version:    CurrentVersion,
		OriginData: make(map[string]*OriginData),
		AssetData:  make(map[string]*AssetData),
		Statistics: NewStatistics(now),
	}
}

// NewStatistics - zeroed counters with every listed ticker present
func NewStatistics(now time.Time) *Statistics {
	sent := make(map[ticker.Ticker]*big.Int, ticker.Count)
	for t := ticker.First; t <= ticker.Last; t += 1 {
		sent[t] = big.NewInt(0)
	}
	return &Statistics{
		LastResetTimestamp: now.UnixMilli(),
		Sent:               sent,
	}
}

// NewOriginData - record with one initial mask at index zero
func NewOriginData(mask *Mask) *OriginData {
	return &OriginData{
		Masks:     map[uint64]*Mask{0: mask},
		LinksFrom: make(map[string]bool),
		LinksTo:   make(map[string]bool),
	}
}

// NewAssetData - registry with the main account only
func NewAssetData() *AssetData {
	return &AssetData{
		Accounts: map[uint64]string{0: "Main"},
	}
}

// Validate - reject a structurally broken document
//
// a failure here means corruption or an incompatible version; there
// is no partial recovery
func (state *State) Validate() error {
	if CurrentVersion != state.Version {
		return fault.ErrStateVersionMismatch
	}
	if nil == state.OriginData || nil == state.AssetData || nil == state.Statistics {
		return fault.ErrCorruptState
	}

	for origin, data := range state.OriginData {
		if err := data.validate(); nil != err {
			return err
		}

		// both halves of every link must be present
		for to := range data.LinksTo {
			other, ok := state.OriginData[to]
			if !ok || !other.LinksFrom[origin] {
				return fault.ErrOneSidedLink
			}
		}
		for from := range data.LinksFrom {
			other, ok := state.OriginData[from]
			if !ok || !other.LinksTo[origin] {
				return fault.ErrOneSidedLink
			}
		}
	}

	for _, data := range state.AssetData {
		if err := data.validate(); nil != err {
			return err
		}
	}

	return state.Statistics.validate()
}

func (data *OriginData) validate() error {
	if nil == data.Masks || nil == data.LinksFrom || nil == data.LinksTo {
		return fault.ErrCorruptState
	}
	if 0 == len(data.Masks) {
		return fault.ErrCorruptState
	}

	// indices are assigned as count-at-creation, so they must be
	// contiguous from zero
	for i := uint64(0); i < uint64(len(data.Masks)); i += 1 {
		mask, ok := data.Masks[i]
		if !ok || nil == mask || "" == mask.Principal {
			return fault.ErrCorruptState
		}
	}

	return nil
}

func (data *AssetData) validate() error {
	if nil == data.Accounts || 0 == len(data.Accounts) {
		return fault.ErrCorruptState
	}
	for i := uint64(0); i < uint64(len(data.Accounts)); i += 1 {
		name, ok := data.Accounts[i]
		if !ok || "" == name {
			return fault.ErrCorruptState
		}
	}
	return nil
}

func (statistics *Statistics) validate() error {
	if nil == statistics.Sent {
		return fault.ErrCorruptState
	}
	for t, amount := range statistics.Sent {
		if !t.IsValid() {
			return fault.ErrInvalidTicker
		}
		if nil == amount || amount.Sign() < 0 {
			return fault.ErrCorruptState
		}
	}
	return nil
}
