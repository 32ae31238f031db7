// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package assets - per-token account name registry
//
// accounts are append-only: indices are assigned as count-at-create
// and double as the derivation index for the account's key pair, so
// removal would orphan derived addresses
package assets

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/identity"
	"github.com/maskvault-inc/maskvaultd/state"
)

// Ledger - asset registry operations over the vault document
type Ledger struct {
	store   *state.Store
	deriver *identity.Deriver
	log     *logger.L
}

// New - create a ledger over a store and deriver
func New(store *state.Store, deriver *identity.Deriver) *Ledger {
	return &Ledger{
		store:   store,
		deriver: deriver,
		log:     logger.New("assets"),
	}
}

// Register - make an asset known, idempotent
//
// a fresh registry starts with the main account at index zero
func (ledger *Ledger) Register(assetID string) (*state.AssetData, bool, error) {
	data, err := ledger.store.Load()
	if nil != err {
		return nil, false, err
	}

	assetData, ok := data.AssetData[assetID]
	if ok {
		return assetData, false, nil
	}

	assetData = state.NewAssetData()
	data.AssetData[assetID] = assetData
	ledger.store.MarkDirty()

	ledger.log.Infof("new asset: %s", assetID)
	return assetData, true, nil
}

// AllAssetData - the whole asset map
//
// borrowed for the duration of one request only
func (ledger *Ledger) AllAssetData() (map[string]*state.AssetData, error) {
	data, err := ledger.store.Load()
	if nil != err {
		return nil, err
	}
	return data.AssetData, nil
}

// AddAccount - append an account with a generated name
func (ledger *Ledger) AddAccount(assetID string) (string, uint64, error) {
	data, err := ledger.store.Load()
	if nil != err {
		return "", 0, err
	}

	assetData, ok := data.AssetData[assetID]
	if !ok {
		return "", 0, fault.ErrAssetNotRegistered
	}

	index := uint64(len(assetData.Accounts))
	name := fmt.Sprintf("Account #%d", index)
	assetData.Accounts[index] = name
	ledger.store.MarkDirty()

	return name, index, nil
}

// RenameAccount - overwrite an account name
func (ledger *Ledger) RenameAccount(assetID string, index uint64, newName string) error {
	data, err := ledger.store.Load()
	if nil != err {
		return err
	}

	assetData, ok := data.AssetData[assetID]
	if !ok {
		return fault.ErrAssetNotRegistered
	}

	if _, ok := assetData.Accounts[index]; !ok {
		return fault.ErrAccountIndexOutOfRange
	}

	assetData.Accounts[index] = newName
	ledger.store.MarkDirty()
	return nil
}

// AccountPrincipal - the derived address of an account
//
// derivation uses the account index as the scope index, which is why
// index assignment must stay in step with storage
func (ledger *Ledger) AccountPrincipal(assetID string, index uint64) (string, error) {
	data, err := ledger.store.Load()
	if nil != err {
		return "", err
	}

	assetData, ok := data.AssetData[assetID]
	if !ok {
		return "", fault.ErrAssetNotRegistered
	}
	if _, ok := assetData.Accounts[index]; !ok {
		return "", fault.ErrAccountIndexOutOfRange
	}

	return ledger.deriver.Principal(identity.ScopeAccount, assetID, index)
}
