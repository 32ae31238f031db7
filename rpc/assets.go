// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"math/big"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/maskvault-inc/maskvaultd/assets"
	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/stats"
	"github.com/maskvault-inc/maskvaultd/ticker"
)

// Assets - token account registry operations
type Assets struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Ledger    *assets.Ledger
	Stats     *stats.Aggregator
	Confirmer Confirmer
}

// most assets acceptable in one registration request
const maximumAssetCount = 100

// AssetSpec - one asset a request asks to register
type AssetSpec struct {
	ID     string `cbor:"assetId"`
	Name   string `cbor:"name,omitempty"`
	Symbol string `cbor:"symbol,omitempty"`
}

// AddAssetArguments - assets to register
type AddAssetArguments struct {
	Assets []AssetSpec `cbor:"assets"`
}

// AccountInfo - a named account and its derived address
type AccountInfo struct {
	Name      string `cbor:"name"`
	Principal string `cbor:"principal"`
}

// AssetInfo - an asset and its accounts in index order
type AssetInfo struct {
	AssetID  string        `cbor:"assetId"`
	Accounts []AccountInfo `cbor:"accounts"`
}

// AddAssetReply - the registered assets, or a decline
type AddAssetReply struct {
	Approved bool        `cbor:"approved"`
	Assets   []AssetInfo `cbor:"assets,omitempty"`
}

// AddAsset - register assets after owner consent
//
// already-registered assets are returned as they are, never reset
func (handler *Assets) AddAsset(origin string, arguments *AddAssetArguments, reply *AddAssetReply) error {
	if err := rateLimitN(handler.Limiter, len(arguments.Assets), maximumAssetCount); nil != err {
		return err
	}
	if 0 == len(arguments.Assets) {
		return fault.ErrMissingParameters
	}

	details := make([]string, 0, len(arguments.Assets))
	for _, spec := range arguments.Assets {
		if "" == spec.ID {
			return fault.ErrMissingParameters
		}
		details = append(details, spec.ID)
	}

	approved, err := handler.Confirmer.Confirm(ConfirmRequest{
		Method:  MethodICRC1AddAsset,
		Origin:  origin,
		Details: details,
	})
	if nil != err {
		return err
	}
	if !approved {
		handler.Log.Info("asset registration declined")
		reply.Approved = false
		return nil
	}

	registered := make([]AssetInfo, 0, len(arguments.Assets))
	for _, spec := range arguments.Assets {
		_, _, err := handler.Ledger.Register(spec.ID)
		if nil != err {
			return err
		}
		info, err := handler.assetInfo(spec.ID)
		if nil != err {
			return err
		}
		registered = append(registered, info)
	}

	reply.Approved = true
	reply.Assets = registered
	return nil
}

// AddAssetAccountArguments - asset to add an account under
type AddAssetAccountArguments struct {
	AssetID string `cbor:"assetId"`
}

// AddAssetAccountReply - the new account, or a decline
type AddAssetAccountReply struct {
	Approved  bool   `cbor:"approved"`
	Name      string `cbor:"name,omitempty"`
	Principal string `cbor:"principal,omitempty"`
}

// AddAssetAccount - append an account after owner consent
func (handler *Assets) AddAssetAccount(origin string, arguments *AddAssetAccountArguments, reply *AddAssetAccountReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.AssetID {
		return fault.ErrMissingParameters
	}

	approved, err := handler.Confirmer.Confirm(ConfirmRequest{
		Method:  MethodICRC1AddAssetAccount,
		Origin:  origin,
		Details: []string{arguments.AssetID},
	})
	if nil != err {
		return err
	}
	if !approved {
		handler.Log.Infof("account creation declined: %s", arguments.AssetID)
		reply.Approved = false
		return nil
	}

	name, index, err := handler.Ledger.AddAccount(arguments.AssetID)
	if nil != err {
		return err
	}
	principal, err := handler.Ledger.AccountPrincipal(arguments.AssetID, index)
	if nil != err {
		return err
	}
	if err := handler.Stats.Increment(stats.AccountsCreated); nil != err {
		return err
	}

	reply.Approved = true
	reply.Name = name
	reply.Principal = principal
	return nil
}

// EditAssetAccountArguments - arguments to rename an account
type EditAssetAccountArguments struct {
	AssetID   string `cbor:"assetId"`
	AccountID uint64 `cbor:"accountId"`
	NewName   string `cbor:"newName"`
}

// EditAssetAccountReply - rename result
type EditAssetAccountReply struct {
	Done bool `cbor:"done"`
}

// EditAssetAccount - overwrite an account's display name
func (handler *Assets) EditAssetAccount(arguments *EditAssetAccountArguments, reply *EditAssetAccountReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.AssetID || "" == arguments.NewName {
		return fault.ErrMissingParameters
	}

	err := handler.Ledger.RenameAccount(arguments.AssetID, arguments.AccountID, arguments.NewName)
	if nil != err {
		return err
	}

	reply.Done = true
	return nil
}

// ShowTransferConfirmArguments - a transfer the owner must approve
type ShowTransferConfirmArguments struct {
	RequestOrigin string   `cbor:"requestOrigin"`
	Ticker        string   `cbor:"ticker"`
	From          string   `cbor:"from"`
	To            string   `cbor:"to"`
	Amount        *big.Int `cbor:"amount"`
}

// ShowTransferConfirmReply - the owner's answer
type ShowTransferConfirmReply struct {
	Approved bool `cbor:"approved"`
}

// ShowTransferConfirm - put a transfer to the owner for approval
//
// an approved transfer only updates the sent totals here; the actual
// ledger call is the companion's job
func (handler *Assets) ShowTransferConfirm(arguments *ShowTransferConfirmArguments, reply *ShowTransferConfirmReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.To {
		return fault.ErrMissingParameters
	}
	if nil == arguments.Amount || arguments.Amount.Sign() < 0 {
		return fault.ErrMissingParameters
	}

	symbol, err := ticker.FromString(arguments.Ticker)
	if nil != err {
		return err
	}

	approved, err := handler.Confirmer.Confirm(ConfirmRequest{
		Method: MethodICRC1ShowTransferConfirm,
		Origin: arguments.RequestOrigin,
		Details: []string{
			arguments.Ticker,
			arguments.From,
			arguments.To,
			arguments.Amount.String(),
		},
	})
	if nil != err {
		return err
	}
	if !approved {
		handler.Log.Infof("transfer declined: %s %s", arguments.Amount, arguments.Ticker)
		reply.Approved = false
		return nil
	}

	if err := handler.Stats.IncrementSent(symbol, arguments.Amount); nil != err {
		return err
	}

	reply.Approved = true
	return nil
}

// assetInfo - snapshot one asset with derived account addresses
func (handler *Assets) assetInfo(assetID string) (AssetInfo, error) {
	info := AssetInfo{AssetID: assetID}

	all, err := handler.Ledger.AllAssetData()
	if nil != err {
		return info, err
	}
	data, ok := all[assetID]
	if !ok {
		return info, fault.ErrAssetNotRegistered
	}

	accounts := make([]AccountInfo, len(data.Accounts))
	for index := uint64(0); index < uint64(len(data.Accounts)); index += 1 {
		principal, err := handler.Ledger.AccountPrincipal(assetID, index)
		if nil != err {
			return info, err
		}
		accounts[index] = AccountInfo{
			Name:      data.Accounts[index],
			Principal: principal,
		}
	}

	info.Accounts = accounts
	return info, nil
}
