// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/maskvault-inc/maskvaultd/fault"
)

// method names as they appear on the wire
const (
	MethodStateGetOriginData    = "state_getOriginData"
	MethodStateGetAllOriginData = "state_getAllOriginData"
	MethodStateGetAllAssetData  = "state_getAllAssetData"

	MethodIdentityAdd             = "identity_add"
	MethodIdentityLogin           = "identity_login"
	MethodIdentityGetLoginOptions = "identity_getLoginOptions"
	MethodIdentityUnlinkOne       = "identity_unlinkOne"
	MethodIdentityUnlinkAll       = "identity_unlinkAll"
	MethodIdentityEditPseudonym   = "identity_editPseudonym"
	MethodIdentityStopSession     = "identity_stopSession"

	MethodICRC1AddAsset            = "icrc1_addAsset"
	MethodICRC1AddAssetAccount     = "icrc1_addAssetAccount"
	MethodICRC1EditAssetAccount    = "icrc1_editAssetAccount"
	MethodICRC1ShowTransferConfirm = "icrc1_showTransferConfirm"

	MethodStatisticsGet   = "statistics_get"
	MethodStatisticsReset = "statistics_reset"

	MethodIdentityRequestLogout = "identity_requestLogout"
	MethodIdentityRequestLink   = "identity_requestLink"
	MethodIdentityRequestUnlink = "identity_requestUnlink"

	MethodEntropyGet = "entropy_get"
)

type guard int

const (
	guardProtected guard = iota + 1
	guardOpen
)

// guards - every method must appear here; a method with no entry is
// refused outright, never handled
//
// protected methods are usable from the vault origin only; open
// methods act on behalf of the calling origin
var guards = map[string]guard{
	MethodStateGetOriginData:    guardProtected,
	MethodStateGetAllOriginData: guardProtected,
	MethodStateGetAllAssetData:  guardProtected,

	MethodIdentityAdd:             guardProtected,
	MethodIdentityLogin:           guardProtected,
	MethodIdentityGetLoginOptions: guardProtected,
	MethodIdentityUnlinkOne:       guardProtected,
	MethodIdentityUnlinkAll:       guardProtected,
	MethodIdentityEditPseudonym:   guardProtected,
	MethodIdentityStopSession:     guardProtected,

	MethodICRC1AddAsset:            guardProtected,
	MethodICRC1AddAssetAccount:     guardProtected,
	MethodICRC1EditAssetAccount:    guardProtected,
	MethodICRC1ShowTransferConfirm: guardProtected,

	MethodStatisticsGet:   guardProtected,
	MethodStatisticsReset: guardProtected,

	MethodIdentityRequestLogout: guardOpen,
	MethodIdentityRequestLink:   guardOpen,
	MethodIdentityRequestUnlink: guardOpen,

	MethodEntropyGet: guardOpen,
}

// checkGuard - classify a request before any handler code runs
func checkGuard(method string, origin string, vaultOrigin string) error {
	g, ok := guards[method]
	if !ok {
		return fault.ErrRpcMethodUnknown
	}

	switch g {
	case guardProtected:
		if origin != vaultOrigin {
			return fault.ErrProtectedMethod
		}
	case guardOpen:
	default:
		return fault.ErrUnguardedMethod
	}
	return nil
}
