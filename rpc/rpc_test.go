// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"

	"github.com/maskvault-inc/maskvaultd/account"
	"github.com/maskvault-inc/maskvaultd/assets"
	"github.com/maskvault-inc/maskvaultd/entropy"
	"github.com/maskvault-inc/maskvaultd/fixtures"
	"github.com/maskvault-inc/maskvaultd/identity"
	"github.com/maskvault-inc/maskvaultd/linkage"
	"github.com/maskvault-inc/maskvaultd/rpc"
	"github.com/maskvault-inc/maskvaultd/state"
	"github.com/maskvault-inc/maskvaultd/stats"
	"github.com/maskvault-inc/maskvaultd/storage"
	"github.com/maskvault-inc/maskvaultd/ticker"
)

const (
	vaultOrigin = "https://vault.example"
	dapp        = "https://dapp.example"
	wallet      = "https://wallet.example"
	evil        = "https://evil.example"

	icpLedger = "ryjl3-tyaaa-aaaaa-aaaba-cai"
)

type harness struct {
	dispatcher *rpc.Dispatcher
	backend    *storage.Memory
	store      *state.Store
	aggregator *stats.Aggregator
}

func testHarness(t *testing.T, allow bool) *harness {
	backend := storage.NewMemory()
	store := state.NewStore(backend)
	deriver := identity.NewDeriver(entropy.New(&fixtures.StaticHost{Secret: []byte("device-secret")}))
	aggregator := stats.New(store)

	dispatcher, err := rpc.NewDispatcher(rpc.Dependencies{
		VaultOrigin: vaultOrigin,
		Store:       store,
		Graph:       linkage.New(store, deriver),
		Ledger:      assets.New(store, deriver),
		Deriver:     deriver,
		Source:      entropy.New(&fixtures.StaticHost{Secret: []byte("device-secret")}),
		Stats:       aggregator,
		Confirmer:   rpc.AutoConfirmer{Allow: allow},
	})
	assert.Nil(t, err, "wrong dispatcher")

	return &harness{
		dispatcher: dispatcher,
		backend:    backend,
		store:      store,
		aggregator: aggregator,
	}
}

// call - push one request through the full wire path
func call(t *testing.T, dispatcher *rpc.Dispatcher, method string, origin string, arguments interface{}, reply interface{}) *rpc.Response {

	var params []byte
	var err error
	if nil != arguments {
		params, err = cbor.Marshal(arguments)
		assert.Nil(t, err, "wrong params")
	}

	blob, err := cbor.Marshal(rpc.Request{
		Method: method,
		Origin: origin,
		Params: params,
	})
	assert.Nil(t, err, "wrong request")

	response := rpc.Response{}
	err = cbor.Unmarshal(dispatcher.Dispatch(blob), &response)
	assert.Nil(t, err, "wrong response envelope")

	if response.OK && nil != reply {
		assert.Nil(t, cbor.Unmarshal(response.Result, reply), "wrong result")
	}
	return &response
}

func TestUnknownMethodIsRefused(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	response := call(t, h.dispatcher, "state_dropEverything", vaultOrigin, nil, nil)
	assert.False(t, response.OK, "unknown method accepted")
	assert.Equal(t, rpc.CodeInvalidRpcMethod, response.Code, "wrong code")
}

func TestMalformedEnvelopeIsRefused(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	response := rpc.Response{}
	err := cbor.Unmarshal(h.dispatcher.Dispatch([]byte("not cbor at all")), &response)
	assert.Nil(t, err, "wrong response envelope")
	assert.False(t, response.OK, "garbage accepted")
	assert.Equal(t, rpc.CodeInvalidInput, response.Code, "wrong code")
}

func TestProtectedMethodFromForeignOrigin(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	// seed some state through the legitimate origin
	response := call(t, h.dispatcher, rpc.MethodStateGetOriginData, vaultOrigin,
		rpc.OriginDataArguments{Origin: dapp}, nil)
	assert.True(t, response.OK, "wrong seed call")

	data, err := h.store.Load()
	assert.Nil(t, err, "wrong load")
	before, err := state.Pack(data)
	assert.Nil(t, err, "wrong pack")
	puts := h.backend.Puts

	for _, method := range []string{
		rpc.MethodStateGetOriginData,
		rpc.MethodIdentityAdd,
		rpc.MethodIdentityUnlinkAll,
		rpc.MethodICRC1AddAsset,
		rpc.MethodStatisticsReset,
	} {
		response = call(t, h.dispatcher, method, evil,
			rpc.OriginDataArguments{Origin: dapp}, nil)
		assert.False(t, response.OK, "protected method accepted: %s", method)
		assert.Equal(t, rpc.CodeSecurityViolation, response.Code, "wrong code: %s", method)
	}

	after, err := state.Pack(data)
	assert.Nil(t, err, "wrong pack")
	assert.Equal(t, before, after, "state mutated by refused request")
	assert.Equal(t, puts, h.backend.Puts, "storage written by refused request")
}

func TestLinkAndUnlinkAllScenario(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	originReply := rpc.OriginDataReply{}
	response := call(t, h.dispatcher, rpc.MethodStateGetOriginData, vaultOrigin,
		rpc.OriginDataArguments{Origin: dapp}, &originReply)
	assert.True(t, response.OK, "wrong origin data call")
	assert.Equal(t, 1, len(originReply.Data.Masks), "wrong mask count")

	linkReply := rpc.RequestLinkReply{}
	response = call(t, h.dispatcher, rpc.MethodIdentityRequestLink, dapp,
		rpc.RequestLinkArguments{WithOrigin: wallet}, &linkReply)
	assert.True(t, response.OK, "wrong link call")
	assert.True(t, linkReply.Linked, "link not made")

	unlinkReply := rpc.UnlinkAllReply{}
	response = call(t, h.dispatcher, rpc.MethodIdentityUnlinkAll, vaultOrigin,
		rpc.UnlinkAllArguments{Origin: dapp}, &unlinkReply)
	assert.True(t, response.OK, "wrong unlink call")
	assert.Equal(t, []string{wallet}, unlinkReply.Unlinked, "wrong unlinked set")

	statisticsReply := rpc.StatisticsGetReply{}
	response = call(t, h.dispatcher, rpc.MethodStatisticsGet, vaultOrigin, nil, &statisticsReply)
	assert.True(t, response.OK, "wrong statistics call")
	assert.Equal(t, uint64(1), statisticsReply.Statistics.OriginsLinked, "wrong links counted")
	assert.Equal(t, uint64(1), statisticsReply.Statistics.OriginsUnlinked, "wrong unlinks counted")
	assert.Equal(t, uint64(1), statisticsReply.Statistics.MasksCreated, "wrong masks counted")
}

func TestLoginProducesVerifiableProof(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	originReply := rpc.OriginDataReply{}
	response := call(t, h.dispatcher, rpc.MethodStateGetOriginData, vaultOrigin,
		rpc.OriginDataArguments{Origin: wallet}, &originReply)
	assert.True(t, response.OK, "wrong origin data call")

	loginReply := rpc.IdentityLoginReply{}
	response = call(t, h.dispatcher, rpc.MethodIdentityLogin, vaultOrigin,
		rpc.IdentityLoginArguments{ToOrigin: wallet, WithIdentityID: 0}, &loginReply)
	assert.True(t, response.OK, "wrong login call")
	assert.Equal(t, originReply.Data.Masks[0].Principal, loginReply.Principal, "wrong principal")

	acc, err := account.AccountFromBase58(loginReply.Principal)
	assert.Nil(t, err, "wrong principal encoding")
	assert.Nil(t, acc.CheckSignature([]byte(wallet), loginReply.Proof), "proof does not verify")

	data, err := h.store.Load()
	assert.Nil(t, err, "wrong load")
	assert.NotNil(t, data.OriginData[wallet].CurrentSession, "no session recorded")
}

func TestAssetRegistrationFlow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	addReply := rpc.AddAssetReply{}
	response := call(t, h.dispatcher, rpc.MethodICRC1AddAsset, vaultOrigin,
		rpc.AddAssetArguments{Assets: []rpc.AssetSpec{{ID: icpLedger, Name: "Internet Computer", Symbol: "ICP"}}},
		&addReply)
	assert.True(t, response.OK, "wrong add asset call")
	assert.True(t, addReply.Approved, "registration declined")
	assert.Equal(t, 1, len(addReply.Assets), "wrong asset count")
	assert.Equal(t, 1, len(addReply.Assets[0].Accounts), "wrong account count")
	assert.Equal(t, "Main", addReply.Assets[0].Accounts[0].Name, "wrong main account")
	assert.NotEqual(t, "", addReply.Assets[0].Accounts[0].Principal, "missing principal")

	accountReply := rpc.AddAssetAccountReply{}
	response = call(t, h.dispatcher, rpc.MethodICRC1AddAssetAccount, vaultOrigin,
		rpc.AddAssetAccountArguments{AssetID: icpLedger}, &accountReply)
	assert.True(t, response.OK, "wrong add account call")
	assert.Equal(t, "Account #1", accountReply.Name, "wrong account name")

	editReply := rpc.EditAssetAccountReply{}
	response = call(t, h.dispatcher, rpc.MethodICRC1EditAssetAccount, vaultOrigin,
		rpc.EditAssetAccountArguments{AssetID: icpLedger, AccountID: 1, NewName: "Savings"}, &editReply)
	assert.True(t, response.OK, "wrong edit account call")

	dataReply := rpc.AllAssetDataReply{}
	response = call(t, h.dispatcher, rpc.MethodStateGetAllAssetData, vaultOrigin,
		rpc.AllAssetDataArguments{}, &dataReply)
	assert.True(t, response.OK, "wrong asset data call")
	assert.Equal(t, "Savings", dataReply.Data[icpLedger].Accounts[1], "rename not stored")
}

func TestTransferConfirmUpdatesSentTotals(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	confirmReply := rpc.ShowTransferConfirmReply{}
	response := call(t, h.dispatcher, rpc.MethodICRC1ShowTransferConfirm, vaultOrigin,
		rpc.ShowTransferConfirmArguments{
			RequestOrigin: dapp,
			Ticker:        "ICP",
			From:          "sender-principal",
			To:            "receiver-principal",
			Amount:        big.NewInt(123),
		}, &confirmReply)
	assert.True(t, response.OK, "wrong confirm call")
	assert.True(t, confirmReply.Approved, "transfer declined")

	snapshot, err := h.aggregator.Snapshot()
	assert.Nil(t, err, "wrong snapshot")
	assert.Equal(t, big.NewInt(123), snapshot.Sent[ticker.ICP], "wrong sent total")
}

func TestDeclinedConsentMutatesNothing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, false)

	linkReply := rpc.RequestLinkReply{}
	response := call(t, h.dispatcher, rpc.MethodIdentityRequestLink, dapp,
		rpc.RequestLinkArguments{WithOrigin: wallet}, &linkReply)
	assert.True(t, response.OK, "decline reported as error")
	assert.False(t, linkReply.Linked, "declined link made")

	confirmReply := rpc.ShowTransferConfirmReply{}
	response = call(t, h.dispatcher, rpc.MethodICRC1ShowTransferConfirm, vaultOrigin,
		rpc.ShowTransferConfirmArguments{
			RequestOrigin: dapp,
			Ticker:        "ICP",
			To:            "receiver-principal",
			Amount:        big.NewInt(5),
		}, &confirmReply)
	assert.True(t, response.OK, "decline reported as error")
	assert.False(t, confirmReply.Approved, "declined transfer approved")

	assert.Equal(t, 0, h.backend.Puts, "declined requests reached storage")
}

func TestEntropyGetIsOriginScoped(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	salt := []byte("my-salt")

	first := rpc.EntropyGetReply{}
	response := call(t, h.dispatcher, rpc.MethodEntropyGet, dapp,
		rpc.EntropyGetArguments{Salt: salt}, &first)
	assert.True(t, response.OK, "wrong entropy call")
	assert.Equal(t, entropy.SecretSize, len(first.Entropy), "wrong entropy size")

	again := rpc.EntropyGetReply{}
	response = call(t, h.dispatcher, rpc.MethodEntropyGet, dapp,
		rpc.EntropyGetArguments{Salt: salt}, &again)
	assert.True(t, response.OK, "wrong entropy call")
	assert.Equal(t, first.Entropy, again.Entropy, "entropy is not deterministic")

	other := rpc.EntropyGetReply{}
	response = call(t, h.dispatcher, rpc.MethodEntropyGet, wallet,
		rpc.EntropyGetArguments{Salt: salt}, &other)
	assert.True(t, response.OK, "wrong entropy call")
	assert.NotEqual(t, first.Entropy, other.Entropy, "entropy not origin scoped")
}

func TestMissingParameters(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	response := call(t, h.dispatcher, rpc.MethodStateGetOriginData, vaultOrigin,
		rpc.OriginDataArguments{}, nil)
	assert.False(t, response.OK, "empty origin accepted")
	assert.Equal(t, rpc.CodeInvalidInput, response.Code, "wrong code")
}

func TestSuccessfulRequestFlushes(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := testHarness(t, true)

	response := call(t, h.dispatcher, rpc.MethodStateGetOriginData, vaultOrigin,
		rpc.OriginDataArguments{Origin: dapp}, nil)
	assert.True(t, response.OK, "wrong origin data call")
	assert.Equal(t, 1, h.backend.Puts, "creation not flushed")
	assert.False(t, h.store.IsDirty(), "store left dirty")

	// a pure read leaves storage alone
	response = call(t, h.dispatcher, rpc.MethodStateGetOriginData, vaultOrigin,
		rpc.OriginDataArguments{Origin: dapp}, nil)
	assert.True(t, response.OK, "wrong origin data call")
	assert.Equal(t, 1, h.backend.Puts, "clean request flushed")
}
