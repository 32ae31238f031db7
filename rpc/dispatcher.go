// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/maskvault-inc/maskvaultd/assets"
	"github.com/maskvault-inc/maskvaultd/counter"
	"github.com/maskvault-inc/maskvaultd/entropy"
	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/identity"
	"github.com/maskvault-inc/maskvaultd/linkage"
	"github.com/maskvault-inc/maskvaultd/state"
	"github.com/maskvault-inc/maskvaultd/stats"
)

// rate limits
const (
	requestRate  = 200
	requestBurst = 100
)

// Dependencies - everything the dispatcher hands to its handlers
type Dependencies struct {
	VaultOrigin string
	Store       *state.Store
	Graph       *linkage.Graph
	Ledger      *assets.Ledger
	Deriver     *identity.Deriver
	Source      *entropy.Source
	Stats       *stats.Aggregator
	Confirmer   Confirmer
}

type handlerFunc func(origin string, params []byte) (interface{}, error)

// Dispatcher - routes guarded requests to their handlers
//
// requests are strictly serialised; the in-flight counter backs the
// single-request precondition the document store relies on
type Dispatcher struct {
	sync.Mutex

	log         *logger.L
	vaultOrigin string
	store       *state.Store
	handlers    map[string]handlerFunc
	inFlight    counter.Counter
}

// NewDispatcher - build the handler table and verify the guards
func NewDispatcher(deps Dependencies) (*Dispatcher, error) {
	if "" == deps.VaultOrigin {
		return nil, fault.ErrMissingParameters
	}

	log := logger.New("rpc")

	stateHandler := &State{
		Log:     logger.New("rpc-state"),
		Limiter: rate.NewLimiter(requestRate, requestBurst),
		Graph:   deps.Graph,
		Ledger:  deps.Ledger,
		Stats:   deps.Stats,
	}
	identityHandler := &Identity{
		Log:       logger.New("rpc-identity"),
		Limiter:   rate.NewLimiter(requestRate, requestBurst),
		Graph:     deps.Graph,
		Deriver:   deps.Deriver,
		Stats:     deps.Stats,
		Confirmer: deps.Confirmer,
	}
	assetsHandler := &Assets{
		Log:       logger.New("rpc-assets"),
		Limiter:   rate.NewLimiter(requestRate, requestBurst),
		Ledger:    deps.Ledger,
		Stats:     deps.Stats,
		Confirmer: deps.Confirmer,
	}
	entropyHandler := &Entropy{
		Log:     logger.New("rpc-entropy"),
		Limiter: rate.NewLimiter(requestRate, requestBurst),
		Source:  deps.Source,
	}
	statisticsHandler := &Statistics{
		Log:     logger.New("rpc-statistics"),
		Limiter: rate.NewLimiter(requestRate, requestBurst),
		Stats:   deps.Stats,
	}

	dispatcher := &Dispatcher{
		log:         log,
		vaultOrigin: deps.VaultOrigin,
		store:       deps.Store,
	}

	dispatcher.handlers = map[string]handlerFunc{

		MethodStateGetOriginData: func(origin string, params []byte) (interface{}, error) {
			arguments := OriginDataArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := OriginDataReply{}
			if err := stateHandler.GetOriginData(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodStateGetAllOriginData: func(origin string, params []byte) (interface{}, error) {
			arguments := AllOriginDataArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := AllOriginDataReply{}
			if err := stateHandler.GetAllOriginData(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodStateGetAllAssetData: func(origin string, params []byte) (interface{}, error) {
			arguments := AllAssetDataArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := AllAssetDataReply{}
			if err := stateHandler.GetAllAssetData(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityAdd: func(origin string, params []byte) (interface{}, error) {
			arguments := IdentityAddArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := IdentityAddReply{}
			if err := identityHandler.Add(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityLogin: func(origin string, params []byte) (interface{}, error) {
			arguments := IdentityLoginArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := IdentityLoginReply{}
			if err := identityHandler.Login(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityGetLoginOptions: func(origin string, params []byte) (interface{}, error) {
			arguments := LoginOptionsArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := LoginOptionsReply{}
			if err := identityHandler.GetLoginOptions(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityUnlinkOne: func(origin string, params []byte) (interface{}, error) {
			arguments := UnlinkOneArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := UnlinkOneReply{}
			if err := identityHandler.UnlinkOne(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityUnlinkAll: func(origin string, params []byte) (interface{}, error) {
			arguments := UnlinkAllArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := UnlinkAllReply{}
			if err := identityHandler.UnlinkAll(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityEditPseudonym: func(origin string, params []byte) (interface{}, error) {
			arguments := EditPseudonymArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := EditPseudonymReply{}
			if err := identityHandler.EditPseudonym(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityStopSession: func(origin string, params []byte) (interface{}, error) {
			arguments := StopSessionArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := StopSessionReply{}
			if err := identityHandler.StopSession(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodICRC1AddAsset: func(origin string, params []byte) (interface{}, error) {
			arguments := AddAssetArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := AddAssetReply{}
			if err := assetsHandler.AddAsset(origin, &arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodICRC1AddAssetAccount: func(origin string, params []byte) (interface{}, error) {
			arguments := AddAssetAccountArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := AddAssetAccountReply{}
			if err := assetsHandler.AddAssetAccount(origin, &arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodICRC1EditAssetAccount: func(origin string, params []byte) (interface{}, error) {
			arguments := EditAssetAccountArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := EditAssetAccountReply{}
			if err := assetsHandler.EditAssetAccount(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodICRC1ShowTransferConfirm: func(origin string, params []byte) (interface{}, error) {
			arguments := ShowTransferConfirmArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := ShowTransferConfirmReply{}
			if err := assetsHandler.ShowTransferConfirm(&arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodStatisticsGet: func(origin string, params []byte) (interface{}, error) {
			reply := StatisticsGetReply{}
			if err := statisticsHandler.Get(&reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodStatisticsReset: func(origin string, params []byte) (interface{}, error) {
			reply := StatisticsResetReply{}
			if err := statisticsHandler.Reset(&reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityRequestLogout: func(origin string, params []byte) (interface{}, error) {
			reply := RequestLogoutReply{}
			if err := identityHandler.RequestLogout(origin, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityRequestLink: func(origin string, params []byte) (interface{}, error) {
			arguments := RequestLinkArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := RequestLinkReply{}
			if err := identityHandler.RequestLink(origin, &arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodIdentityRequestUnlink: func(origin string, params []byte) (interface{}, error) {
			arguments := RequestUnlinkArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := RequestUnlinkReply{}
			if err := identityHandler.RequestUnlink(origin, &arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},

		MethodEntropyGet: func(origin string, params []byte) (interface{}, error) {
			arguments := EntropyGetArguments{}
			if err := unmarshalParams(params, &arguments); nil != err {
				return nil, err
			}
			reply := EntropyGetReply{}
			if err := entropyHandler.Get(origin, &arguments, &reply); nil != err {
				return nil, err
			}
			return &reply, nil
		},
	}

	if err := dispatcher.VerifyGuards(); nil != err {
		return nil, err
	}

	return dispatcher, nil
}

// VerifyGuards - refuse to start with a mismatched guard table
//
// every handler must have a guard entry and every guard entry must
// have a handler; run at construction so a missing entry can never
// surface at request time
func (dispatcher *Dispatcher) VerifyGuards() error {
	for method := range dispatcher.handlers {
		if _, ok := guards[method]; !ok {
			dispatcher.log.Criticalf("method has no guard entry: %s", method)
			return fault.ErrUnguardedMethod
		}
	}
	for method := range guards {
		if _, ok := dispatcher.handlers[method]; !ok {
			dispatcher.log.Criticalf("guard entry has no handler: %s", method)
			return fault.ErrUnguardedMethod
		}
	}
	return nil
}

// Dispatch - handle one wire request, always producing a wire reply
func (dispatcher *Dispatcher) Dispatch(blob []byte) []byte {
	request := Request{}
	if err := decMode.Unmarshal(blob, &request); nil != err {
		dispatcher.log.Warnf("undecodable request: %s", err)
		return encodeError(fault.ErrCannotDecodeRequest)
	}

	result, err := dispatcher.Call(&request)
	if nil != err {
		return encodeError(err)
	}
	return encodeResult(result)
}

// Call - guard and run one request
//
// on success the document is flushed when the handler dirtied it; on
// failure the in-memory document keeps any partial changes and the
// next flush carries them, there is no rollback
func (dispatcher *Dispatcher) Call(request *Request) (interface{}, error) {
	dispatcher.Lock()
	defer dispatcher.Unlock()

	if 1 != dispatcher.inFlight.Increment() {
		dispatcher.log.Critical("concurrent request slipped past the lock")
		dispatcher.inFlight.Decrement()
		return nil, fault.ErrRequestInFlight
	}
	defer dispatcher.inFlight.Decrement()

	if err := checkGuard(request.Method, request.Origin, dispatcher.vaultOrigin); nil != err {
		dispatcher.log.Warnf("refused %q from %q: %s", request.Method, request.Origin, err)
		return nil, err
	}

	// the guard table and handler table are verified identical at
	// construction, so a guarded method always has a handler
	handler := dispatcher.handlers[request.Method]

	result, err := handler(request.Origin, request.Params)
	if nil != err {
		dispatcher.log.Warnf("%s failed: %s", request.Method, err)
		return nil, err
	}

	if err := dispatcher.store.FlushIfDirty(); nil != err {
		return nil, err
	}
	return result, nil
}
