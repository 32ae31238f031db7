// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// deterministic encoding so that identical documents always produce
// identical bytes, and strict decoding so that a damaged document is
// rejected rather than partially read
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encMode, err = encOptions.EncMode()
	if nil != err {
		panic(err)
	}

	decOptions := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}
	decMode, err = decOptions.DecMode()
	if nil != err {
		panic(err)
	}
}

// Pack - validate and encode the whole document
func Pack(state *State) ([]byte, error) {
	err := state.Validate()
	if nil != err {
		return nil, err
	}
	return encMode.Marshal(state)
}

// Unpack - decode and validate a stored document
func Unpack(data []byte) (*State, error) {
	state := &State{}
	err := decMode.Unmarshal(data, state)
	if nil != err {
		return nil, fault.ErrCorruptState
	}
	err = state.Validate()
	if nil != err {
		return nil, err
	}
	return state, nil
}
