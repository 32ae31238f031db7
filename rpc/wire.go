// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// Request - the envelope every vault request arrives in
type Request struct {
	Method string          `cbor:"method"`
	Origin string          `cbor:"origin"`
	Params cbor.RawMessage `cbor:"params,omitempty"`
}

// Response - the envelope every reply leaves in
//
// either OK with a result, or a code and a message
type Response struct {
	OK     bool            `cbor:"ok"`
	Code   int             `cbor:"code,omitempty"`
	Error  string          `cbor:"error,omitempty"`
	Result cbor.RawMessage `cbor:"result,omitempty"`
}

// error codes on the wire
const (
	CodeInvalidInput      = 1
	CodeInvalidRpcMethod  = 2
	CodeSecurityViolation = 3
	CodeNotFound          = 4
	CodeHostError         = 5
	CodeInternal          = 6
)

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if nil != err {
		panic(err)
	}

	options := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}
	decMode, err = options.DecMode()
	if nil != err {
		panic(err)
	}
}

// errorCode - map a fault class to its wire code
func errorCode(err error) int {
	switch {
	case fault.IsErrMethod(err):
		return CodeInvalidRpcMethod
	case fault.IsErrSecurity(err):
		return CodeSecurityViolation
	case fault.IsErrNotFound(err):
		return CodeNotFound
	case fault.IsErrHost(err):
		return CodeHostError
	case fault.IsErrInvalid(err), fault.IsErrExists(err):
		return CodeInvalidInput
	default:
		return CodeInternal
	}
}

// encodeError - build the wire form of a failed request
func encodeError(err error) []byte {
	blob, marshalError := encMode.Marshal(Response{
		OK:    false,
		Code:  errorCode(err),
		Error: err.Error(),
	})
	if nil != marshalError {
		panic(marshalError)
	}
	return blob
}

// encodeResult - build the wire form of a successful request
func encodeResult(result interface{}) []byte {
	body, err := encMode.Marshal(result)
	if nil != err {
		// replies are built from validated state and must encode
		panic(err)
	}

	blob, err := encMode.Marshal(Response{
		OK:     true,
		Result: body,
	})
	if nil != err {
		panic(err)
	}
	return blob
}

// unmarshalParams - decode method parameters, absent means defaults
func unmarshalParams(params []byte, arguments interface{}) error {
	if 0 == len(params) {
		return nil
	}
	if err := decMode.Unmarshal(params, arguments); nil != err {
		return fault.ErrCannotDecodeRequest
	}
	return nil
}
