// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/maskvault-inc/maskvaultd/entropy"
	"github.com/maskvault-inc/maskvaultd/fault"
)

// Entropy - deterministic entropy for calling origins
type Entropy struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Source  *entropy.Source
}

// longest caller supplied salt in bytes
const maximumSaltLength = 256

// EntropyGetArguments - caller supplied salt bytes
type EntropyGetArguments struct {
	Salt []byte `cbor:"salt"`
}

// EntropyGetReply - the derived entropy
type EntropyGetReply struct {
	Entropy []byte `cbor:"entropy"`
}

// Get - derive entropy scoped to the calling origin
//
// the same origin and salt always yield the same bytes; two origins
// can never obtain each other's values
func (handler *Entropy) Get(origin string, arguments *EntropyGetArguments, reply *EntropyGetReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if len(arguments.Salt) > maximumSaltLength {
		return fault.ErrInvalidSaltLength
	}

	secret, err := handler.Source.Custom(origin, arguments.Salt)
	if nil != err {
		return err
	}

	reply.Entropy = secret[:]
	return nil
}
