// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - deterministic mask derivation
//
// a mask is never stored as key material: given the same scope,
// index and device secret the derivation always reproduces the same
// key pair, so only the pseudonym and ordering need to persist
package identity

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
	gocache "github.com/patrickmn/go-cache"

	"github.com/maskvault-inc/maskvaultd/account"
	"github.com/maskvault-inc/maskvaultd/entropy"
	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/state"
)

// Scope - what kind of thing an identity belongs to
type Scope int

// possible scopes; each maps to its own salt prefix so identities
// can never collide across kinds
const (
	ScopeOrigin Scope = iota + 1
	ScopeAccount
)

// principal cache lifetime
const (
	cacheExpiry  = 15 * time.Minute
	cacheCleanup = 30 * time.Minute
)

// Deriver - turns (scope, scope id, index) into key pairs
type Deriver struct {
	source     *entropy.Source
	log        *logger.L
	principals *gocache.Cache
}

// NewDeriver - create a deriver over an entropy source
func NewDeriver(source *entropy.Source) *Deriver {
	return &Deriver{
		source:     source,
		log:        logger.New("identity"),
		principals: gocache.New(cacheExpiry, cacheCleanup),
	}
}

// Derive - deterministic key pair for a scope
func (deriver *Deriver) Derive(scope Scope, scopeID string, index uint64) (*account.PrivateKey, error) {

	var secret [entropy.SecretSize]byte
	var err error

	switch scope {
	case ScopeOrigin:
		secret, err = deriver.source.ForIdentity(scopeID, index)
	case ScopeAccount:
		secret, err = deriver.source.ForAccount(scopeID, index)
	default:
		return nil, fault.ErrInvalidScope
	}
	if nil != err {
		return nil, err
	}

	return account.PrivateKeyFromSeed(secret[:])
}

// Principal - the public identifier for a scope, cached
//
// only the principal string is cached, never key material
func (deriver *Deriver) Principal(scope Scope, scopeID string, index uint64) (string, error) {

	key := fmt.Sprintf("%d\x00%s\x00%d", scope, scopeID, index)
	if cached, ok := deriver.principals.Get(key); ok {
		return cached.(string), nil
	}

	privateKey, err := deriver.Derive(scope, scopeID, index)
	if nil != err {
		return "", err
	}

	principal := privateKey.Account().String()
	deriver.principals.SetDefault(key, principal)
	return principal, nil
}

// MakeMask - derive the mask shown to an origin at an index
func (deriver *Deriver) MakeMask(origin string, index uint64) (*state.Mask, error) {

	privateKey, err := deriver.Derive(ScopeOrigin, origin, index)
	if nil != err {
		return nil, err
	}

	acc := privateKey.Account()

	// pseudonym seeds come from fixed public key positions so the
	// generated name is stable for the mask
	seed1 := acc.PublicKey[3]
	seed2 := acc.PublicKey[4]

	return &state.Mask{
		Pseudonym: GeneratePseudonym(seed1, seed2),
		Principal: acc.String(),
	}, nil
}
