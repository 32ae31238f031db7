// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maskvault-inc/maskvaultd/entropy"
	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/fixtures"
	"github.com/maskvault-inc/maskvaultd/identity"
)

func testDeriver() *identity.Deriver {
	return identity.NewDeriver(entropy.New(&fixtures.StaticHost{Secret: []byte("device-secret")}))
}

func TestDeriveIsDeterministic(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	deriver := testDeriver()

	first, err := deriver.Derive(identity.ScopeOrigin, "https://dapp.example", 0)
	assert.Nil(t, err, "wrong derive")
	second, err := deriver.Derive(identity.ScopeOrigin, "https://dapp.example", 0)
	assert.Nil(t, err, "wrong derive")

	assert.Equal(t, first.Account().String(), second.Account().String(), "principals differ")
	assert.Equal(t, first.PrivateKeyBytes(), second.PrivateKeyBytes(), "key pairs differ")
}

func TestDeriveSeparatesScopesAndIndices(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	deriver := testDeriver()

	seen := make(map[string]bool)
	items := []struct {
		scope identity.Scope
		id    string
		index uint64
	}{
		{identity.ScopeOrigin, "https://dapp.example", 0},
		{identity.ScopeOrigin, "https://dapp.example", 1},
		{identity.ScopeOrigin, "https://wallet.example", 0},
		{identity.ScopeAccount, "https://dapp.example", 0},
		{identity.ScopeAccount, "ryjl3-tyaaa-aaaaa-aaaba-cai", 0},
		{identity.ScopeAccount, "ryjl3-tyaaa-aaaaa-aaaba-cai", 1},
	}

	for i, item := range items {
		principal, err := deriver.Principal(item.scope, item.id, item.index)
		assert.Nil(t, err, "wrong principal")
		if seen[principal] {
			t.Fatalf("%d: principal collision: %s", i, principal)
		}
		seen[principal] = true
	}
}

func TestDeriveRejectsUnknownScope(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := testDeriver().Derive(identity.Scope(99), "scope", 0)
	assert.Equal(t, fault.ErrInvalidScope, err, "wrong error")
}

func TestPrincipalCacheStaysConsistent(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	deriver := testDeriver()

	first, err := deriver.Principal(identity.ScopeOrigin, "https://dapp.example", 0)
	assert.Nil(t, err, "wrong principal")

	// second call is served from cache and must match a fresh derive
	second, err := deriver.Principal(identity.ScopeOrigin, "https://dapp.example", 0)
	assert.Nil(t, err, "wrong principal")
	assert.Equal(t, first, second, "cached principal differs")

	derived, err := deriver.Derive(identity.ScopeOrigin, "https://dapp.example", 0)
	assert.Nil(t, err, "wrong derive")
	assert.Equal(t, first, derived.Account().String(), "cache diverges from derivation")
}

func TestMakeMask(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	deriver := testDeriver()

	mask, err := deriver.MakeMask("https://dapp.example", 0)
	assert.Nil(t, err, "wrong mask")
	assert.NotEqual(t, "", mask.Principal, "empty principal")
	assert.Equal(t, 2, len(strings.Fields(mask.Pseudonym)), "pseudonym is not two words")

	// pseudonym and principal are stable
	again, err := deriver.MakeMask("https://dapp.example", 0)
	assert.Nil(t, err, "wrong mask")
	assert.Equal(t, mask, again, "mask is not stable")
}

func TestGeneratePseudonymCoversSeedSpace(t *testing.T) {
	a := identity.GeneratePseudonym(0, 0)
	b := identity.GeneratePseudonym(1, 1)
	c := identity.GeneratePseudonym(255, 255)
	assert.NotEqual(t, a, b, "seeds collide")
	assert.NotEqual(t, "", c, "empty pseudonym")
}
