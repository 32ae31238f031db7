// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy_test

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maskvault-inc/maskvaultd/entropy"
	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/fixtures"
)

func TestDeriveIsDeterministic(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	source := entropy.New(&fixtures.StaticHost{Secret: []byte("device-secret")})

	first, err := source.ForIdentity("https://dapp.example", 0)
	assert.Nil(t, err, "wrong derive")
	second, err := source.ForIdentity("https://dapp.example", 0)
	assert.Nil(t, err, "wrong derive")
	assert.Equal(t, first, second, "derivation is not deterministic")
}

func TestDeriveSeparatesScopes(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	source := entropy.New(&fixtures.StaticHost{Secret: []byte("device-secret")})

	identity, err := source.ForIdentity("scope", 1)
	assert.Nil(t, err, "wrong identity derive")
	account, err := source.ForAccount("scope", 1)
	assert.Nil(t, err, "wrong account derive")
	custom, err := source.Custom("scope", []byte("\n1"))
	assert.Nil(t, err, "wrong custom derive")

	assert.NotEqual(t, identity, account, "identity and account scopes collide")
	assert.NotEqual(t, identity, custom, "identity and custom scopes collide")
	assert.NotEqual(t, account, custom, "account and custom scopes collide")
}

func TestDeriveSeparatesIndices(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	source := entropy.New(&fixtures.StaticHost{Secret: []byte("device-secret")})

	zero, err := source.ForIdentity("https://dapp.example", 0)
	assert.Nil(t, err, "wrong derive")
	one, err := source.ForIdentity("https://dapp.example", 1)
	assert.Nil(t, err, "wrong derive")
	other, err := source.ForIdentity("https://wallet.example", 0)
	assert.Nil(t, err, "wrong derive")

	assert.NotEqual(t, zero, one, "indices collide")
	assert.NotEqual(t, zero, other, "origins collide")
}

func TestDerivePropagatesHostFailure(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	source := entropy.New(&fixtures.StaticHost{Fail: fault.ErrEntropyUnavailable})

	_, err := source.ForIdentity("https://dapp.example", 0)
	assert.Equal(t, fault.ErrEntropyUnavailable, err, "wrong error")
}

func TestFileHostRoundTrip(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "entropy")
	assert.Nil(t, err, "wrong temp dir")
	defer os.RemoveAll(dir)

	fileName := path.Join(dir, "device.seed")

	first, err := entropy.NewFileHost(fileName)
	assert.Nil(t, err, "wrong host create")
	secret1, err := first.RootSecret("salt")
	assert.Nil(t, err, "wrong root secret")

	// a second host over the same file sees the same seed
	second, err := entropy.NewFileHost(fileName)
	assert.Nil(t, err, "wrong host reopen")
	secret2, err := second.RootSecret("salt")
	assert.Nil(t, err, "wrong root secret")

	assert.Equal(t, secret1, secret2, "seed file not stable")

	other, err := second.RootSecret("other salt")
	assert.Nil(t, err, "wrong root secret")
	assert.NotEqual(t, secret1, other, "salts collide")
}
