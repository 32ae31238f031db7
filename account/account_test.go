// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maskvault-inc/maskvaultd/account"
	"github.com/maskvault-inc/maskvaultd/fault"
)

var seed = []byte{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
	0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
}

func TestSeedIsDeterministic(t *testing.T) {
	first, err := account.PrivateKeyFromSeed(seed)
	assert.Nil(t, err, "wrong private key")
	second, err := account.PrivateKeyFromSeed(seed)
	assert.Nil(t, err, "wrong private key")

	assert.Equal(t, first.PrivateKeyBytes(), second.PrivateKeyBytes(), "key pair not deterministic")
	assert.Equal(t, first.Account().String(), second.Account().String(), "principal not deterministic")
}

func TestSeedLength(t *testing.T) {
	_, err := account.PrivateKeyFromSeed(seed[:16])
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "wrong error")
}

func TestPrincipalRoundTrip(t *testing.T) {
	privateKey, err := account.PrivateKeyFromSeed(seed)
	assert.Nil(t, err, "wrong private key")

	acc := privateKey.Account()
	principal := acc.String()

	back, err := account.AccountFromBase58(principal)
	assert.Nil(t, err, "wrong decode")
	assert.Equal(t, acc.PublicKey, back.PublicKey, "wrong public key")
	assert.Equal(t, principal, back.String(), "wrong principal")
}

func TestPrincipalChecksum(t *testing.T) {
	privateKey, err := account.PrivateKeyFromSeed(seed)
	assert.Nil(t, err, "wrong private key")

	principal := privateKey.Account().String()

	// flip a character inside the checksum region
	damaged := []byte(principal)
	last := len(damaged) - 1
	if damaged[last] == 'x' {
		damaged[last] = 'y'
	} else {
		damaged[last] = 'x'
	}

	_, err = account.AccountFromBase58(string(damaged))
	assert.NotNil(t, err, "damaged principal decoded")
}

func TestSignAndVerify(t *testing.T) {
	privateKey, err := account.PrivateKeyFromSeed(seed)
	assert.Nil(t, err, "wrong private key")

	message := []byte("request payload")
	signature := privateKey.Sign(message)

	acc := privateKey.Account()
	assert.Nil(t, acc.CheckSignature(message, signature), "wrong signature check")
	assert.Equal(t, fault.ErrSignatureInvalid, acc.CheckSignature([]byte("other"), signature), "forged message accepted")
	assert.Equal(t, fault.ErrSignatureInvalid, acc.CheckSignature(message, signature[:10]), "short signature accepted")
}
