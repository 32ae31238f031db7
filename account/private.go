// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// PrivateKey - an ed25519 private key
type PrivateKey struct {
	PrivateKey []byte
}

// PrivateKeyFromSeed - deterministic key pair from a 32 byte secret
//
// the same seed always produces the same key pair, which is what
// makes masks re-derivable without storing key material
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}

	_, priv, err := ed25519.GenerateKey(bytes.NewBuffer(seed))
	if nil != err {
		return nil, err
	}

	return &PrivateKey{
		PrivateKey: priv,
	}, nil
}

// Account - the corresponding public account
func (privateKey *PrivateKey) Account() *Account {
	return &Account{
		PublicKey: privateKey.PrivateKey[ed25519.PrivateKeySize-ed25519.PublicKeySize:],
	}
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(privateKey.PrivateKey, message))
}

// PrivateKeyBytes - fetch the private key as byte slice
func (privateKey *PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey
}
