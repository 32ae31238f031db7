// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - public identities of derived key pairs
//
// a principal is the textual form of an account: a key variant byte,
// the ed25519 public key and a truncated sha3-256 checksum, base58
// encoded; principals are re-derivable and never need to be trusted
// from storage
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// enumeration of supported key algorithms
const (
	ED25519 = 1 // the only supported algorithm

	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Account - an ed25519 public key
type Account struct {
	PublicKey []byte
}

// AccountFromBase58 - decode a principal string back to an account
func AccountFromBase58(principal string) (*Account, error) {
	accountDecoded, err := base58.Decode(principal)
	if nil != err || 0 == len(accountDecoded) {
		return nil, fault.ErrCannotDecodeAccount
	}

	keyVariant := accountDecoded[0]
	if keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}
	if keyVariant>>algorithmShift != ED25519 {
		return nil, fault.ErrCannotDecodeAccount
	}

	keyLength := len(accountDecoded) - 1 - checksumLength
	if ed25519.PublicKeySize != keyLength {
		return nil, fault.ErrInvalidKeyLength
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	return &Account{
		PublicKey: accountDecoded[1:checksumStart],
	}, nil
}

// CheckSignature - verify the signature of a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {

	if ed25519.SignatureSize != len(signature) {
		return fault.ErrSignatureInvalid
	}

	if !ed25519.Verify(account.PublicKey, message, []byte(signature)) {
		return fault.ErrSignatureInvalid
	}
	return nil
}

// Bytes - byte slice for encoded key
func (account *Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	return append([]byte{keyVariant}, account.PublicKey...)
}

// String - the principal: base58 encoding of encoded key and checksum
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its base58 form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert base58 text back to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.PublicKey = a.PublicKey
	return nil
}
