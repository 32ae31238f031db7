// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entropy - root secret access and salt construction
//
// every derived key in the vault starts here: a root secret is
// obtained from the host for a purpose-specific salt prefix, the
// caller supplied salt bytes are appended and the result is hashed
// once with SHA-256
package entropy

import (
	"crypto/sha256"
	"strconv"

	"github.com/bitmark-inc/logger"
)

// SecretSize - size of every derived secret in bytes
const SecretSize = sha256.Size

// salt prefixes
//
// WARNING: these values must never change once shipped - a different
// prefix silently derives different keys for every existing user and
// there is no migration path
const (
	customPrefix   = "\x0amaskvault\n"
	identityPrefix = "\x0amaskvault-identity\n"
	accountPrefix  = "\x0amaskvault-icrc1\n"
	saltSeparator  = "\n"
)

// Host - origin of the root secret
//
// the host call is a round trip and may fail; for the same salt the
// returned secret must always be identical
type Host interface {
	RootSecret(salt string) ([]byte, error)
}

// Source - derives secrets from the host root secret
type Source struct {
	host Host
	log  *logger.L
}

// New - create a source around a host
func New(host Host) *Source {
	return &Source{
		host: host,
		log:  logger.New("entropy"),
	}
}

// derive - fetch the root secret for a salt prefix and hash it
// together with the extra salt bytes
func (source *Source) derive(hostSalt string, salt []byte) ([SecretSize]byte, error) {
	var secret [SecretSize]byte

	root, err := source.host.RootSecret(hostSalt)
	if nil != err {
		source.log.Errorf("host entropy failed: %s", err)
		return secret, err
	}

	buffer := make([]byte, 0, len(root)+len(salt))
	buffer = append(buffer, root...)
	buffer = append(buffer, salt...)

	secret = sha256.Sum256(buffer)
	return secret, nil
}

// Custom - caller supplied salt scoped to an origin
//
// the user salt is applied as a separate hashing step and never
// reaches the host
func (source *Source) Custom(origin string, salt []byte) ([SecretSize]byte, error) {
	return source.derive(customPrefix+origin, salt)
}

// ForIdentity - secret for an origin identity mask
func (source *Source) ForIdentity(origin string, index uint64) ([SecretSize]byte, error) {
	return source.derive(identityPrefix+origin, []byte(saltSeparator+strconv.FormatUint(index, 10)))
}

// ForAccount - secret for a token account
func (source *Source) ForAccount(assetID string, index uint64) ([SecretSize]byte, error) {
	return source.derive(accountPrefix+assetID, []byte(saltSeparator+strconv.FormatUint(index, 10)))
}
