// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// size of the on-disk device seed
const deviceSeedSize = 32

// FileHost - host backed by a device seed file
//
// the seed is created once with the system random source and kept
// with owner-only permissions; the root secret for a salt is the
// hash of seed and salt so the raw seed never leaves this type
type FileHost struct {
	seed [deviceSeedSize]byte
}

// NewFileHost - load the device seed, creating it on first use
func NewFileHost(fileName string) (*FileHost, error) {

	host := &FileHost{}

	data, err := ioutil.ReadFile(fileName)
	if nil == err {
		if deviceSeedSize != len(data) {
			return nil, fault.ErrInvalidKeyLength
		}
		copy(host.seed[:], data)
		return host, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	n, err := rand.Read(host.seed[:])
	if nil != err {
		return nil, err
	}
	if deviceSeedSize != n {
		return nil, fmt.Errorf("got: %d bytes, expected: %d bytes", n, deviceSeedSize)
	}

	err = ioutil.WriteFile(fileName, host.seed[:], 0600)
	if nil != err {
		return nil, err
	}

	return host, nil
}

// RootSecret - deterministic secret for a salt
func (host *FileHost) RootSecret(salt string) ([]byte, error) {
	buffer := make([]byte, 0, deviceSeedSize+len(salt))
	buffer = append(buffer, host.seed[:]...)
	buffer = append(buffer, salt...)
	digest := sha256.Sum256(buffer)
	return digest[:], nil
}
