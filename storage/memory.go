// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Memory - in-process backend for tests
type Memory struct {
	data    []byte
	present bool

	// when set the next call fails with this error
	GetError error
	PutError error

	// write counter, to check flush is skipped when clean
	Puts int
}

// NewMemory - create an empty backend
func NewMemory() *Memory {
	return &Memory{}
}

// Get - fetch the document
func (store *Memory) Get() ([]byte, bool, error) {
	if nil != store.GetError {
		return nil, false, store.GetError
	}
	if !store.present {
		return nil, false, nil
	}
	data := append([]byte{}, store.data...)
	return data, true, nil
}

// Put - store the document
func (store *Memory) Put(data []byte) error {
	if nil != store.PutError {
		return store.PutError
	}
	store.data = append([]byte{}, data...)
	store.present = true
	store.Puts += 1
	return nil
}

// Close - nothing to release
func (store *Memory) Close() error {
	return nil
}
