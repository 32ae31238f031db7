// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/storage"
)

// Store - owner of the in-memory document
//
// constructed once per process and passed by reference; mutations go
// through the document returned by Load and the caller marks the
// store dirty afterwards (mutate then MarkDirty, no interception)
//
// the host serialises requests, so there is at most one mutator at a
// time; this is a precondition, not something the store enforces
type Store struct {
	backend storage.Backend
	log     *logger.L
	nowFunc func() time.Time

	data  *State
	dirty bool
}

// NewStore - create a store over a backend
func NewStore(backend storage.Backend) *Store {
	return &Store{
		backend: backend,
		log:     logger.New("state"),
		nowFunc: time.Now,
	}
}

// SetClock - override the time source, for tests
func (store *Store) SetClock(nowFunc func() time.Time) {
	store.nowFunc = nowFunc
}

// Now - the store's time source
func (store *Store) Now() time.Time {
	return store.nowFunc()
}

// Load - fetch the document, reading the backend only once
//
// a missing document yields defaults; an unreadable or invalid one
// is fatal to the caller
func (store *Store) Load() (*State, error) {
	if nil != store.data {
		return store.data, nil
	}

	blob, present, err := store.backend.Get()
	if nil != err {
		return nil, err
	}

	if !present {
		store.log.Info("no stored document, starting fresh")
		store.data = NewState(store.nowFunc())
		store.dirty = true
		return store.data, nil
	}

	data, err := Unpack(blob)
	if nil != err {
		store.log.Criticalf("stored document rejected: %s", err)
		return nil, err
	}

	store.data = data
	return store.data, nil
}

// MarkDirty - record that the document changed in memory
func (store *Store) MarkDirty() {
	store.dirty = true
}

// IsDirty - true when the last flush is stale
func (store *Store) IsDirty() bool {
	return store.dirty
}

// FlushIfDirty - write the document wholesale when it changed
//
// a no-op when nothing changed; validation runs before every write
// so a broken in-memory document never reaches storage
func (store *Store) FlushIfDirty() error {
	if !store.dirty {
		return nil
	}
	if nil == store.data {
		return nil
	}

	blob, err := Pack(store.data)
	if nil != err {
		store.log.Criticalf("document failed validation before flush: %s", err)
		return err
	}

	err = store.backend.Put(blob)
	if nil != err {
		return err
	}

	store.dirty = false
	return nil
}
