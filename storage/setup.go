// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// Backend - whole-document storage
type Backend interface {
	Get() ([]byte, bool, error)
	Put(data []byte) error
	Close() error
}

// keys inside the database
var (
	versionKey  = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}
	documentKey = []byte{0x00, 'S', 'T', 'A', 'T', 'E'}
)

// version of the on-disk layout, not of the document schema
const currentStorageVersion = 0x100

// LevelDB - goleveldb backed document store
type LevelDB struct {
	log *logger.L
	db  *leveldb.DB
}

// Open - open up the database connection
//
// refuses to open a database written by a newer program
func Open(database string) (*LevelDB, error) {

	log := logger.New("storage")

	db, err := leveldb.OpenFile(database+".leveldb", nil)
	if nil != err {
		log.Errorf("open %q failed: %s", database, err)
		return nil, err
	}

	store := &LevelDB{
		log: log,
		db:  db,
	}

	versionValue, err := db.Get(versionKey, nil)
	switch err {
	case nil:
		version := binary.BigEndian.Uint32(versionValue)
		if version > currentStorageVersion {
			log.Criticalf("storage version: 0x%x > current version: 0x%x", version, currentStorageVersion)
			_ = db.Close()
			return nil, fault.ErrStorageVersionDowngrade
		}
	case leveldb.ErrNotFound:
		// fresh database: stamp the version
		buffer := make([]byte, 4)
		binary.BigEndian.PutUint32(buffer, currentStorageVersion)
		err = db.Put(versionKey, buffer, nil)
		if nil != err {
			_ = db.Close()
			return nil, err
		}
	default:
		_ = db.Close()
		return nil, err
	}

	log.Infof("database: %s", database)
	return store, nil
}

// Get - fetch the document, false if none was ever written
func (store *LevelDB) Get() ([]byte, bool, error) {
	data, err := store.db.Get(documentKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	}
	if nil != err {
		store.log.Errorf("get failed: %s", err)
		return nil, false, fault.ErrStorageUnavailable
	}
	return data, true, nil
}

// Put - write the document wholesale
func (store *LevelDB) Put(data []byte) error {
	err := store.db.Put(documentKey, data, nil)
	if nil != err {
		store.log.Errorf("put failed: %s", err)
		return fault.ErrStorageUnavailable
	}
	return nil
}

// Close - close the database
func (store *LevelDB) Close() error {
	return store.db.Close()
}
