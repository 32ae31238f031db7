// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/fixtures"
	"github.com/maskvault-inc/maskvaultd/state"
	"github.com/maskvault-inc/maskvaultd/storage/mocks"
)

func TestFlushFailureKeepsDirty(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	backend := mocks.NewMockBackend(ctl)
	backend.EXPECT().Get().Return(nil, false, nil).Times(1)
	backend.EXPECT().Put(gomock.Any()).Return(fault.ErrStorageUnavailable).Times(1)
	backend.EXPECT().Put(gomock.Any()).Return(nil).Times(1)

	store := state.NewStore(backend)

	_, err := store.Load()
	assert.Nil(t, err, "wrong load")
	assert.True(t, store.IsDirty(), "fresh document not dirty")

	// first flush fails and must leave the dirty flag up
	err = store.FlushIfDirty()
	assert.Equal(t, fault.ErrStorageUnavailable, err, "wrong error")
	assert.True(t, store.IsDirty(), "dirty flag lost on failed flush")

	// the retry succeeds
	assert.Nil(t, store.FlushIfDirty(), "wrong flush")
	assert.False(t, store.IsDirty(), "dirty flag kept after flush")
}
