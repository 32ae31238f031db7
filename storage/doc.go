// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - persisted document backends
//
// the vault keeps exactly one binary document; a backend stores and
// returns it wholesale, there are no partial writes
package storage
