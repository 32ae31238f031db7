// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - guarded vault request handling
//
// every request arrives as a CBOR envelope carrying a method name,
// the origin it was issued from and method parameters; a guard table
// classifies every method as protected or open before any handler
// runs
//
// protected methods are only usable from the vault's own companion
// origin, open methods may be called by any origin on its own behalf
//
// the dispatcher serialises requests: at most one request mutates the
// document at a time, and a successful request flushes the document
// when it changed
package rpc
