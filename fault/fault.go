// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type HostError GenericError
type InvalidError GenericError
type InvariantError GenericError
type MethodError GenericError
type NotFoundError GenericError
type SecurityError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountIndexOutOfRange   = NotFoundError("account index out of range")
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrAssetNotRegistered       = NotFoundError("asset is not registered")
	ErrCannotDecodeAccount      = InvalidError("cannot decode account")
	ErrCannotDecodeRequest      = InvalidError("cannot decode request")
	ErrChecksumMismatch         = InvalidError("checksum mismatch")
	ErrCorruptState             = InvalidError("state document is corrupt")
	ErrEntropyUnavailable       = HostError("entropy is unavailable")
	ErrInvalidIdentityIndex     = NotFoundError("identity index out of range")
	ErrInvalidKeyLength         = InvalidError("key length is invalid")
	ErrInvalidSaltLength        = InvalidError("salt length is invalid")
	ErrInvalidScope             = InvalidError("derivation scope is invalid")
	ErrInvalidTicker            = InvalidError("ticker symbol is invalid")
	ErrLinkAlreadyExists        = ExistsError("link already exists")
	ErrLinkDoesNotExist         = NotFoundError("link does not exist")
	ErrLinkToSelf               = InvalidError("origin cannot link to itself")
	ErrMissingParameters        = InvalidError("missing parameters")
	ErrNotInitialised           = InvalidError("not initialised")
	ErrNotPublicKey             = InvalidError("not a public key")
	ErrOneSidedLink             = InvariantError("link relation is one-sided")
	ErrOriginNotFound           = NotFoundError("origin has no stored data")
	ErrProtectedMethod          = SecurityError("protected method called from a foreign origin")
	ErrRateLimiting             = InvalidError("too many requests")
	ErrRequestInFlight          = InvariantError("another request is already in flight")
	ErrRpcMethodUnknown         = MethodError("rpc method is unknown")
	ErrSignatureInvalid         = InvalidError("signature is invalid")
	ErrStateVersionMismatch     = InvalidError("state document version mismatch")
	ErrStatisticsPayloadMissing = InvalidError("statistics payload is missing")
	ErrStorageUnavailable       = HostError("storage is unavailable")
	ErrStorageVersionDowngrade  = InvalidError("storage version is newer than this program")
	ErrUnguardedMethod          = InvariantError("method is missing from the guard table")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e HostError) Error() string      { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e InvariantError) Error() string { return string(e) }
func (e MethodError) Error() string    { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e SecurityError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool    { _, ok := e.(ExistsError); return ok }
func IsErrHost(e error) bool      { _, ok := e.(HostError); return ok }
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrInvariant(e error) bool { _, ok := e.(InvariantError); return ok }
func IsErrMethod(e error) bool    { _, ok := e.(MethodError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrSecurity(e error) bool  { _, ok := e.(SecurityError); return ok }
