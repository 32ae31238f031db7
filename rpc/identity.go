// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/maskvault-inc/maskvaultd/account"
	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/identity"
	"github.com/maskvault-inc/maskvaultd/linkage"
	"github.com/maskvault-inc/maskvaultd/state"
	"github.com/maskvault-inc/maskvaultd/stats"
)

// Identity - mask, link and session operations
type Identity struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Graph     *linkage.Graph
	Deriver   *identity.Deriver
	Stats     *stats.Aggregator
	Confirmer Confirmer
}

// IdentityAddArguments - arguments to mint a mask
type IdentityAddArguments struct {
	ToOrigin string `cbor:"toOrigin"`
}

// IdentityAddReply - the minted mask and its index
type IdentityAddReply struct {
	Mask  *state.Mask `cbor:"mask"`
	Index uint64      `cbor:"index"`
}

// Add - mint the next mask for an origin
func (handler *Identity) Add(arguments *IdentityAddArguments, reply *IdentityAddReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.ToOrigin {
		return fault.ErrMissingParameters
	}

	mask, index, err := handler.Graph.AddIdentity(arguments.ToOrigin)
	if nil != err {
		return err
	}
	if err := handler.Stats.Increment(stats.MasksCreated); nil != err {
		return err
	}

	reply.Mask = mask
	reply.Index = index
	return nil
}

// IdentityLoginArguments - arguments to start a session
//
// an empty linked origin means logging in with the target origin's
// own masks
type IdentityLoginArguments struct {
	ToOrigin         string `cbor:"toOrigin"`
	WithLinkedOrigin string `cbor:"withLinkedOrigin,omitempty"`
	WithIdentityID   uint64 `cbor:"withIdentityId"`
}

// IdentityLoginReply - the logged-in principal and its session proof
type IdentityLoginReply struct {
	Principal string            `cbor:"principal"`
	Proof     account.Signature `cbor:"proof"`
}

// Login - start a session for an origin
//
// the proof is the target origin signed by the chosen mask key, so
// the companion can show which key answered without storing it
func (handler *Identity) Login(arguments *IdentityLoginArguments, reply *IdentityLoginReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.ToOrigin {
		return fault.ErrMissingParameters
	}

	deriviationOrigin := arguments.WithLinkedOrigin
	if "" == deriviationOrigin {
		deriviationOrigin = arguments.ToOrigin
	}

	err := handler.Graph.SetSession(arguments.ToOrigin, deriviationOrigin, arguments.WithIdentityID)
	if nil != err {
		return err
	}

	privateKey, err := handler.Deriver.Derive(identity.ScopeOrigin, deriviationOrigin, arguments.WithIdentityID)
	if nil != err {
		return err
	}
	if err := handler.Stats.Increment(stats.SignaturesProduced); nil != err {
		return err
	}

	reply.Principal = privateKey.Account().String()
	reply.Proof = privateKey.Sign([]byte(arguments.ToOrigin))
	return nil
}

// LoginOptionsArguments - arguments to list login choices
type LoginOptionsArguments struct {
	ForOrigin string `cbor:"forOrigin"`
}

// LoginOptionsReply - login choices in stable order
type LoginOptionsReply struct {
	Options []linkage.LoginOption `cbor:"options"`
}

// GetLoginOptions - every mask usable to log in to an origin
func (handler *Identity) GetLoginOptions(arguments *LoginOptionsArguments, reply *LoginOptionsReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.ForOrigin {
		return fault.ErrMissingParameters
	}

	options, err := handler.Graph.LoginOptions(arguments.ForOrigin)
	if nil != err {
		return err
	}

	reply.Options = options
	return nil
}

// UnlinkOneArguments - arguments to drop a single link
type UnlinkOneArguments struct {
	Origin     string `cbor:"origin"`
	WithOrigin string `cbor:"withOrigin"`
}

// UnlinkOneReply - sessions that were force-closed by the unlink
type UnlinkOneReply struct {
	StoppedSessions []string `cbor:"stoppedSessions"`
}

// UnlinkOne - drop one link and any session riding on it
func (handler *Identity) UnlinkOne(arguments *UnlinkOneArguments, reply *UnlinkOneReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.Origin || "" == arguments.WithOrigin {
		return fault.ErrMissingParameters
	}

	err := handler.Graph.Unlink(arguments.Origin, arguments.WithOrigin)
	if nil != err {
		return err
	}

	stopped, err := handler.stopDerivedSessions(arguments.Origin, arguments.WithOrigin)
	if nil != err {
		return err
	}
	if err := handler.Stats.Increment(stats.OriginsUnlinked); nil != err {
		return err
	}

	reply.StoppedSessions = stopped
	return nil
}

// UnlinkAllArguments - arguments to drop every link of an origin
type UnlinkAllArguments struct {
	Origin string `cbor:"origin"`
}

// UnlinkAllReply - the origins that were unlinked, sorted
type UnlinkAllReply struct {
	Unlinked        []string `cbor:"unlinked"`
	StoppedSessions []string `cbor:"stoppedSessions"`
}

// UnlinkAll - drop every link an origin provides masks over
func (handler *Identity) UnlinkAll(arguments *UnlinkAllArguments, reply *UnlinkAllReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.Origin {
		return fault.ErrMissingParameters
	}

	unlinked, err := handler.Graph.UnlinkAll(arguments.Origin)
	if nil != err {
		return err
	}

	stopped, err := handler.Graph.ClearSessionsDerivedFrom(arguments.Origin, unlinked)
	if nil != err {
		return err
	}

	for range unlinked {
		if err := handler.Stats.Increment(stats.OriginsUnlinked); nil != err {
			return err
		}
	}

	reply.Unlinked = unlinked
	reply.StoppedSessions = stopped
	return nil
}

// EditPseudonymArguments - arguments to rename a mask
type EditPseudonymArguments struct {
	Origin       string `cbor:"origin"`
	IdentityID   uint64 `cbor:"identityId"`
	NewPseudonym string `cbor:"newPseudonym"`
}

// EditPseudonymReply - rename result
type EditPseudonymReply struct {
	Done bool `cbor:"done"`
}

// EditPseudonym - overwrite a mask's display name
func (handler *Identity) EditPseudonym(arguments *EditPseudonymArguments, reply *EditPseudonymReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.Origin || "" == arguments.NewPseudonym {
		return fault.ErrMissingParameters
	}

	err := handler.Graph.EditPseudonym(arguments.Origin, arguments.IdentityID, arguments.NewPseudonym)
	if nil != err {
		return err
	}

	reply.Done = true
	return nil
}

// StopSessionArguments - arguments to end a session
type StopSessionArguments struct {
	Origin string `cbor:"origin"`
}

// StopSessionReply - whether a session was actually active
type StopSessionReply struct {
	Stopped bool `cbor:"stopped"`
}

// StopSession - end an origin's session from the companion side
func (handler *Identity) StopSession(arguments *StopSessionArguments, reply *StopSessionReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.Origin {
		return fault.ErrMissingParameters
	}

	stopped, err := handler.Graph.ClearSession(arguments.Origin)
	if nil != err {
		return err
	}

	reply.Stopped = stopped
	return nil
}

// RequestLogoutReply - whether a session was ended
type RequestLogoutReply struct {
	LoggedOut bool `cbor:"loggedOut"`
}

// RequestLogout - an origin asks to end its own session
//
// declined consent leaves the session running and is not an error
func (handler *Identity) RequestLogout(origin string, reply *RequestLogoutReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}

	approved, err := handler.Confirmer.Confirm(ConfirmRequest{
		Method: MethodIdentityRequestLogout,
		Origin: origin,
	})
	if nil != err {
		return err
	}
	if !approved {
		handler.Log.Infof("logout declined: %s", origin)
		reply.LoggedOut = false
		return nil
	}

	stopped, err := handler.Graph.ClearSession(origin)
	if nil != err {
		return err
	}

	reply.LoggedOut = stopped
	return nil
}

// RequestLinkArguments - arguments for an origin-initiated link
type RequestLinkArguments struct {
	WithOrigin string `cbor:"withOrigin"`
}

// RequestLinkReply - whether the link was made
type RequestLinkReply struct {
	Linked bool `cbor:"linked"`
}

// RequestLink - an origin asks to share its masks with another
func (handler *Identity) RequestLink(origin string, arguments *RequestLinkArguments, reply *RequestLinkReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.WithOrigin {
		return fault.ErrMissingParameters
	}

	approved, err := handler.Confirmer.Confirm(ConfirmRequest{
		Method:  MethodIdentityRequestLink,
		Origin:  origin,
		Details: []string{arguments.WithOrigin},
	})
	if nil != err {
		return err
	}
	if !approved {
		handler.Log.Infof("link declined: %s -> %s", origin, arguments.WithOrigin)
		reply.Linked = false
		return nil
	}

	err = handler.Graph.Link(origin, arguments.WithOrigin)
	if nil != err {
		return err
	}
	if err := handler.Stats.Increment(stats.OriginsLinked); nil != err {
		return err
	}

	reply.Linked = true
	return nil
}

// RequestUnlinkArguments - arguments for an origin-initiated unlink
type RequestUnlinkArguments struct {
	WithOrigin string `cbor:"withOrigin"`
}

// RequestUnlinkReply - whether the link was dropped
type RequestUnlinkReply struct {
	Unlinked        bool     `cbor:"unlinked"`
	StoppedSessions []string `cbor:"stoppedSessions"`
}

// RequestUnlink - an origin asks to stop sharing its masks
func (handler *Identity) RequestUnlink(origin string, arguments *RequestUnlinkArguments, reply *RequestUnlinkReply) error {
	if err := rateLimit(handler.Limiter); nil != err {
		return err
	}
	if "" == arguments.WithOrigin {
		return fault.ErrMissingParameters
	}

	approved, err := handler.Confirmer.Confirm(ConfirmRequest{
		Method:  MethodIdentityRequestUnlink,
		Origin:  origin,
		Details: []string{arguments.WithOrigin},
	})
	if nil != err {
		return err
	}
	if !approved {
		handler.Log.Infof("unlink declined: %s -> %s", origin, arguments.WithOrigin)
		reply.Unlinked = false
		return nil
	}

	err = handler.Graph.Unlink(origin, arguments.WithOrigin)
	if nil != err {
		return err
	}

	stopped, err := handler.stopDerivedSessions(origin, arguments.WithOrigin)
	if nil != err {
		return err
	}
	if err := handler.Stats.Increment(stats.OriginsUnlinked); nil != err {
		return err
	}

	reply.Unlinked = true
	reply.StoppedSessions = stopped
	return nil
}

// stopDerivedSessions - after dropping the origin->withOrigin link,
// close any session on either side that borrowed the other's masks
func (handler *Identity) stopDerivedSessions(origin string, withOrigin string) ([]string, error) {
	stopped, err := handler.Graph.ClearSessionsDerivedFrom(origin, []string{withOrigin})
	if nil != err {
		return nil, err
	}
	reverse, err := handler.Graph.ClearSessionsDerivedFrom(withOrigin, []string{origin})
	if nil != err {
		return nil, err
	}
	return append(stopped, reverse...), nil
}
