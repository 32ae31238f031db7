// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linkage

import (
	"sort"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/state"
)

// LoginOption - masks a user may log in to an origin with
type LoginOption struct {
	Origin string       `cbor:"origin"`
	Masks  []state.Mask `cbor:"masks"`
}

// SetSession - record a login
//
// the identity index must name an existing mask of the deriviation
// origin; a login through a link uses the linked origin's masks
func (graph *Graph) SetSession(origin string, deriviationOrigin string, identityID uint64) error {

	if origin != deriviationOrigin {
		exists, err := graph.LinkExists(deriviationOrigin, origin)
		if nil != err {
			return err
		}
		if !exists {
			return fault.ErrLinkDoesNotExist
		}
	}

	deriviationData, _, err := graph.OriginData(deriviationOrigin)
	if nil != err {
		return err
	}
	if _, ok := deriviationData.Masks[identityID]; !ok {
		return fault.ErrInvalidIdentityIndex
	}

	originData, _, err := graph.OriginData(origin)
	if nil != err {
		return err
	}

	originData.CurrentSession = &state.Session{
		DeriviationOrigin: deriviationOrigin,
		IdentityID:        identityID,
	}
	graph.store.MarkDirty()

	graph.log.Infof("session started: %s as %s/%d", origin, deriviationOrigin, identityID)
	return nil
}

// ClearSession - drop a session, false when none was active
func (graph *Graph) ClearSession(origin string) (bool, error) {
	data, err := graph.store.Load()
	if nil != err {
		return false, err
	}

	originData, ok := data.OriginData[origin]
	if !ok || nil == originData.CurrentSession {
		return false, nil
	}

	originData.CurrentSession = nil
	graph.store.MarkDirty()

	graph.log.Infof("session stopped: %s", origin)
	return true, nil
}

// ClearSessionsDerivedFrom - drop every session that borrowed the
// given origin's identities, returning the affected origins
//
// used after unlinking so a revoked link cannot leave a live session
func (graph *Graph) ClearSessionsDerivedFrom(deriviationOrigin string, origins []string) ([]string, error) {
	data, err := graph.store.Load()
	if nil != err {
		return nil, err
	}

	cleared := []string{}
	for _, origin := range origins {
		originData, ok := data.OriginData[origin]
		if !ok || nil == originData.CurrentSession {
			continue
		}
		if deriviationOrigin != originData.CurrentSession.DeriviationOrigin {
			continue
		}
		originData.CurrentSession = nil
		cleared = append(cleared, origin)
	}

	if 0 != len(cleared) {
		graph.store.MarkDirty()
	}
	return cleared, nil
}

// LoginOptions - every mask usable to log in to an origin
//
// the origin's own masks come first, then masks of each origin that
// linked to it, in stable order
func (graph *Graph) LoginOptions(origin string) ([]LoginOption, error) {
	originData, _, err := graph.OriginData(origin)
	if nil != err {
		return nil, err
	}

	providers := make([]string, 0, 1+len(originData.LinksFrom))
	providers = append(providers, origin)

	linked := make([]string, 0, len(originData.LinksFrom))
	for from := range originData.LinksFrom {
		linked = append(linked, from)
	}
	sort.Strings(linked)
	providers = append(providers, linked...)

	data, err := graph.store.Load()
	if nil != err {
		return nil, err
	}

	options := make([]LoginOption, 0, len(providers))
	for _, provider := range providers {
		providerData, ok := data.OriginData[provider]
		if !ok {
			graph.log.Criticalf("linked origin has no data: %s", provider)
			return nil, fault.ErrOneSidedLink
		}

		masks := make([]state.Mask, len(providerData.Masks))
		for i := uint64(0); i < uint64(len(providerData.Masks)); i += 1 {
			masks[i] = *providerData.Masks[i]
		}
		options = append(options, LoginOption{
			Origin: provider,
			Masks:  masks,
		})
	}

	return options, nil
}
