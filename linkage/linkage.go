// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package linkage - per-origin masks and the origin link graph
//
// the link relation is symmetric: for any pair of origins either
// both halves exist or neither does; every mutation here writes both
// halves in the same step and every read cross-checks them, an
// observed mismatch is fatal and never repaired
package linkage

import (
	"sort"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/identity"
	"github.com/maskvault-inc/maskvaultd/state"
)

// Graph - mask and link operations over the vault document
type Graph struct {
	store   *state.Store
	deriver *identity.Deriver
	log     *logger.L
}

// New - create a graph over a store and deriver
func New(store *state.Store, deriver *identity.Deriver) *Graph {
	return &Graph{
		store:   store,
		deriver: deriver,
		log:     logger.New("linkage"),
	}
}

// OriginData - fetch the record for an origin, creating it with a
// freshly derived mask at index zero on first sight
func (graph *Graph) OriginData(origin string) (*state.OriginData, bool, error) {
	data, err := graph.store.Load()
	if nil != err {
		return nil, false, err
	}

	originData, ok := data.OriginData[origin]
	if ok {
		return originData, false, nil
	}

	mask, err := graph.deriver.MakeMask(origin, 0)
	if nil != err {
		return nil, false, err
	}

	originData = state.NewOriginData(mask)
	data.OriginData[origin] = originData
	graph.store.MarkDirty()

	graph.log.Infof("new origin: %s", origin)
	return originData, true, nil
}

// AllOriginData - the whole origin map
//
// borrowed for the duration of one request only
func (graph *Graph) AllOriginData() (map[string]*state.OriginData, error) {
	data, err := graph.store.Load()
	if nil != err {
		return nil, err
	}
	return data.OriginData, nil
}

// AddIdentity - derive a mask at the next free index
func (graph *Graph) AddIdentity(origin string) (*state.Mask, uint64, error) {
	originData, _, err := graph.OriginData(origin)
	if nil != err {
		return nil, 0, err
	}

	index := uint64(len(originData.Masks))
	mask, err := graph.deriver.MakeMask(origin, index)
	if nil != err {
		return nil, 0, err
	}

	originData.Masks[index] = mask
	graph.store.MarkDirty()

	return mask, index, nil
}

// EditPseudonym - rename a mask; the principal never changes
func (graph *Graph) EditPseudonym(origin string, index uint64, newPseudonym string) error {
	data, err := graph.store.Load()
	if nil != err {
		return err
	}

	originData, ok := data.OriginData[origin]
	if !ok {
		return fault.ErrOriginNotFound
	}

	mask, ok := originData.Masks[index]
	if !ok {
		return fault.ErrInvalidIdentityIndex
	}

	mask.Pseudonym = newPseudonym
	graph.store.MarkDirty()
	return nil
}

// LinkExists - true when the pair is linked
//
// reads both halves; a one-sided link is an internal consistency
// fault, not a recoverable condition
func (graph *Graph) LinkExists(from string, to string) (bool, error) {
	data, err := graph.store.Load()
	if nil != err {
		return false, err
	}

	fromHasTo := false
	if fromData, ok := data.OriginData[from]; ok {
		fromHasTo = fromData.LinksTo[to]
	}
	toHasFrom := false
	if toData, ok := data.OriginData[to]; ok {
		toHasFrom = toData.LinksFrom[from]
	}

	if fromHasTo != toHasFrom {
		graph.log.Criticalf("one-sided link: %s -> %s  to: %t  from: %t", from, to, fromHasTo, toHasFrom)
		return false, fault.ErrOneSidedLink
	}

	return fromHasTo, nil
}

// Link - create the pair in one step
func (graph *Graph) Link(from string, to string) error {
	if from == to {
		return fault.ErrLinkToSelf
	}

	exists, err := graph.LinkExists(from, to)
	if nil != err {
		return err
	}
	if exists {
		return fault.ErrLinkAlreadyExists
	}

	fromData, _, err := graph.OriginData(from)
	if nil != err {
		return err
	}
	toData, _, err := graph.OriginData(to)
	if nil != err {
		return err
	}

	// both halves in the same step
	fromData.LinksTo[to] = true
	toData.LinksFrom[from] = true
	graph.store.MarkDirty()

	graph.log.Infof("linked: %s -> %s", from, to)
	return nil
}

// Unlink - remove the pair in one step
func (graph *Graph) Unlink(from string, to string) error {
	exists, err := graph.LinkExists(from, to)
	if nil != err {
		return err
	}
	if !exists {
		return fault.ErrLinkDoesNotExist
	}

	data, err := graph.store.Load()
	if nil != err {
		return err
	}

	delete(data.OriginData[from].LinksTo, to)
	delete(data.OriginData[to].LinksFrom, from)
	graph.store.MarkDirty()

	graph.log.Infof("unlinked: %s -> %s", from, to)
	return nil
}

// UnlinkAll - remove every outgoing link of an origin
//
// returns the origins that were unlinked so the caller can invalidate
// sessions and count the removals
func (graph *Graph) UnlinkAll(from string) ([]string, error) {
	data, err := graph.store.Load()
	if nil != err {
		return nil, err
	}

	fromData, ok := data.OriginData[from]
	if !ok {
		return []string{}, nil
	}

	unlinked := make([]string, 0, len(fromData.LinksTo))
	for to := range fromData.LinksTo {
		unlinked = append(unlinked, to)
	}
	sort.Strings(unlinked)

	for _, to := range unlinked {
		toData, ok := data.OriginData[to]
		if !ok || !toData.LinksFrom[from] {
			graph.log.Criticalf("one-sided link during unlink all: %s -> %s", from, to)
			return nil, fault.ErrOneSidedLink
		}
		delete(toData.LinksFrom, from)
	}

	fromData.LinksTo = make(map[string]bool)
	graph.store.MarkDirty()

	return unlinked, nil
}
