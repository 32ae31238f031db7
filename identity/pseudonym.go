// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

// word lists for generated pseudonyms
//
// order matters: a pseudonym is picked by indexing with bytes of the
// derived public key, so reordering or removing words changes every
// default pseudonym
var adjectives = []string{
	"Amber", "Bold", "Brave", "Bright", "Calm", "Clever", "Crimson", "Eager",
	"Gentle", "Golden", "Hidden", "Honest", "Humble", "Icy", "Jolly", "Keen",
	"Lucky", "Merry", "Mighty", "Nimble", "Patient", "Proud", "Quick", "Quiet",
	"Rapid", "Shy", "Silent", "Silver", "Smooth", "Swift", "Wild", "Wise",
}

var nouns = []string{
	"Badger", "Bear", "Beaver", "Bison", "Crane", "Deer", "Dolphin", "Eagle",
	"Falcon", "Ferret", "Fox", "Hare", "Hawk", "Heron", "Lynx", "Marten",
	"Mole", "Moose", "Otter", "Owl", "Panda", "Puffin", "Rabbit", "Raven",
	"Salmon", "Seal", "Sparrow", "Stork", "Swan", "Tiger", "Wolf", "Wren",
}

// GeneratePseudonym - human readable label from two key bytes
func GeneratePseudonym(seed1 byte, seed2 byte) string {
	return adjectives[int(seed1)%len(adjectives)] + " " + nouns[int(seed2)%len(nouns)]
}
