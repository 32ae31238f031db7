// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

// ConfirmRequest - a consent question put to the device owner
type ConfirmRequest struct {
	Method  string
	Origin  string
	Details []string
}

// Confirmer - decides consent questions
//
// implementations block until an answer is available; a decline is a
// valid answer, not an error
type Confirmer interface {
	Confirm(request ConfirmRequest) (bool, error)
}

// AutoConfirmer - fixed-answer confirmer for unattended operation
type AutoConfirmer struct {
	Allow bool
}

// Confirm - answer every question the same way
func (confirmer AutoConfirmer) Confirm(request ConfirmRequest) (bool, error) {
	return confirmer.Allow, nil
}
