// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// test the class predicates pick the right class and nothing else
func TestErrorClasses(t *testing.T) {
	items := []struct {
		err     error
		invalid bool
		nf      bool
		sec     bool
		inv     bool
		host    bool
		method  bool
		exists  bool
	}{
		{fault.ErrCannotDecodeRequest, true, false, false, false, false, false, false},
		{fault.ErrOriginNotFound, false, true, false, false, false, false, false},
		{fault.ErrProtectedMethod, false, false, true, false, false, false, false},
		{fault.ErrOneSidedLink, false, false, false, true, false, false, false},
		{fault.ErrEntropyUnavailable, false, false, false, false, true, false, false},
		{fault.ErrRpcMethodUnknown, false, false, false, false, false, true, false},
		{fault.ErrLinkAlreadyExists, false, false, false, false, false, false, true},
	}

	for i, item := range items {
		if fault.IsErrInvalid(item.err) != item.invalid {
			t.Errorf("%d: IsErrInvalid: %q", i, item.err)
		}
		if fault.IsErrNotFound(item.err) != item.nf {
			t.Errorf("%d: IsErrNotFound: %q", i, item.err)
		}
		if fault.IsErrSecurity(item.err) != item.sec {
			t.Errorf("%d: IsErrSecurity: %q", i, item.err)
		}
		if fault.IsErrInvariant(item.err) != item.inv {
			t.Errorf("%d: IsErrInvariant: %q", i, item.err)
		}
		if fault.IsErrHost(item.err) != item.host {
			t.Errorf("%d: IsErrHost: %q", i, item.err)
		}
		if fault.IsErrMethod(item.err) != item.method {
			t.Errorf("%d: IsErrMethod: %q", i, item.err)
		}
		if fault.IsErrExists(item.err) != item.exists {
			t.Errorf("%d: IsErrExists: %q", i, item.err)
		}
	}
}
