// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ticker

// convert a ticker into JSON
func (t Ticker) MarshalText() ([]byte, error) {
	return toString(t)
}

// convert ticker string to a ticker enumeration value from JSON
func (t *Ticker) UnmarshalText(s []byte) error {
	parsed, err := fromString(string(s))
	if nil != err {
		return err
	}
	*t = parsed
	return nil
}
