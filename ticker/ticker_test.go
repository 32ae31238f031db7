// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ticker_test

import (
	"encoding/json"
	"testing"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/ticker"
)

type tickerTest struct {
	str string
	t   ticker.Ticker
	j   string
}

var valid = []tickerTest{
	{"", ticker.Nothing, `""`},
	{"icp", ticker.ICP, `"ICP"`},
	{"ICP", ticker.ICP, `"ICP"`},
	{"ckBTC", ticker.CKBTC, `"ckBTC"`},
	{"CKBTC", ticker.CKBTC, `"ckBTC"`},
	{"chat", ticker.CHAT, `"CHAT"`},
	{"sonic", ticker.SONIC, `"SONIC"`},
	{"sns1", ticker.SNS1, `"SNS1"`},
	{"ogy", ticker.OGY, `"OGY"`},
	{"mod", ticker.MOD, `"MOD"`},
	{"ghost", ticker.GHOST, `"GHOST"`},
	{"kinic", ticker.KINIC, `"KINIC"`},
	{"hot", ticker.HOT, `"HOT"`},
	{"cat", ticker.CAT, `"CAT"`},
}

var invalid = []string{
	"389749837598",
	"null",
	"a b",
	"BTC",
}

func TestValidString(t *testing.T) {
	for index, test := range valid {

		tk, err := ticker.FromString(test.str)
		if nil != err {
			t.Fatalf("%d: string to ticker error: %s", index, err)
		}

		if tk != test.t {
			t.Errorf("%d: %q converted to: %#v  expected: %#v", index, test.str, tk, test.t)
		}

		buffer, err := json.Marshal(tk)
		if nil != err {
			t.Fatalf("%d: ticker to json error: %s", index, err)
		}

		if test.j != string(buffer) {
			t.Errorf("%d: %#v converted to json: %s  expected: %s", index, tk, buffer, test.j)
		}
	}
}

func TestInvalidString(t *testing.T) {
	for index, str := range invalid {
		_, err := ticker.FromString(str)
		if fault.ErrInvalidTicker != err {
			t.Errorf("%d: %q returned unexpected error: %v", index, str, err)
		}
	}
}

func TestIndex(t *testing.T) {
	seen := make(map[int]bool)
	for tk := ticker.First; tk <= ticker.Last; tk += 1 {
		if !tk.IsValid() {
			t.Fatalf("ticker %d is not valid", tk)
		}
		i := tk.Index()
		if i < 0 || i >= ticker.Count {
			t.Fatalf("index out of range: %d", i)
		}
		if seen[i] {
			t.Fatalf("duplicate index: %d", i)
		}
		seen[i] = true
	}
	if ticker.Count != len(seen) {
		t.Fatalf("expected %d tickers, have: %d", ticker.Count, len(seen))
	}
}

func TestUint64RoundTrip(t *testing.T) {
	for tk := ticker.First; tk <= ticker.Last; tk += 1 {
		back, err := ticker.FromUint64(tk.Uint64())
		if nil != err {
			t.Fatalf("uint64 to ticker error: %s", err)
		}
		if back != tk {
			t.Fatalf("round trip failed: %#v -> %#v", tk, back)
		}
	}

	_, err := ticker.FromUint64(uint64(ticker.Last) + 1)
	if fault.ErrInvalidTicker != err {
		t.Errorf("out of range returned unexpected error: %v", err)
	}
}
