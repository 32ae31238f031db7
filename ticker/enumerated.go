// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ticker

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// ticker enumeration
type Ticker uint64

// possible ticker values
//
// the set is closed: statistics are keyed by these values and the
// persisted document rejects anything outside the range
const (
	Nothing      Ticker = iota // this must be the first value
	ICP          Ticker = iota
	CKBTC        Ticker = iota
	CHAT         Ticker = iota
	SONIC        Ticker = iota
	SNS1         Ticker = iota
	OGY          Ticker = iota
	MOD          Ticker = iota
	GHOST        Ticker = iota
	KINIC        Ticker = iota
	HOT          Ticker = iota
	CAT          Ticker = iota
	maximumValue Ticker = iota // this must be the last value
	First        Ticker = Nothing + 1
	Last         Ticker = maximumValue - 1
	Count        int    = int(Last) // count of tickers
)

// internal conversion
func toString(t Ticker) ([]byte, error) {
	switch t {
	case Nothing:
		return []byte{}, nil
	case ICP:
		return []byte("ICP"), nil
	case CKBTC:
		return []byte("ckBTC"), nil
	case CHAT:
		return []byte("CHAT"), nil
	case SONIC:
		return []byte("SONIC"), nil
	case SNS1:
		return []byte("SNS1"), nil
	case OGY:
		return []byte("OGY"), nil
	case MOD:
		return []byte("MOD"), nil
	case GHOST:
		return []byte("GHOST"), nil
	case KINIC:
		return []byte("KINIC"), nil
	case HOT:
		return []byte("HOT"), nil
	case CAT:
		return []byte("CAT"), nil
	default:
		return []byte{}, fault.ErrInvalidTicker
	}
}

// convert a string to a ticker
func fromString(in string) (Ticker, error) {
	switch strings.ToLower(in) {
	case "":
		return Nothing, nil
	case "icp":
		return ICP, nil
	case "ckbtc":
		return CKBTC, nil
	case "chat":
		return CHAT, nil
	case "sonic":
		return SONIC, nil
	case "sns1":
		return SNS1, nil
	case "ogy":
		return OGY, nil
	case "mod":
		return MOD, nil
	case "ghost":
		return GHOST, nil
	case "kinic":
		return KINIC, nil
	case "hot":
		return HOT, nil
	case "cat":
		return CAT, nil
	default:
		return Nothing, fault.ErrInvalidTicker
	}
}

// convert a ticker to its string symbol
func (t Ticker) String() string {
	s, err := toString(t)
	if nil != err {
		logger.Panicf("invalid ticker enumeration: %d", t)
	}
	return string(s)
}

// show both enum value and symbol, for debugging
func (t Ticker) GoString() string {
	return fmt.Sprintf("<Ticker#%d:%q>", uint64(t), t.String())
}

// valid ticker if in range of First to Last
// Nothing is not considered as valid
func (t Ticker) IsValid() bool {
	return t >= First && t <= Last
}

// convert a valid ticker to a zero based array index
func (t Ticker) Index() int {
	if !t.IsValid() {
		logger.Panicf("ticker.Index: invalid ticker: %d", t)
	}
	return int(t - First) // zero based index
}

// convert the ticker to a number
func (t Ticker) Uint64() uint64 {
	return uint64(t)
}

// convert a number to a ticker
func FromUint64(n uint64) (Ticker, error) {
	if Ticker(n) < maximumValue {
		return Ticker(n), nil
	}
	return Nothing, fault.ErrInvalidTicker
}

// convert a symbol to a ticker
func FromString(symbol string) (Ticker, error) {
	return fromString(symbol)
}
