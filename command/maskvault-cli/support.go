// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/rpc"
)

// connect - dial the daemon and wrap the connection
//
// the daemon normally runs with a self-signed certificate, so
// verification is skipped; the connection stays local
func connect(m *metadata) (*rpc.Client, error) {
	if "" == m.origin {
		return nil, fault.ErrMissingParameters
	}

	conn, err := tls.Dial("tcp", m.connect, &tls.Config{
		InsecureSkipVerify: true,
	})
	if nil != err {
		return nil, err
	}

	return rpc.NewClient(conn), nil
}

// printJson - render a reply for the terminal
func printJson(w io.Writer, v interface{}) {
	blob, err := json.MarshalIndent(v, "", "  ")
	if nil != err {
		fmt.Fprintf(w, "unprintable: %v\n", v)
		return
	}
	fmt.Fprintf(w, "%s\n", blob)
}

func emsg(e io.Writer, format string, arguments ...interface{}) {
	fmt.Fprintf(e, format+"\n", arguments...)
}

// firstArgument - a required positional argument
func firstArgument(c *cli.Context) (string, error) {
	value := c.Args().First()
	if "" == value {
		return "", fault.ErrMissingParameters
	}
	return value, nil
}
