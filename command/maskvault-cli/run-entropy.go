// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/rpc"
)

func runEntropy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	origin := c.Args().Get(0)
	salt := c.Args().Get(1)
	if "" == origin || "" == salt {
		return fault.ErrMissingParameters
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	// entropy_get is an open method: the daemon scopes the result to
	// the origin the request claims, so the caller picks it here
	reply := rpc.EntropyGetReply{}
	err = client.Call(rpc.MethodEntropyGet, origin,
		rpc.EntropyGetArguments{Salt: []byte(salt)}, &reply)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", hex.EncodeToString(reply.Entropy))
	return nil
}
