// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/maskvault-inc/maskvaultd/rpc"
)

func runAssets(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply := rpc.AllAssetDataReply{}
	err = client.Call(rpc.MethodStateGetAllAssetData, m.origin, nil, &reply)
	if nil != err {
		return err
	}

	printJson(m.w, reply.Data)
	return nil
}
