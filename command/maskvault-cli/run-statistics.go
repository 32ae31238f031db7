// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/maskvault-inc/maskvaultd/rpc"
)

func runStatistics(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply := rpc.StatisticsGetReply{}
	err = client.Call(rpc.MethodStatisticsGet, m.origin, nil, &reply)
	if nil != err {
		return err
	}

	printJson(m.w, reply.Statistics)
	return nil
}

func runResetStatistics(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply := rpc.StatisticsResetReply{}
	err = client.Call(rpc.MethodStatisticsReset, m.origin, nil, &reply)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
