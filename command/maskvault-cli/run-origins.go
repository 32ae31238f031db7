// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/maskvault-inc/maskvaultd/rpc"
)

func runOrigins(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply := rpc.AllOriginDataReply{}
	err = client.Call(rpc.MethodStateGetAllOriginData, m.origin, nil, &reply)
	if nil != err {
		return err
	}

	printJson(m.w, reply.Data)
	return nil
}

func runOrigin(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	url, err := firstArgument(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply := rpc.OriginDataReply{}
	err = client.Call(rpc.MethodStateGetOriginData, m.origin,
		rpc.OriginDataArguments{Origin: url}, &reply)
	if nil != err {
		return err
	}

	printJson(m.w, reply.Data)
	return nil
}

func runAddIdentity(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	url, err := firstArgument(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply := rpc.IdentityAddReply{}
	err = client.Call(rpc.MethodIdentityAdd, m.origin,
		rpc.IdentityAddArguments{ToOrigin: url}, &reply)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runLoginOptions(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	url, err := firstArgument(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply := rpc.LoginOptionsReply{}
	err = client.Call(rpc.MethodIdentityGetLoginOptions, m.origin,
		rpc.LoginOptionsArguments{ForOrigin: url}, &reply)
	if nil != err {
		return err
	}

	printJson(m.w, reply.Options)
	return nil
}
