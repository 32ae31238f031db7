// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/maskvault-inc/maskvaultd/configuration"
)

// setup commands that run instead of the daemon
//
// returns true when a command was handled
func processSetupCommand(program string, arguments []string, theConfiguration *configuration.Configuration) bool {

	command := arguments[0]

	switch command {

	case "gen-cert":
		err := makeSelfSignedCertificate("rpc",
			theConfiguration.ClientRPC.Certificate,
			theConfiguration.ClientRPC.PrivateKey,
			0 != len(arguments[1:]), arguments[1:])
		if nil != err {
			exitwithstatus.Message("%s: certificate generation failed: %s", program, err)
		}
		fmt.Printf("certificate: %s\n", theConfiguration.ClientRPC.Certificate)
		fmt.Printf("private key: %s\n", theConfiguration.ClientRPC.PrivateKey)
		return true

	case "show-config":
		fmt.Printf("data directory: %s\n", theConfiguration.DataDirectory)
		fmt.Printf("vault origin:   %s\n", theConfiguration.VaultOrigin)
		fmt.Printf("auto confirm:   %v\n", theConfiguration.AutoConfirm)
		fmt.Printf("database:       %s\n", theConfiguration.Database)
		fmt.Printf("seed file:      %s\n", theConfiguration.SeedFile)
		fmt.Printf("listen:         %v\n", theConfiguration.ClientRPC.Listen)
		return true

	case "help":
		printHelp(program)
		return true

	default:
		exitwithstatus.Message("%s: unknown command: %q", program, command)
	}
	return false
}
