// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maskvaultd - per-origin identity vault daemon
//
// derives deterministic masked identities and token accounts from a
// device root secret, tracks origin links and sessions, and serves a
// guarded CBOR request interface over TLS
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/assets"
	"github.com/maskvault-inc/maskvaultd/background"
	"github.com/maskvault-inc/maskvaultd/configuration"
	"github.com/maskvault-inc/maskvaultd/entropy"
	"github.com/maskvault-inc/maskvaultd/identity"
	"github.com/maskvault-inc/maskvaultd/linkage"
	"github.com/maskvault-inc/maskvaultd/rpc"
	"github.com/maskvault-inc/maskvaultd/state"
	"github.com/maskvault-inc/maskvaultd/stats"
	"github.com/maskvault-inc/maskvaultd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version: %s\n", program, version)
		return
	}

	if len(options["help"]) > 0 {
		printHelp(program)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: exactly one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	quiet := len(options["quiet"]) > 0

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// setup commands do not need the full daemon
	if len(arguments) > 0 && processSetupCommand(program, arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Infof("vault origin: %s", theConfiguration.VaultOrigin)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// open the vault document storage
	log.Infof("database: %q", theConfiguration.Database)
	backend, err := storage.Open(theConfiguration.Database)
	if nil != err {
		log.Criticalf("storage open error: %s", err)
		exitwithstatus.Message("storage open error: %s", err)
	}
	defer backend.Close()

	store := state.NewStore(backend)
	if _, err := store.Load(); nil != err {
		log.Criticalf("document load error: %s", err)
		exitwithstatus.Message("document load error: %s", err)
	}

	// the device root secret
	host, err := entropy.NewFileHost(theConfiguration.SeedFile)
	if nil != err {
		log.Criticalf("seed file error: %s", err)
		exitwithstatus.Message("seed file error: %s", err)
	}

	source := entropy.New(host)
	deriver := identity.NewDeriver(source)
	graph := linkage.New(store, deriver)
	ledger := assets.New(store, deriver)
	aggregator := stats.New(store)

	if theConfiguration.AutoConfirm {
		log.Warn("auto confirm enabled: consent questions are approved unattended")
	}

	dispatcher, err := rpc.NewDispatcher(rpc.Dependencies{
		VaultOrigin: theConfiguration.VaultOrigin,
		Store:       store,
		Graph:       graph,
		Ledger:      ledger,
		Deriver:     deriver,
		Source:      source,
		Stats:       aggregator,
		Confirmer:   rpc.AutoConfirmer{Allow: theConfiguration.AutoConfirm},
	})
	if nil != err {
		log.Criticalf("dispatcher error: %s", err)
		exitwithstatus.Message("dispatcher error: %s", err)
	}

	// periodic maintenance shares the dispatcher's request lock
	processes := background.Processes{
		state.NewFlusher(store, dispatcher, time.Duration(theConfiguration.FlushInterval)*time.Second),
		stats.NewRollover(aggregator, stats.LogPublisher{Log: logger.New("statistics")}, dispatcher,
			time.Duration(theConfiguration.StatisticsInterval)*time.Second),
	}
	processesHandle := background.Start(processes, nil)
	defer background.Stop(processesHandle)

	// client listener
	rpcLog := logger.New("rpc-server")

	server := &serverChannel{
		limit:               theConfiguration.ClientRPC.MaximumConnections,
		addresses:           theConfiguration.ClientRPC.Listen,
		certificateFileName: theConfiguration.ClientRPC.Certificate,
		keyFileName:         theConfiguration.ClientRPC.PrivateKey,
		callback:            rpc.Callback,
		argument: &rpc.ServerArgument{
			Log:        rpcLog,
			Dispatcher: dispatcher,
		},
	}

	if !verifyListen(log, "rpc", server) {
		log.Critical("invalid rpc listen parameters")
		exitwithstatus.Exit(1)
	}

	if 0 == server.limit {
		log.Critical("no rpc listeners configured")
		exitwithstatus.Exit(1)
	}

	ml, err := listener.NewMultiListener("rpc", server.addresses, server.tlsConfiguration, server.limiter, server.callback)
	if nil != err {
		log.Criticalf("invalid rpc listen addresses: %s", err)
		exitwithstatus.Exit(1)
	}
	ml.Start(server.argument)
	defer ml.Stop()

	log.Infof("listening on: %v", server.addresses)

	// wait for CTRL-C before shutting down to allow manual testing
	if !quiet {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if !quiet {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down...\n")
	}
}

func printHelp(program string) {
	fmt.Printf("usage: %s [--help] [--quiet] [--version] --config-file=FILE [command]\n", program)
	fmt.Printf("\ncommands:\n")
	fmt.Printf("  gen-cert [host...]   create a self-signed certificate and key\n")
	fmt.Printf("  show-config          print the effective configuration\n")
}
