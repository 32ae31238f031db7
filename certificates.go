// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/fault"
	"github.com/maskvault-inc/maskvaultd/rpc"
)

// a listener and its startup parameters
type serverChannel struct {
	limit               int
	addresses           []string
	certificateFileName string
	keyFileName         string

	tlsConfiguration *tls.Config
	limiter          *listener.Limiter

	callback listener.Callback
	argument *rpc.ServerArgument
}

// verify that a set of listener parameters are valid
func verifyListen(log *logger.L, name string, server *serverChannel) bool {
	if server.limit < 0 {
		log.Errorf("invalid %s limit: %d", name, server.limit)
		return false
	}

	// listening is disabled
	if 0 == server.limit || 0 == len(server.addresses) {
		server.limit = 0
		return true
	}

	if !fileExists(server.certificateFileName) {
		log.Errorf("certificate: %q does not exist", server.certificateFileName)
		return false
	}

	if !fileExists(server.keyFileName) {
		log.Errorf("private key: %q does not exist", server.keyFileName)
		return false
	}

	// set up TLS
	keyPair, err := tls.LoadX509KeyPair(server.certificateFileName, server.keyFileName)
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return false
	}

	server.tlsConfiguration = &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	server.limiter = listener.NewLimiter(server.limit)

	return true
}

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if fileExists(certificateFileName) {
		return fault.ErrAlreadyInitialised
	}

	if fileExists(privateKeyFileName) {
		return fault.ErrAlreadyInitialised
	}

	org := "maskvaultd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return nil == err && info.Mode().IsRegular()
}
