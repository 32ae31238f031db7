// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - vault daemon settings
//
// the configuration file is a Lua script; relative file and
// directory entries are resolved against the directory holding the
// configuration file
package configuration

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/fault"
)

// defaults, relative entries resolve against the data directory
const (
	defaultSeedFile        = "vault.seed"
	defaultDatabaseFile    = "vault.leveldb"
	defaultCertificateFile = "rpc.crt"
	defaultKeyFile         = "rpc.key"
	defaultLogDirectory    = "log"
	defaultLogFile         = "maskvaultd.log"
	defaultLogCount        = 10
	defaultLogSize         = 1024 * 1024
	defaultRPCClients      = 10
	defaultFlushSeconds    = 10
	defaultRolloverSeconds = 24 * 60 * 60
)

// RPCType - client listener settings
type RPCType struct {
	MaximumConnections int      `gluamapper:"maximum_connections"`
	Listen             []string `gluamapper:"listen"`
	Certificate        string   `gluamapper:"certificate"`
	PrivateKey         string   `gluamapper:"private_key"`
}

// Configuration - everything the daemon reads at startup
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory"`
	PidFile       string `gluamapper:"pidfile"`

	// the companion origin allowed to call protected methods
	VaultOrigin string `gluamapper:"vault_origin"`

	// answer consent questions without an operator
	AutoConfirm bool `gluamapper:"auto_confirm"`

	SeedFile string `gluamapper:"seed_file"`
	Database string `gluamapper:"database"`

	// seconds between periodic flushes and statistics rollovers
	FlushInterval      int `gluamapper:"flush_interval"`
	StatisticsInterval int `gluamapper:"statistics_interval"`

	ClientRPC RPCType              `gluamapper:"client_rpc"`
	Logging   logger.Configuration `gluamapper:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: dataDirectory,
		PidFile:       "", // no PidFile by default

		SeedFile: defaultSeedFile,
		Database: defaultDatabaseFile,

		FlushInterval:      defaultFlushSeconds,
		StatisticsInterval: defaultRolloverSeconds,

		ClientRPC: RPCType{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	if "" == options.VaultOrigin {
		return nil, fault.ErrMissingParameters
	}
	if options.FlushInterval <= 0 || options.StatisticsInterval <= 0 {
		return nil, fault.ErrMissingParameters
	}

	// resolve relative paths
	options.DataDirectory = ensureAbsolute(dataDirectory, options.DataDirectory)
	options.SeedFile = ensureAbsolute(options.DataDirectory, options.SeedFile)
	options.Database = ensureAbsolute(options.DataDirectory, options.Database)
	options.ClientRPC.Certificate = ensureAbsolute(options.DataDirectory, options.ClientRPC.Certificate)
	options.ClientRPC.PrivateKey = ensureAbsolute(options.DataDirectory, options.ClientRPC.PrivateKey)
	options.Logging.Directory = ensureAbsolute(options.DataDirectory, options.Logging.Directory)
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	return options, nil
}

// ensureAbsolute - fix up a path so it is relative to a base directory
func ensureAbsolute(directory string, filePath string) string {
	if filepath.IsAbs(filePath) {
		return filepath.Clean(filePath)
	}
	return filepath.Join(directory, filePath)
}
