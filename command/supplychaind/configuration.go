// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/configuration"
	"github.com/bitmark-inc/supplychaind/difficulty"
	"github.com/bitmark-inc/supplychaind/mine"
	"github.com/bitmark-inc/supplychaind/rpc/listeners"
	"github.com/bitmark-inc/supplychaind/storage"
	"github.com/bitmark-inc/supplychaind/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultStoreType     = storage.TypeFile
	defaultStoreFile     = "blockchain.dat"
	defaultStoreDatabase = "blockchain.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "supplychaind.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// StoreType - where the chain is kept
type StoreType struct {
	Type string `gluamapper:"type" json:"type"`
	Name string `gluamapper:"name" json:"name"`
}

// MiningType - proof of work settings
//
// timeout is a Go duration string, empty for no limit
type MiningType struct {
	Algorithm     string `gluamapper:"algorithm" json:"algorithm"`
	Difficulty    string `gluamapper:"difficulty" json:"difficulty"`
	Timeout       string `gluamapper:"timeout" json:"timeout"`
	CheckInterval uint64 `gluamapper:"check_interval" json:"check_interval"`
}

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory string     `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string     `gluamapper:"pidfile" json:"pidfile"`
	Store         StoreType  `gluamapper:"store" json:"store"`
	Mining        MiningType `gluamapper:"mining" json:"mining"`
	Watch         bool       `gluamapper:"watch" json:"watch"`

	ClientRPC listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC  listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Logging   logger.Configuration         `gluamapper:"logging" json:"logging"`

	// computed from Mining.Timeout
	timeout time.Duration
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Store: StoreType{
			Type: defaultStoreType,
		},

		Mining: MiningType{
			Algorithm:     blockdigest.DefaultAlg,
			Difficulty:    difficulty.Default,
			CheckInterval: mine.DefaultCheckInterval,
		},

		Watch: true,

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share config with normal RPC
		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// check the mining settings before anything is started
	if _, err := blockdigest.New(options.Mining.Algorithm); nil != err {
		return nil, fmt.Errorf("Mining: algorithm: %q  error: %s", options.Mining.Algorithm, err)
	}
	if _, err := difficulty.New(options.Mining.Difficulty); nil != err {
		return nil, fmt.Errorf("Mining: difficulty: %q  error: %s", options.Mining.Difficulty, err)
	}
	if "" != options.Mining.Timeout {
		options.timeout, err = time.ParseDuration(options.Mining.Timeout)
		if nil != err || options.timeout < 0 {
			return nil, fmt.Errorf("Mining: timeout: %q is not a valid duration", options.Mining.Timeout)
		}
	}

	// store name defaults by type
	options.Store.Type = strings.ToLower(options.Store.Type)
	if "" == options.Store.Name {
		switch options.Store.Type {
		case storage.TypeLevelDB:
			options.Store.Name = defaultStoreDatabase
		default:
			options.Store.Name = defaultStoreFile
		}
	}
	if _, ok := map[string]bool{storage.TypeFile: true, storage.TypeLevelDB: true}[options.Store.Type]; !ok {
		return nil, fmt.Errorf("Store: type: %q is not supported", options.Store.Type)
	}

	// an empty certificate pair selects plain listeners
	for _, pair := range [][2]*string{
		{&options.ClientRPC.Certificate, &options.ClientRPC.PrivateKey},
		{&options.HttpsRPC.Certificate, &options.HttpsRPC.PrivateKey},
	} {
		for _, f := range pair {
			if "" != *f {
				*f = util.EnsureAbsolute(options.DataDirectory, *f)
			}
		}
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// log file must be a plain name inside the log directory
	if !util.IsPlainName(options.Logging.File) {
		return nil, fmt.Errorf("Files: %q is not plain name", options.Logging.File)
	}

	options.Store.Name = util.EnsureAbsolute(options.DataDirectory, options.Store.Name)

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
