// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"crypto/tls"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/ledger"
	"github.com/bitmark-inc/supplychaind/rpc/certificate"
	"github.com/bitmark-inc/supplychaind/rpc/handler"
	"github.com/bitmark-inc/supplychaind/rpc/listeners"
	"github.com/bitmark-inc/supplychaind/rpc/server"
)

const (
	tlsName   = "client_rpc"
	httpsName = "http_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// stops searches started by clients
	ctx    context.Context
	cancel context.CancelFunc

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connections shared by both listeners
var connectionCountRPC counter.Counter

// Initialise - start the RPC and explorer listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string, operations ledger.Operations) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, certificateFingerprint, err := loadCertificate(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	globalData.ctx, globalData.cancel = context.WithCancel(context.Background())

	// servers
	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(globalData.ctx, log, version, &connectionCountRPC, operations),
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		globalData.cancel()
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		_ = rpcListener.Close()
		globalData.cancel()
		return err
	}
	globalData.listeners = append(globalData.listeners, rpcListener)

	httpsListener, err := initialiseHTTPS(globalData.ctx, log, httpsConfiguration, version, operations)
	if nil != err {
		closeAll()
		return err
	}
	if nil != httpsListener {
		globalData.listeners = append(globalData.listeners, httpsListener)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeAll()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func closeAll() {
	if nil != globalData.cancel {
		globalData.cancel()
	}
	for _, l := range globalData.listeners {
		if err := l.Close(); nil != err {
			globalData.log.Errorf("close listener error: %s", err)
		}
	}
	globalData.listeners = nil
}

// explorer listener, nil when no listen address is configured
func initialiseHTTPS(ctx context.Context, log *logger.L, configuration *listeners.HTTPSConfiguration, version string, operations ledger.Operations) (listeners.Listener, error) {

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil, nil
	}

	tlsConfiguration, fingerprint, err := loadCertificate(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}
	if nil != tlsConfiguration {
		log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, fingerprint)
	}

	s := server.Create(ctx, log, version, &connectionCountRPC, operations)
	hdlr := handler.New(ctx, log, s, operations, time.Now(), version, configuration.MaximumConnections)

	l, err := listeners.NewHTTPS(configuration, log, tlsConfiguration, hdlr)
	if nil != err || nil == l {
		return nil, err
	}

	if err := l.Serve(); nil != err {
		_ = l.Close()
		return nil, err
	}
	return l, nil
}

// no certificate configured selects a plain listener
func loadCertificate(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	if "" == certificateFileName && "" == keyFileName {
		return nil, [32]byte{}, nil
	}
	if "" == certificateFileName || "" == keyFileName {
		log.Errorf("%s: certificate and private_key must both be set", name)
		return nil, [32]byte{}, fault.ErrMissingParameters
	}
	return certificate.Load(log, name, certificateFileName, keyFileName)
}
