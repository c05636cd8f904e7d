// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/rpc/handler"
)

const (
	httpsLogName     = "http_rpc"
	readTimeout      = 10 * time.Second
	writeTimeout     = 5 * time.Minute // allow for mining
	keepAlivePeriod  = 3 * time.Minute
	shutdownDeadline = 5 * time.Second
)

// HTTPSConfiguration - configuration file data for the explorer
//
// without a certificate the explorer is served as plain HTTP
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	sync.Mutex

	log             *logger.L
	listenIPAndPort []string
	tlsConfig       *tls.Config
	mux             *http.ServeMux
	servers         []*http.Server
}

// Serve - start a server for every listen address
func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for _, listen := range h.listenIPAndPort {
		h.log.Infof("starting server: %s on: %q", httpsLogName, listen)
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}

		ln, err := net.Listen("tcp", listen)
		if err != nil {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}

		s := &http.Server{
			Addr:           listen,
			Handler:        h.mux,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.servers = append(h.servers, s)

		go doServeHTTPS(h.log, s, ln.(*net.TCPListener), h.tlsConfig)
	}

	return nil
}

// Close - shut down all servers
func (h *httpsListener) Close() error {
	h.Lock()
	defer h.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()

	var first error
	for _, s := range h.servers {
		if err := s.Shutdown(ctx); nil != err && nil == first {
			first = err
		}
	}
	h.servers = nil
	return first
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
	return tc, nil
}

func doServeHTTPS(log *logger.L, s *http.Server, ln *net.TCPListener, cfg *tls.Config) {
	var l net.Listener = tcpKeepAliveListener{ln}
	if nil != cfg {
		cfg.NextProtos = []string{"http/1.1"}
		l = tls.NewListener(l, cfg)
	}

	err := s.Serve(l)
	if http.ErrServerClosed != err {
		log.Errorf("%s: %s terminated: %s", httpsLogName, s.Addr, err)
		return
	}
	log.Infof("%s: %s closed", httpsLogName, s.Addr)
}

// NewHTTPS - create the explorer listener, a nil listener is
// returned when no listen address is configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	for _, listen := range configuration.Listen {
		if "" == listen {
			return nil, fault.ErrInvalidIpAddress
		}
	}

	h := httpsListener{
		log:             log,
		listenIPAndPort: configuration.Listen,
		tlsConfig:       tlsConfig,
	}

	// create access control and format strings to match http.Request.RemoteAddr
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set := make([]*net.IPNet, len(addresses))
		local[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
			if nil != err {
				log.Errorf("%s allow: %q  error: %s", httpsLogName, ip, err)
				return nil, err
			}
			set[i] = cidr
		}
	}

	hdlr.SetAllow(local)

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("/blocks", hdlr.Blocks)
	h.mux.HandleFunc("/validate", hdlr.Validate)
	h.mux.HandleFunc("/add_transaction", hdlr.AddTransaction)
	h.mux.HandleFunc("/mine_block", hdlr.MineBlock)
	h.mux.HandleFunc("/rpc", hdlr.RPC)
	h.mux.HandleFunc("/details", hdlr.Details)
	h.mux.HandleFunc("/", hdlr.Root)

	return &h, nil
}
