// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - HTTP explorer endpoints and the HTTP to JSON RPC
// bridge
package handler

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/ledger"
	rpcledger "github.com/bitmark-inc/supplychaind/rpc/ledger"
)

// limit on the body of a POST request
const maximumBodySize = 1 << 16

// Handler - the HTTP endpoints served by the explorer listener
type Handler interface {
	Blocks(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	AddTransaction(w http.ResponseWriter, r *http.Request)
	MineBlock(w http.ResponseWriter, r *http.Request)
	RPC(w http.ResponseWriter, r *http.Request)
	Details(w http.ResponseWriter, r *http.Request)
	Root(w http.ResponseWriter, r *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

// InternalConnection - type to allow rpc system to interface to http request
type InternalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *InternalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *InternalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *InternalConnection) Close() error {
	return nil
}

// the argument passed to the handlers
type httpHandler struct {
	ctx                context.Context
	log                *logger.L
	server             *rpc.Server
	operations         ledger.Operations
	start              time.Time
	version            string
	allow              map[string][]*net.IPNet
	count              counter.Counter
	maximumConnections uint64
}

// New - create the explorer handler, ctx is done at shutdown
func New(
	ctx context.Context,
	log *logger.L,
	server *rpc.Server,
	operations ledger.Operations,
	start time.Time,
	version string,
	maximumConnections uint64,
) Handler {
	return &httpHandler{
		ctx:                ctx,
		log:                log,
		server:             server,
		operations:         operations,
		start:              start,
		version:            version,
		allow:              make(map[string][]*net.IPNet),
		maximumConnections: maximumConnections,
	}
}

// SetAllow - replace the access control lists, keyed by endpoint name
func (s *httpHandler) SetAllow(allow map[string][]*net.IPNet) {
	s.allow = allow
}

// Root - this matches anything not matched and returns error
func (s *httpHandler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// Blocks - GET all blocks, head first
func (s *httpHandler) Blocks(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !s.enter(w) {
		return
	}
	defer s.count.Decrement()

	sendReply(w, http.StatusOK, s.operations.ListBlocks())
}

// Validate - GET the result of a full chain check, an invalid chain
// is a bad request
func (s *httpHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !s.enter(w) {
		return
	}
	defer s.count.Decrement()

	reply, err := rpcledger.Report(s.operations.Validate())
	if nil != err {
		s.log.Errorf("validate error: %s", err)
		sendInternalServerError(w)
		return
	}
	if !reply.Valid {
		s.log.Warnf("chain invalid at block: %d  error: %s", reply.Number, reply.Error)
		sendReply(w, http.StatusBadRequest, reply)
		return
	}
	sendReply(w, http.StatusOK, reply)
}

// AddTransaction - POST a transaction into the open block
//
// body: {"item_id":N,"description":"...","signature":"..."}
func (s *httpHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !s.allowed("add_transaction", r) {
		sendForbidden(w)
		return
	}
	if !s.enter(w) {
		return
	}
	defer s.count.Decrement()

	var arguments rpcledger.StageArguments
	err := json.NewDecoder(io.LimitReader(r.Body, maximumBodySize)).Decode(&arguments)
	if nil != err {
		sendError(w, "invalid transaction format", http.StatusBadRequest)
		return
	}

	err = s.operations.StageTransaction(arguments.ItemId, arguments.Description, arguments.Signature)
	if nil != err {
		s.sendLedgerError(w, err)
		return
	}
	sendReply(w, http.StatusOK, message{Message: "transaction added"})
}

// MineBlock - POST to seal the open block
//
// body (optional): {"difficulty":"000"}
func (s *httpHandler) MineBlock(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !s.allowed("mine_block", r) {
		sendForbidden(w)
		return
	}
	if !s.enter(w) {
		return
	}
	defer s.count.Decrement()

	var arguments rpcledger.MineArguments
	err := json.NewDecoder(io.LimitReader(r.Body, maximumBodySize)).Decode(&arguments)
	if nil != err && io.EOF != err {
		sendError(w, "invalid mining request", http.StatusBadRequest)
		return
	}

	ctx, cancel := rpcledger.MineContext(s.ctx, r.Context(), rpcledger.MineTimeout)
	defer cancel()

	summary, err := s.operations.MineNextBlock(ctx, arguments.Difficulty)
	if nil != err && summary.Sealed {
		s.log.Errorf("mined block: %d  hash: %s  persist error: %s", summary.Number, summary.Digest, err)
		sendReply(w, http.StatusInternalServerError, unsavedBlock{
			Code:  http.StatusInternalServerError,
			Error: err.Error(),
			Block: summary,
		})
		return
	}
	if nil != err {
		s.sendLedgerError(w, err)
		return
	}
	sendReply(w, http.StatusOK, rpcledger.MineReply{Block: summary})
}

// a block sealed in memory that could not be written
type unsavedBlock struct {
	Code  int            `json:"code"`
	Error string         `json:"error"`
	Block ledger.Summary `json:"block"`
}

// RPC - performs a call to any normal RPC
func (s *httpHandler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !s.allowed("rpc", r) {
		sendForbidden(w)
		return
	}
	if !s.enter(w) {
		return
	}
	defer s.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&InternalConnection{in: io.LimitReader(r.Body, maximumBodySize), out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	err := s.server.ServeRequest(serverCodec)
	if nil != err {
		s.log.Debugf("rpc request error: %s", err)
	}
}

// Details - GET node details, restricted by the "details" allow list
func (s *httpHandler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !s.allowed("details", r) {
		sendForbidden(w)
		return
	}
	if !s.enter(w) {
		return
	}
	defer s.count.Decrement()

	type theReply struct {
		Version     string      `json:"version"`
		Uptime      string      `json:"uptime"`
		Connections uint64      `json:"connections"`
		Ledger      ledger.Info `json:"ledger"`
	}

	reply := theReply{
		Version:     s.version,
		Uptime:      time.Since(s.start).String(),
		Connections: s.count.Uint64(),
		Ledger:      s.operations.Info(),
	}
	sendReply(w, http.StatusOK, reply)
}

// check the connection limit, the caller must decrement on success
func (s *httpHandler) enter(w http.ResponseWriter) bool {
	if s.count.Increment() > s.maximumConnections {
		s.count.Decrement()
		sendTooManyRequests(w)
		return false
	}
	return true
}

// an endpoint without an allow list is open to all
func (s *httpHandler) allowed(name string, r *http.Request) bool {
	set, ok := s.allow[name]
	if !ok {
		return true
	}

	host := r.RemoteAddr
	last := strings.LastIndex(host, ":")
	if last >= 0 {
		host = host[:last]
	}
	ip := net.ParseIP(strings.Trim(host, "[]"))
	if nil != ip {
		for _, cidr := range set {
			if cidr.Contains(ip) {
				return true
			}
		}
	}
	s.log.Warnf("Deny access: %q", r.RemoteAddr)
	return false
}

// ledger rejections are client errors, anything else is internal
func (s *httpHandler) sendLedgerError(w http.ResponseWriter, err error) {
	switch {
	case fault.IsErrValidation(err), fault.IsErrNotFound(err):
		sendError(w, err.Error(), http.StatusBadRequest)
	case fault.IsErrProcess(err):
		sendError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		s.log.Errorf("ledger error: %s", err)
		sendInternalServerError(w)
	}
}

type message struct {
	Message string `json:"message"`
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, code int, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
