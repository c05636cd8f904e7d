// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"encoding/hex"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/rpc/certificate"
)

const dialTimeout = 10 * time.Second

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a supplychaind
//
// a non-empty fingerprint is compared with the SHA3-256 of the
// server certificate and the connection refused on mismatch
func NewClient(connect string, useTLS bool, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	if "" == connect {
		return nil, fault.ErrMissingParameters
	}

	if !useTLS {
		conn, err := net.DialTimeout("tcp", connect, dialTimeout)
		if nil != err {
			return nil, err
		}
		return newClient(conn, verbose, handle), nil
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	dialer := &net.Dialer{
		Timeout: dialTimeout,
	}
	conn, err := tls.DialWithDialer(dialer, "tcp", connect, tlsConfig)
	if nil != err {
		return nil, err
	}

	if "" != fingerprint {
		if err := checkFingerprint(conn, fingerprint); nil != err {
			conn.Close()
			return nil, err
		}
	}

	return newClient(conn, verbose, handle), nil
}

func newClient(conn net.Conn, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
}

func checkFingerprint(conn *tls.Conn, fingerprint string) error {

	expected, err := hex.DecodeString(fingerprint)
	if nil != err {
		return err
	}
	if 32 != len(expected) {
		return fault.ErrFingerprintMismatch
	}

	state := conn.ConnectionState()
	if 0 == len(state.PeerCertificates) {
		return fault.ErrFingerprintMismatch
	}

	actual := certificate.Fingerprint(state.PeerCertificates[0].Raw)
	for i, b := range actual {
		if b != expected[i] {
			return fault.ErrFingerprintMismatch
		}
	}
	return nil
}

// Close - shutdown the supplychaind connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}
