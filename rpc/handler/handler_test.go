// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/rpc"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/fixtures"
	"github.com/bitmark-inc/supplychaind/ledger"
	"github.com/bitmark-inc/supplychaind/rpc/handler"
	"github.com/bitmark-inc/supplychaind/rpc/mocks"
)

const (
	notAllowed      = "method not allowed"
	tooManyRequests = "Too Many Requests"
)

type eResp struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type vResp struct {
	Valid  bool   `json:"valid"`
	Number uint64 `json:"number"`
	Error  string `json:"error"`
}

type jResp struct {
	ID     int         `json:"id"`
	Result int         `json:"result"`
	Error  interface{} `json:"error"`
}

type jReq struct {
	ID     int      `json:"id"`
	Method string   `json:"method"`
	Params []AddArg `json:"params"`
}

type Add struct{}
type AddArg struct {
	A int `json:"A"`
	B int `json:"B"`
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func newHandler(t *testing.T, maximum uint64) (handler.Handler, *mocks.MockOperations, *gomock.Controller) {
	return newHandlerContext(t, context.Background(), maximum)
}

func newHandlerContext(t *testing.T, ctx context.Context, maximum uint64) (handler.Handler, *mocks.MockOperations, *gomock.Controller) {
	ctl := gomock.NewController(t)
	m := mocks.NewMockOperations(ctl)

	s := rpc.NewServer()
	_ = s.Register(Add{})

	h := handler.New(
		ctx,
		logger.New(fixtures.LogCategory),
		s,
		m,
		time.Now(),
		"1.0",
		maximum,
	)
	return h, m, ctl
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) eResp {
	var j eResp
	err := json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Nil(t, err, "wrong error body")
	return j
}

func TestRoot(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _, ctl := newHandler(t, 5)
	defer ctl.Finish()

	req := httptest.NewRequest("GET", "http://not.found/anything", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	j := decodeError(t, w)
	assert.Equal(t, "not found", j.Error, "wrong response")
	assert.Equal(t, http.StatusNotFound, j.Code, "wrong http code")
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")
}

func TestBlocks(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, m, ctl := newHandler(t, 5)
	defer ctl.Finish()

	blocks := []ledger.Summary{
		{Number: 1, Digest: "00aa", Previous: "00bb", Sealed: true},
		{Number: 0, Digest: "00bb", Sealed: true},
	}
	m.EXPECT().ListBlocks().Return(blocks).Times(1)

	req := httptest.NewRequest("GET", "http://explorer/blocks", nil)
	w := httptest.NewRecorder()
	h.Blocks(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var reply []map[string]interface{}
	err := json.NewDecoder(w.Result().Body).Decode(&reply)
	assert.Nil(t, err, "wrong body")
	assert.Equal(t, 2, len(reply), "wrong block count")
	assert.Equal(t, float64(1), reply[0]["index"], "wrong head index")
	assert.Equal(t, "00bb", reply[0]["prev_hash"], "wrong previous")
	assert.Equal(t, "00aa", reply[0]["hash"], "wrong hash")
}

func TestBlocksWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _, ctl := newHandler(t, 5)
	defer ctl.Finish()

	req := httptest.NewRequest("POST", "http://explorer/blocks", nil)
	w := httptest.NewRecorder()
	h.Blocks(w, req)

	j := decodeError(t, w)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "wrong status code")
}

func TestValidate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, m, ctl := newHandler(t, 5)
	defer ctl.Finish()

	gomock.InOrder(
		m.EXPECT().Validate().Return(nil).Times(1),
		m.EXPECT().Validate().Return(&fault.IntegrityError{Number: 1, Err: fault.ErrPreviousDoesNotMatch}).Times(1),
	)

	req := httptest.NewRequest("GET", "http://explorer/validate", nil)
	w := httptest.NewRecorder()
	h.Validate(w, req)

	var v vResp
	_ = json.NewDecoder(w.Result().Body).Decode(&v)
	assert.Equal(t, http.StatusOK, w.Code, "wrong valid status code")
	assert.True(t, v.Valid, "chain not valid")

	w = httptest.NewRecorder()
	h.Validate(w, req)

	v = vResp{}
	_ = json.NewDecoder(w.Result().Body).Decode(&v)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong invalid status code")
	assert.False(t, v.Valid, "chain valid")
	assert.Equal(t, uint64(1), v.Number, "wrong block number")
	assert.Equal(t, fault.ErrPreviousDoesNotMatch.Error(), v.Error, "wrong error")
}

func TestAddTransaction(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, m, ctl := newHandler(t, 5)
	defer ctl.Finish()

	gomock.InOrder(
		m.EXPECT().StageTransaction(int64(1), "widget", "sig1").Return(nil).Times(1),
		m.EXPECT().StageTransaction(int64(2), "gadget", "sig2").Return(fault.ErrNoActiveBlock).Times(1),
	)

	body := `{"item_id":1,"description":"widget","signature":"sig1"}`
	req := httptest.NewRequest("POST", "http://explorer/add_transaction", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AddTransaction(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	body = `{"item_id":2,"description":"gadget","signature":"sig2"}`
	req = httptest.NewRequest("POST", "http://explorer/add_transaction", strings.NewReader(body))
	w = httptest.NewRecorder()
	h.AddTransaction(w, req)

	j := decodeError(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong rejected status code")
	assert.Equal(t, fault.ErrNoActiveBlock.Error(), j.Error, "wrong rejected error")

	req = httptest.NewRequest("POST", "http://explorer/add_transaction", strings.NewReader("{"))
	w = httptest.NewRecorder()
	h.AddTransaction(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong malformed status code")
}

func TestMineBlock(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, m, ctl := newHandler(t, 5)
	defer ctl.Finish()

	mined := ledger.Summary{Number: 0, Digest: "00cc", Sealed: true}
	gomock.InOrder(
		m.EXPECT().MineNextBlock(gomock.Any(), "").Return(mined, nil).Times(1),
		m.EXPECT().MineNextBlock(gomock.Any(), "00").Return(ledger.Summary{}, fault.ErrMiningCancelled).Times(1),
	)

	req := httptest.NewRequest("POST", "http://explorer/mine_block", nil)
	w := httptest.NewRecorder()
	h.MineBlock(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.Contains(t, w.Body.String(), `"hash":"00cc"`, "wrong mined block")

	req = httptest.NewRequest("POST", "http://explorer/mine_block", strings.NewReader(`{"difficulty":"00"}`))
	w = httptest.NewRecorder()
	h.MineBlock(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong cancelled status code")
}

func TestMineBlockNotPersisted(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, m, ctl := newHandler(t, 5)
	defer ctl.Finish()

	unsaved := ledger.Summary{Number: 3, Digest: "00dd", Sealed: true}
	persist := &fault.PersistenceError{Op: "save", Path: "chain.dat", Err: errors.New("disk full")}
	m.EXPECT().MineNextBlock(gomock.Any(), "").Return(unsaved, persist).Times(1)

	req := httptest.NewRequest("POST", "http://explorer/mine_block", nil)
	w := httptest.NewRecorder()
	h.MineBlock(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code, "wrong status code")
	assert.Contains(t, w.Body.String(), `"hash":"00dd"`, "sealed block missing")
	assert.Contains(t, w.Body.String(), "disk full", "persist error missing")
}

func TestMineBlockShutdown(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, cancel := context.WithCancel(context.Background())
	h, m, ctl := newHandlerContext(t, ctx, 5)
	defer ctl.Finish()

	m.EXPECT().MineNextBlock(gomock.Any(), "").DoAndReturn(
		func(ctx context.Context, _ string) (ledger.Summary, error) {
			<-ctx.Done()
			return ledger.Summary{}, fault.ErrMiningCancelled
		},
	).Times(1)

	done := make(chan int, 1)
	go func() {
		req := httptest.NewRequest("POST", "http://explorer/mine_block", nil)
		w := httptest.NewRecorder()
		h.MineBlock(w, req)
		done <- w.Code
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, http.StatusServiceUnavailable, code, "wrong shutdown status code")
	case <-time.After(5 * time.Second):
		t.Fatal("mining not stopped by shutdown")
	}
}

func TestRPC(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _, ctl := newHandler(t, 5)
	defer ctl.Finish()

	add := AddArg{
		A: 1,
		B: 2,
	}

	arg := jReq{
		ID:     5,
		Method: "Add.Add",
		Params: []AddArg{add},
	}
	data, _ := json.Marshal(arg)

	req := httptest.NewRequest("POST", "http://explorer/rpc", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j jResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Equal(t, add.A+add.B, j.Result, "wrong result")
	assert.Nil(t, j.Error, "wrong error")
}

func TestRPCWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _, ctl := newHandler(t, 5)
	defer ctl.Finish()

	req := httptest.NewRequest("GET", "http://explorer/rpc", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	j := decodeError(t, w)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestTooManyRequests(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _, ctl := newHandler(t, 0)
	defer ctl.Finish()

	req := httptest.NewRequest("GET", "http://explorer/blocks", nil)
	w := httptest.NewRecorder()
	h.Blocks(w, req)

	j := decodeError(t, w)
	assert.Equal(t, tooManyRequests, j.Error, "wrong error")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "wrong status code")
}

func TestDetails(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, m, ctl := newHandler(t, 5)
	defer ctl.Finish()

	_, ipNet, _ := net.ParseCIDR("192.0.2.0/24")
	h.SetAllow(map[string][]*net.IPNet{
		"details": {ipNet},
	})

	m.EXPECT().Info().Return(ledger.Info{Blocks: 3}).Times(1)

	// httptest requests come from 192.0.2.1
	req := httptest.NewRequest("GET", "http://explorer/details", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var reply struct {
		Version string      `json:"version"`
		Ledger  ledger.Info `json:"ledger"`
	}
	_ = json.NewDecoder(w.Result().Body).Decode(&reply)
	assert.Equal(t, "1.0", reply.Version, "wrong version")
	assert.Equal(t, 3, reply.Ledger.Blocks, "wrong block count")
}

func TestDetailsWhenNotAllowed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _, ctl := newHandler(t, 5)
	defer ctl.Finish()

	_, ipNet, _ := net.ParseCIDR("127.0.0.1/32")
	h.SetAllow(map[string][]*net.IPNet{
		"details": {ipNet},
	})

	req := httptest.NewRequest("GET", "http://explorer/details", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	j := decodeError(t, w)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
	assert.Equal(t, http.StatusForbidden, w.Code, "wrong status code")
}
