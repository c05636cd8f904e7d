// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdigest_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/blockdigest"
	"github.com/bitmark-inc/supplychaind/fault"
)

func TestScanFmt(t *testing.T) {
	stringDigest := "00000000440b921e1b77c6c0487ae5616de67f788f44ae2a5af6e2194d16b6f8"

	var d blockdigest.Digest
	n, err := fmt.Sscan(stringDigest, &d)
	if nil != err {
		t.Fatalf("hex to digest error: %v", err)
	}
	if 1 != n {
		t.Fatalf("scanned %d items expected to scan 1", n)
	}

	expected := blockdigest.Digest{
		0x00, 0x00, 0x00, 0x00,
		0x44, 0x0b, 0x92, 0x1e,
		0x1b, 0x77, 0xc6, 0xc0,
		0x48, 0x7a, 0xe5, 0x61,
		0x6d, 0xe6, 0x7f, 0x78,
		0x8f, 0x44, 0xae, 0x2a,
		0x5a, 0xf6, 0xe2, 0x19,
		0x4d, 0x16, 0xb6, 0xf8,
	}
	if d != expected {
		t.Errorf("digest = %#v expected %#v", d, expected)
	}

	s := fmt.Sprintf("%s", d)
	if s != stringDigest {
		t.Errorf("string: digest = %s expected %s", s, stringDigest)
	}

	s = fmt.Sprintf("%#v", d)
	if s != "<digest:"+stringDigest+">" {
		t.Errorf("hash-v: digest = %s expected %s", s, stringDigest)
	}
}

func TestJSON(t *testing.T) {
	d, err := blockdigest.FromString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	assert.Nil(t, err, "from string")

	buffer, err := json.Marshal(d)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"`, string(buffer), "wrong JSON")

	var back blockdigest.Digest
	err = json.Unmarshal(buffer, &back)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, d, back, "wrong round trip")
}

func TestFromStringInvalid(t *testing.T) {
	for _, s := range []string{"", "00", "zz" + blockdigest.Sentinel.String()[2:], blockdigest.Sentinel.String() + "00"} {
		_, err := blockdigest.FromString(s)
		assert.Equal(t, fault.ErrInvalidDigest, err, "accepted: %q", s)
	}
}

func TestSentinel(t *testing.T) {
	assert.True(t, blockdigest.Sentinel.IsZero(), "sentinel not zero")
	assert.Equal(t, 64, len(blockdigest.Sentinel.String()), "sentinel length")
	for _, c := range blockdigest.Sentinel.String() {
		assert.Equal(t, '0', c, "sentinel character")
	}
}

func TestKnownDigests(t *testing.T) {
	vectors := []struct {
		algorithm string
		expected  string
	}{
		{blockdigest.SHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{blockdigest.SHA3, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{blockdigest.Blake2b, "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"},
	}

	for _, v := range vectors {
		h, err := blockdigest.New(v.algorithm)
		if nil != err {
			t.Fatalf("%s: new error: %s", v.algorithm, err)
		}
		assert.Equal(t, v.algorithm, h.Algorithm(), "algorithm name")
		assert.Equal(t, v.expected, h.Digest([]byte("abc")).String(), "%s digest", v.algorithm)
	}
}

func TestDefaultAlgorithm(t *testing.T) {
	h, err := blockdigest.New("")
	assert.Nil(t, err, "default hasher")
	assert.Equal(t, blockdigest.SHA256, h.Algorithm(), "default algorithm")
}

func TestDeterministic(t *testing.T) {
	for _, algorithm := range []string{blockdigest.SHA256, blockdigest.SHA3, blockdigest.Blake2b, blockdigest.Argon2d} {
		h, err := blockdigest.New(algorithm)
		if nil != err {
			t.Fatalf("%s: new error: %s", algorithm, err)
		}
		data := []byte("0" + "1700000000" + blockdigest.Sentinel.String() + "42")
		d1 := h.Digest(data)
		d2 := h.Digest(data)
		assert.Equal(t, d1, d2, "%s not deterministic", algorithm)
		assert.NotEqual(t, d1, h.Digest([]byte("other input for the hasher")), "%s collision", algorithm)
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	h, err := blockdigest.New("md5")
	assert.Nil(t, h, "hasher returned")
	assert.True(t, fault.IsErrInitialise(err), "wrong error class: %v", err)
	assert.True(t, errors.Is(err, fault.ErrDigestInitialise), "wrong error: %v", err)
	assert.Contains(t, err.Error(), fault.ErrUnknownHashAlgorithm.Error(), "wrong message")
	assert.Contains(t, err.Error(), `"md5"`, "missing algorithm name")
}
