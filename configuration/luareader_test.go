// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/supplychaind/configuration"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/fixtures"
)

type miningType struct {
	Difficulty string `gluamapper:"difficulty"`
	Timeout    string `gluamapper:"timeout"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Watch         bool              `gluamapper:"watch"`
	Mining        miningType        `gluamapper:"mining"`
	Listen        []string          `gluamapper:"listen"`
	Levels        map[string]string `gluamapper:"levels"`
}

const script = `
local M = {}

M.data_directory = arg[0]:match("(.*/)")
M.watch = true

M.mining = {
    difficulty = string.rep("0", 3),
}

M.listen = { "127.0.0.1:2130", "[::1]:2130" }

M.levels = {
    DEFAULT = "info",
    miner = "debug",
}

return M
`

func write(t *testing.T, content string) (string, func()) {
	name, cleanup := fixtures.TempFile("supplychaind.conf")
	if err := os.WriteFile(name, []byte(content), 0600); nil != err {
		cleanup()
		t.Fatalf("write configuration error: %s", err)
	}
	return name, cleanup
}

func TestParseConfigurationFile(t *testing.T) {
	name, cleanup := write(t, script)
	defer cleanup()

	options := testConfiguration{
		Mining: miningType{
			Difficulty: "0000",
			Timeout:    "10m",
		},
	}
	err := configuration.ParseConfigurationFile(name, &options)
	assert.Nil(t, err, "wrong parse")

	assert.NotEqual(t, "", options.DataDirectory, "missing directory from arg[0]")
	assert.True(t, options.Watch, "wrong watch")
	assert.Equal(t, "000", options.Mining.Difficulty, "wrong difficulty")
	assert.Equal(t, "10m", options.Mining.Timeout, "default overwritten")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, options.Listen, "wrong listen")
	assert.Equal(t, "debug", options.Levels["miner"], "wrong level")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	name, cleanup := write(t, "return 42")
	defer cleanup()

	var options testConfiguration
	err := configuration.ParseConfigurationFile(name, &options)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "non table accepted")

	err = configuration.ParseConfigurationFile(name, options)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "non pointer accepted")

	bad, cleanupBad := write(t, "return {")
	defer cleanupBad()

	err = configuration.ParseConfigurationFile(bad, &options)
	assert.NotNil(t, err, "syntax error accepted")

	err = configuration.ParseConfigurationFile(name+".missing", &options)
	assert.NotNil(t, err, "missing file accepted")
}
