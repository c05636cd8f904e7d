// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package util - file path helpers shared by the configuration and
// command line programs
package util

import (
	"os"
	"path/filepath"
	"strings"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check if file exists
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// IsPlainName - true for a file name without any directory part
func IsPlainName(name string) bool {
	if "" == name || "." == name || ".." == name {
		return false
	}
	return !strings.ContainsRune(name, os.PathSeparator) && !strings.ContainsRune(name, '/')
}
