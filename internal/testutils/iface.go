// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testutils provides small helpers shared by the package's table
// driven tests: a minimal *testing.T wrapper and some fixture-tree builders.
package testutils

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestingT is the subset of *testing.T the helpers in this package need.
type TestingT interface {
	assert.TestingT
	require.TestingT

	TempDir() string
	Fatalf(format string, args ...any)
	Skip(args ...any)
}
