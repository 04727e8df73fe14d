// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/cyphar/resolveat/internal/testutils"
)

func TestCreateDirAllFreshPath(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{})

	h, err := root.CreateDirAll("a/b/c", 0o755, 0)
	require.NoError(t, err)
	defer h.Close()

	same, err := sameDir(h, mustOpenSubdir(t, root, "a/b/c"))
	require.NoError(t, err)
	assert.True(t, same)
}

func TestCreateDirAllPartiallyExisting(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": testutils.Tree{"b": testutils.Tree{}}})

	h, err := root.CreateDirAll("a/b/c/d", 0o755, 0)
	require.NoError(t, err)
	defer h.Close()

	same, err := sameDir(h, mustOpenSubdir(t, root, "a/b/c/d"))
	require.NoError(t, err)
	assert.True(t, same)
}

func TestCreateDirAllAlreadyFullyExists(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": testutils.Tree{"b": testutils.Tree{}}})

	h, err := root.CreateDirAll("a/b", 0o755, 0)
	require.NoError(t, err)
	defer h.Close()

	same, err := sameDir(h, mustOpenSubdir(t, root, "a/b"))
	require.NoError(t, err)
	assert.True(t, same)
}

func TestCreateDirAllThroughFileIsENOTDIR(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": "not a directory"})

	_, err := root.CreateDirAll("a/b", 0o755, 0)
	assertErrno(t, err, unix.ENOTDIR)
}

func TestCreateDirAllRejectsDotDotWithoutFlag(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": testutils.Tree{}})

	_, err := root.CreateDirAll("a/../b", 0o755, 0)
	assertErrno(t, err, unix.EXDEV)
}

func mustOpenSubdir(t *testing.T, base *DirHandle, path string) *DirHandle {
	h, err := base.OpenSubdir(path, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}
