// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testutils

import (
	"os"
	"path/filepath"

	"github.com/stretchr/testify/require"
)

// Symlink is a wrapper around os.Symlink.
func Symlink(t TestingT, oldname, newname string) {
	err := os.Symlink(oldname, newname)
	require.NoError(t, err)
}

// MkdirAll is a wrapper around os.MkdirAll.
func MkdirAll(t TestingT, path string, mode os.FileMode) { //nolint:unparam // wrapper func
	err := os.MkdirAll(path, mode)
	require.NoError(t, err)
}

// WriteFile is a wrapper around os.WriteFile, creating any missing parent
// directories first.
func WriteFile(t TestingT, path string, data []byte, mode os.FileMode) {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	require.NoError(t, err)
	err = os.WriteFile(path, data, mode)
	require.NoError(t, err)
}

// Tree describes a fixture filesystem tree to build under a temporary
// directory: keys are slash-separated paths relative to the root, values are
// either a plain string (a regular file's contents) or a Tree (a
// subdirectory, built recursively).
type Tree map[string]any

// Build materialises tree under root. Entries whose value is a string become
// regular files; entries whose value is itself a Tree become directories.
func Build(t TestingT, root string, tree Tree) {
	for name, val := range tree {
		path := filepath.Join(root, name)
		switch v := val.(type) {
		case string:
			WriteFile(t, path, []byte(v), 0o644)
		case Tree:
			MkdirAll(t, path, 0o755)
			Build(t, path, v)
		default:
			t.Fatalf("testutils.Build: unsupported entry %q of type %T", name, val)
		}
	}
}
