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

func TestCreateDirAndRemoveDir(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{})

	require.NoError(t, root.CreateDir("a", 0o777, 0))
	h, err := root.OpenSubdir("a", 0)
	require.NoError(t, err)
	h.Close()

	// Creating it again fails (no EEXIST translation needed -- mkdirat
	// itself reports that).
	err = root.CreateDir("a", 0o777, 0)
	require.Error(t, err)

	require.NoError(t, root.RemoveDir("a", 0))
	_, err = root.OpenSubdir("a", 0)
	assertErrno(t, err, unix.ENOENT)
}

func TestCreateDirAtBaseIsEEXIST(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{})
	err := root.CreateDir(".", 0o777, 0)
	assertErrno(t, err, unix.EEXIST)
}

func TestRemoveDirOnBaseIsEBUSY(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{})
	err := root.RemoveDir(".", 0)
	assertErrno(t, err, unix.EBUSY)
}

func TestRemoveDirOnAncestorIsENOTEMPTY(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": testutils.Tree{"b": testutils.Tree{}}})
	err := root.RemoveDir("a/b/..", AllowParentComponents)
	assertErrno(t, err, unix.ENOTEMPTY)
}

func TestSymlinkAndReadLink(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{})

	require.NoError(t, root.Symlink("link", "target", 0))
	target, err := root.ReadLink("link", 0)
	require.NoError(t, err)
	assert.Equal(t, "target", target)

	_, err = root.ReadLink(".", 0)
	assertErrno(t, err, unix.EINVAL)

	err = root.Symlink(".", "whatever", 0)
	assertErrno(t, err, unix.EEXIST)
}

func TestRemoveFile(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": "hi"})

	err := root.RemoveFile(".", 0)
	assertErrno(t, err, unix.EISDIR)

	require.NoError(t, root.RemoveFile("a", 0))
	_, err = root.Stat("a", 0)
	assertErrno(t, err, unix.ENOENT)
}

func TestStat(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": "hi"})

	st, err := root.Stat("a", 0)
	require.NoError(t, err)
	assert.EqualValues(t, unix.S_IFREG, st.Mode&unix.S_IFMT)

	st, err = root.Stat(".", 0)
	require.NoError(t, err)
	assert.NotZero(t, st.Ino)
}

// Scenario 6: hardlink confinement.
func TestHardlinkConfinement(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": testutils.Tree{"b": "hi"}})
	testutils.Symlink(t, "..", root.Name()+"/s")

	err := Hardlink(root, "a/b", root, "s/c", 0)
	assertErrno(t, err, unix.EXDEV)

	err = Hardlink(root, "a/b", root, "s/c", InRoot|AllowParentComponents)
	require.NoError(t, err)

	_, err = root.Stat("c", 0)
	require.NoError(t, err)
}

func TestHardlinkRejectsDotDotSource(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": testutils.Tree{}})

	err := Hardlink(root, "a/..", root, "link", AllowParentComponents)
	assertErrno(t, err, unix.ENOTSUP)

	err = Hardlink(root, ".", root, "link", 0)
	assertErrno(t, err, unix.ENOTSUP)
}

func TestRenameDestinationIsBaseIsEEXIST(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": "hi"})
	err := Rename(root, "a", root, ".", 0)
	assertErrno(t, err, unix.EEXIST)
}

func TestRenameBasic(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": "hi", "dir": testutils.Tree{}})

	require.NoError(t, Rename(root, "a", root, "dir/a", 0))
	_, err := root.Stat("a", 0)
	assertErrno(t, err, unix.ENOENT)
	_, err = root.Stat("dir/a", 0)
	require.NoError(t, err)
}

func TestListDirBasic(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{"a": "1", "b": "2"})

	entries, err := root.ListDir(".", 0)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestParentOfBaseIsNil(t *testing.T) {
	// "/" is its own parent, so it is the base for which Parent reports none.
	root, err := OpenDir("/")
	require.NoError(t, err)
	defer root.Close()

	p, err := root.Parent()
	require.NoError(t, err)
	if p != nil {
		// Close the unexpected handle so the test fails loudly instead of
		// leaking it.
		p.Close()
		t.Fatalf("expected nil parent for \"/\"")
	}
}

func TestOpenWriteAndReadRoundtrip(t *testing.T) {
	root := openTestRoot(t, testutils.Tree{})

	f, err := root.WriteTrunc("f", 0o644, 0)
	require.NoError(t, err)
	_, err = f.WriteString("hello")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = root.OpenRead("f", 0)
	require.NoError(t, err)
	defer f.Close()
	buf := make([]byte, 5)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	_, err = root.CreateExclusive("f", 0o644, 0)
	require.Error(t, err)
}
