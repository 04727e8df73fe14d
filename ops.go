// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import (
	"os"

	"golang.org/x/sys/unix"
)

func closeIfNotNil(d *DirHandle) {
	if d != nil {
		_ = d.Close()
	}
}

// OpenRead opens path for reading. Unlike a plain openat(2), the resolved
// file is guaranteed to be a descendant of d (subject to flags), so "/",
// "..", and symlinks cannot be used to escape it.
func (d *DirHandle) OpenRead(path string, flags LookupFlags) (*os.File, error) {
	h, err := resolve(d, path, flags, unix.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return h.File(), nil
}

// OpenWrite opens an existing file for writing.
func (d *DirHandle) OpenWrite(path string, flags LookupFlags) (*os.File, error) {
	h, err := resolve(d, path, flags, unix.O_WRONLY, 0)
	if err != nil {
		return nil, err
	}
	return h.File(), nil
}

// CreateExclusive atomically creates path and opens it for writing, failing
// if it already exists.
func (d *DirHandle) CreateExclusive(path string, mode uint32, flags LookupFlags) (*os.File, error) {
	h, err := resolve(d, path, flags, unix.O_CREAT|unix.O_EXCL|unix.O_WRONLY, mode)
	if err != nil {
		return nil, err
	}
	return h.File(), nil
}

// Update opens path for reading and writing, creating it if it does not
// exist.
func (d *DirHandle) Update(path string, mode uint32, flags LookupFlags) (*os.File, error) {
	h, err := resolve(d, path, flags, unix.O_CREAT|unix.O_RDWR, mode)
	if err != nil {
		return nil, err
	}
	return h.File(), nil
}

// WriteTrunc opens path for writing, creating it if it does not exist and
// truncating it if it does.
func (d *DirHandle) WriteTrunc(path string, mode uint32, flags LookupFlags) (*os.File, error) {
	h, err := resolve(d, path, flags, unix.O_CREAT|unix.O_WRONLY|unix.O_TRUNC, mode)
	if err != nil {
		return nil, err
	}
	return h.File(), nil
}

// Append opens path for appending, creating it if it does not exist.
func (d *DirHandle) Append(path string, mode uint32, flags LookupFlags) (*os.File, error) {
	h, err := resolve(d, path, flags, unix.O_CREAT|unix.O_WRONLY|unix.O_APPEND, mode)
	if err != nil {
		return nil, err
	}
	return h.File(), nil
}

// OpenSubdir opens path as a subdirectory handle.
func (d *DirHandle) OpenSubdir(path string, flags LookupFlags) (*DirHandle, error) {
	return resolve(d, path, flags, interiorOpenFlags, 0)
}

// Parent opens the parent directory of d with a plain openat(d, "..") -- the
// parent lies outside d, so this is not a confined lookup -- except that it
// returns (nil, nil) instead of a handle if the parent would be the same
// directory as d (for example, if d is open on "/").
func (d *DirHandle) Parent() (*DirHandle, error) {
	parent, err := d.openatRaw("..", interiorOpenFlags|unix.O_NOFOLLOW, 0)
	if err != nil {
		return nil, err
	}
	same, err := sameDir(d, parent)
	if err != nil {
		_ = parent.Close()
		return nil, err
	}
	if same {
		_ = parent.Close()
		return nil, nil
	}
	return parent, nil
}

// CreateDir creates a directory at path.
func (d *DirHandle) CreateDir(path string, mode uint32, flags LookupFlags) error {
	parent, name, err := splitPath(d, path, flags)
	if err != nil {
		return err
	}
	defer closeIfNotNil(parent)

	if name == nil {
		return errPathError("mkdir", path, unix.EEXIST)
	}
	dir := parent
	if dir == nil {
		dir = d
	}
	return dir.mkdiratRaw(*name, mode)
}

// RemoveDir removes an empty directory at path.
func (d *DirHandle) RemoveDir(path string, flags LookupFlags) error {
	parent, name, err := splitPath(d, path, flags)
	if err != nil {
		return err
	}
	defer closeIfNotNil(parent)

	if name != nil {
		dir := parent
		if dir == nil {
			dir = d
		}
		return dir.unlinkatRaw(*name, unix.AT_REMOVEDIR)
	}

	// path was "/" itself, or ended in ".." and resolved to some ancestor.
	isBase := true
	if parent != nil {
		var serr error
		isBase, serr = sameDir(d, parent)
		if serr != nil {
			return serr
		}
	}
	if isBase {
		return errPathError("rmdir", path, unix.EBUSY)
	}
	return errPathError("rmdir", path, unix.ENOTEMPTY)
}

// RemoveFile removes a non-directory entry at path.
func (d *DirHandle) RemoveFile(path string, flags LookupFlags) error {
	parent, name, err := splitPath(d, path, flags)
	if err != nil {
		return err
	}
	defer closeIfNotNil(parent)

	if name == nil {
		return errPathError("unlink", path, unix.EISDIR)
	}
	dir := parent
	if dir == nil {
		dir = d
	}
	return dir.unlinkatRaw(*name, 0)
}

// Symlink creates a symlink at path pointing to target.
func (d *DirHandle) Symlink(path, target string, flags LookupFlags) error {
	parent, name, err := splitPath(d, path, flags)
	if err != nil {
		return err
	}
	defer closeIfNotNil(parent)

	if name == nil {
		return errPathError("symlink", path, unix.EEXIST)
	}
	dir := parent
	if dir == nil {
		dir = d
	}
	return dir.symlinkatRaw(target, *name)
}

// ReadLink reads the target of the symlink at path.
func (d *DirHandle) ReadLink(path string, flags LookupFlags) (string, error) {
	parent, name, err := splitPath(d, path, flags)
	if err != nil {
		return "", err
	}
	defer closeIfNotNil(parent)

	if name == nil {
		return "", errPathError("readlink", path, unix.EINVAL)
	}
	dir := parent
	if dir == nil {
		dir = d
	}
	return dir.readlinkatRaw(*name)
}

// Stat returns metadata for path.
func (d *DirHandle) Stat(path string, flags LookupFlags) (unix.Stat_t, error) {
	parent, name, err := splitPath(d, path, flags)
	if err != nil {
		return unix.Stat_t{}, err
	}
	defer closeIfNotNil(parent)

	dir := parent
	if dir == nil {
		dir = d
	}
	if name != nil {
		return dir.fstatatRaw(*name, 0)
	}
	return dir.statSelf()
}

// ListDir lists the entries of the directory at path.
func (d *DirHandle) ListDir(path string, flags LookupFlags) ([]os.DirEntry, error) {
	subdir, err := d.OpenSubdir(path, flags)
	if err != nil {
		return nil, err
	}
	defer subdir.Close()

	// subdir may have been opened O_PATH (on Linux, always; see
	// interior_linux.go), and an O_PATH handle cannot be used to read
	// directory entries on any OS. Re-open "." on the child without O_PATH,
	// which is the "list_dir('.') on the child handle" approach spec calls
	// for, generalised to every platform rather than just Linux.
	listHandle, err := subdir.openatRaw(".", unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, err
	}
	defer listHandle.Close()

	return listHandle.File().ReadDir(-1)
}

type atOp func(oldDir *DirHandle, oldName string, newDir *DirHandle, newName string) error

// crossDirOp implements the shared contract of Hardlink and Rename: the
// source's trailing-".." and equals-base rejections, the destination's
// equals-base rejection, and dispatch to the underlying *at(2) primitive.
func crossDirOp(op string, oldDir *DirHandle, oldPath string, newDir *DirHandle, newPath string, flags LookupFlags, do atOp) error {
	if endsInDotDot(oldPath) {
		// There is no safe, race-free way to translate a trailing ".." in
		// the source path into a (dir, name) pair for an unlink-style
		// primitive.
		return errPathError(op, oldPath, unix.ENOTSUP)
	}

	oldParent, oldName, err := splitPath(oldDir, oldPath, flags)
	if err != nil {
		return err
	}
	defer closeIfNotNil(oldParent)

	if oldName == nil {
		// oldPath didn't end in "..", so this means it resolved to the base
		// directory itself ("/").
		return errPathError(op, oldPath, unix.ENOTSUP)
	}
	srcDir := oldParent
	if srcDir == nil {
		srcDir = oldDir
	}

	newParent, newName, err := splitPath(newDir, newPath, flags)
	if err != nil {
		return err
	}
	defer closeIfNotNil(newParent)

	if newName == nil {
		return errPathError(op, newPath, unix.EEXIST)
	}
	dstDir := newParent
	if dstDir == nil {
		dstDir = newDir
	}

	return do(srcDir, *oldName, dstDir, *newName)
}

// Hardlink creates newPath (resolved against newDir) as a new hard link to
// oldPath (resolved against oldDir).
func Hardlink(oldDir *DirHandle, oldPath string, newDir *DirHandle, newPath string, flags LookupFlags) error {
	return crossDirOp("link", oldDir, oldPath, newDir, newPath, flags, linkatRaw)
}

// Rename moves oldPath (resolved against oldDir) to newPath (resolved
// against newDir).
func Rename(oldDir *DirHandle, oldPath string, newDir *DirHandle, newPath string, flags LookupFlags) error {
	return crossDirOp("rename", oldDir, oldPath, newDir, newPath, flags, renameatRaw)
}
