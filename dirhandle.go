// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// DirHandle is an owning handle over an open directory file descriptor. It
// is exclusively owned by the caller and must be closed when no longer
// needed; intermediate handles produced internally by the resolver are
// closed automatically on every exit path (including error paths).
type DirHandle struct {
	f *os.File
}

// OpenDir opens path as a base directory handle, suitable for use as the
// root argument to [DirHandle]'s methods. The handle is opened with
// O_DIRECTORY|O_CLOEXEC (and O_PATH on Linux).
func OpenDir(path string) (*DirHandle, error) {
	fd, err := unix.Open(path, interiorOpenFlags|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errPathError("open", path, err.(unix.Errno))
	}
	return &DirHandle{f: os.NewFile(uintptr(fd), path)}, nil
}

// newDirHandle wraps an already-open fd (obtained by the resolver) as a
// DirHandle, taking ownership of it.
func newDirHandle(fd int, name string) *DirHandle {
	return &DirHandle{f: os.NewFile(uintptr(fd), name)}
}

// Fd returns the underlying file descriptor. The descriptor remains owned by
// d; callers must not close it directly.
func (d *DirHandle) Fd() int {
	return int(d.f.Fd())
}

// Name returns the path the handle was originally opened with (or a
// synthetic name for handles produced internally by the resolver). It is
// informational only and must never be used for filesystem operations --
// use the handle's fd via the *at wrappers instead.
func (d *DirHandle) Name() string {
	return d.f.Name()
}

// Close releases the underlying file descriptor.
func (d *DirHandle) Close() error {
	return d.f.Close()
}

// File returns the underlying *os.File, for callers that resolved a regular
// file (via OpenRead/OpenWrite/CreateExclusive/etc.) and want to use the
// standard library's I/O methods on it.
func (d *DirHandle) File() *os.File {
	return d.f
}

// Clone duplicates the underlying file descriptor with F_DUPFD_CLOEXEC, so
// the resulting handle shares no lifetime with d.
func (d *DirHandle) Clone() (*DirHandle, error) {
	fd, err := unix.FcntlInt(d.f.Fd(), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, &os.PathError{Op: "fcntl(F_DUPFD_CLOEXEC)", Path: d.Name(), Err: err}
	}
	runtime.KeepAlive(d)
	return newDirHandle(fd, d.Name()), nil
}

// statSelf fstat(2)s the handle itself.
func (d *DirHandle) statSelf() (unix.Stat_t, error) {
	var st unix.Stat_t
	err := unix.Fstat(d.Fd(), &st)
	runtime.KeepAlive(d)
	if err != nil {
		return st, &os.PathError{Op: "fstat", Path: d.Name(), Err: err}
	}
	return st, nil
}

// sameDir reports whether a and b refer to the same filesystem object
// (identical (st_dev, st_ino)).
func sameDir(a, b *DirHandle) (bool, error) {
	sa, err := a.statSelf()
	if err != nil {
		return false, err
	}
	sb, err := b.statSelf()
	if err != nil {
		return false, err
	}
	return sa.Dev == sb.Dev && sa.Ino == sb.Ino, nil
}

// dirfdOf returns d's raw fd to use as the dirfd argument for an *at(2)
// syscall. d must not be nil: call sites that track "the base directory" as
// a nil handle substitute the base handle themselves before calling.
func dirfdOf(d *DirHandle) int {
	return d.Fd()
}

func (d *DirHandle) childPath(name string) string {
	return d.Name() + "/" + name
}

func (d *DirHandle) openatRaw(name string, flags int, mode uint32) (*DirHandle, error) {
	fd, err := unix.Openat(dirfdOf(d), name, flags|unix.O_CLOEXEC, mode)
	runtime.KeepAlive(d)
	if err != nil {
		return nil, errPathError("openat", d.childPath(name), err.(unix.Errno))
	}
	return newDirHandle(fd, d.childPath(name)), nil
}

func (d *DirHandle) fstatatRaw(name string, flags int) (unix.Stat_t, error) {
	var st unix.Stat_t
	err := unix.Fstatat(dirfdOf(d), name, &st, flags)
	runtime.KeepAlive(d)
	if err != nil {
		return st, errPathError("fstatat", d.childPath(name), err.(unix.Errno))
	}
	return st, nil
}

func (d *DirHandle) readlinkatRaw(name string) (string, error) {
	size := 1024
	for {
		buf := make([]byte, size)
		n, err := unix.Readlinkat(dirfdOf(d), name, buf)
		runtime.KeepAlive(d)
		if err != nil {
			return "", errPathError("readlinkat", d.childPath(name), err.(unix.Errno))
		}
		if n < size {
			return string(buf[:n]), nil
		}
		size *= 2
	}
}

func (d *DirHandle) mkdiratRaw(name string, mode uint32) error {
	err := unix.Mkdirat(dirfdOf(d), name, mode)
	runtime.KeepAlive(d)
	if err != nil {
		return errPathError("mkdirat", d.childPath(name), err.(unix.Errno))
	}
	return nil
}

func (d *DirHandle) unlinkatRaw(name string, flags int) error {
	err := unix.Unlinkat(dirfdOf(d), name, flags)
	runtime.KeepAlive(d)
	if err != nil {
		return errPathError("unlinkat", d.childPath(name), err.(unix.Errno))
	}
	return nil
}

func (d *DirHandle) symlinkatRaw(target, name string) error {
	err := unix.Symlinkat(target, dirfdOf(d), name)
	runtime.KeepAlive(d)
	if err != nil {
		return errPathError("symlinkat", d.childPath(name), err.(unix.Errno))
	}
	return nil
}

func renameatRaw(oldDir *DirHandle, oldName string, newDir *DirHandle, newName string) error {
	err := unix.Renameat(dirfdOf(oldDir), oldName, dirfdOf(newDir), newName)
	runtime.KeepAlive(oldDir)
	runtime.KeepAlive(newDir)
	if err != nil {
		return errPathError("renameat", oldDir.childPath(oldName), err.(unix.Errno))
	}
	return nil
}

func linkatRaw(oldDir *DirHandle, oldName string, newDir *DirHandle, newName string) error {
	err := unix.Linkat(dirfdOf(oldDir), oldName, dirfdOf(newDir), newName, 0)
	runtime.KeepAlive(oldDir)
	runtime.KeepAlive(newDir)
	if err != nil {
		return errPathError("linkat", oldDir.childPath(oldName), err.(unix.Errno))
	}
	return nil
}
