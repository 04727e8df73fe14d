//go:build linux

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import (
	"strings"

	"golang.org/x/sys/unix"
)

// resolveFastpath attempts to delegate the entire walk to a single
// openat2(2) syscall. It returns (nil, nil, false) when the manual walk must
// be used instead (policy says not to use the fast path, or openat2 failed
// with ENOSYS or E2BIG); (nil, err, true) when the pre-filter rejected the
// path or openat2 conclusively failed; and (handle, nil, true) on success.
func resolveFastpath(base *DirHandle, path string, flags LookupFlags, finalOpenFlags int, mode uint32) (*DirHandle, error, bool) {
	pol := derivePolicy(flags)
	if !pol.useKernelFastpath {
		return nil, nil, false
	}

	// Pre-filter: the kernel would happily accept ".." under
	// RESOLVE_BENEATH (so long as it doesn't escape), but this package
	// rejects a ".." written in the path itself unless AllowParentComponents
	// is set. Only the literal path is checked: a ".." reached through a
	// symlink target is left to the kernel, which accepts it as long as it
	// does not leave the base.
	if !pol.allowParent && strings.Contains("/"+path+"/", "/../") {
		return nil, errPathError("openat2", path, unix.EXDEV), true
	}

	how := unix.OpenHow{
		Flags:   uint64(finalOpenFlags) | unix.O_CLOEXEC,
		Resolve: unix.RESOLVE_NO_MAGICLINKS,
	}
	if flags.Has(NoSymlinks) {
		how.Resolve |= unix.RESOLVE_NO_SYMLINKS
	}
	if flags.Has(NoXDev) {
		how.Resolve |= unix.RESOLVE_NO_XDEV
	}
	if pol.allowAbsolute {
		how.Resolve |= unix.RESOLVE_IN_ROOT
	} else {
		how.Resolve |= unix.RESOLVE_BENEATH
	}
	// O_TMPFILE includes the O_DIRECTORY bit, so it must be matched in full.
	if (how.Flags&unix.O_CREAT != 0 || how.Flags&unix.O_TMPFILE == unix.O_TMPFILE) && mode == 0 {
		how.Mode = 0o777
	} else {
		how.Mode = uint64(mode)
	}

	fd, err := unix.Openat2(base.Fd(), path, &how)
	if err != nil {
		errno, _ := errnoOf(err)
		if errno == unix.ENOSYS || errno == unix.E2BIG {
			return nil, nil, false
		}
		return nil, errPathError("openat2", base.childPath(path), errno), true
	}
	return newDirHandle(fd, base.childPath(path)), nil, true
}
