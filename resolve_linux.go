//go:build linux

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

// resolve walks path against base under flags, returning a handle to the
// resolved target. On Linux it first tries to delegate the whole walk to a
// single openat2(2) syscall (see fastpath_linux.go) and only falls back to
// the manual component-wise walk when the fast path declines to handle the
// request at all (ENOSYS/E2BIG, or policy ruling it out).
func resolve(base *DirHandle, path string, flags LookupFlags, finalOpenFlags int, mode uint32) (*DirHandle, error) {
	if handle, err, handled := resolveFastpath(base, path, flags, finalOpenFlags, mode); handled {
		return handle, err
	}
	return resolveManual(base, path, flags, finalOpenFlags, mode)
}
