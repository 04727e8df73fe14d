// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

// defaultSymlinkLimit is used whenever sysconf(_SC_SYMLOOP_MAX) is
// unavailable. It matches Linux's own internal symlink-following limit.
const defaultSymlinkLimit = 40

// symlinkLimit returns the maximum number of symlinks a single walk may
// expand before failing with ELOOP. spec asks for sysconf(_SC_SYMLOOP_MAX)
// "when available", but querying sysconf(3) from Go requires cgo (there is
// no syscall(2) equivalent -- it's a libc-computed value, not a kernel one),
// which this package avoids everywhere else, so this always returns the
// default. In practice this does not change behaviour versus querying it:
// glibc's own sysconf(_SC_SYMLOOP_MAX) always reports "indeterminate" on
// Linux, so the fallback is what every Linux caller of the original
// implementation this is modeled on got anyway.
func symlinkLimit() int {
	return defaultSymlinkLimit
}
