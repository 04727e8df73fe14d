//go:build !freebsd && !dragonfly && !netbsd

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import "golang.org/x/sys/unix"

// normalizeOpenErrno passes errno through unchanged everywhere except the
// BSDs named in quirks_freebsd.go/quirks_netbsd.go, which report "this is a
// symlink" via a different errno than ELOOP when O_NOFOLLOW trips on one.
func normalizeOpenErrno(errno unix.Errno) unix.Errno {
	return errno
}
