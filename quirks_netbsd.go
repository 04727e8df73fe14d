//go:build netbsd

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import "golang.org/x/sys/unix"

// normalizeOpenErrno: on NetBSD the equivalent quirk reports EFTYPE instead
// of EMLINK.
func normalizeOpenErrno(errno unix.Errno) unix.Errno {
	if errno == unix.EFTYPE {
		return unix.ELOOP
	}
	return errno
}
