//go:build freebsd || dragonfly

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import "golang.org/x/sys/unix"

// normalizeOpenErrno: on FreeBSD and DragonFly, an O_NOFOLLOW open of a
// symlink fails with EMLINK rather than ELOOP. Fold it into ELOOP so the
// resolver's symlink-recovery path (triggered on ELOOP/ENOTDIR) is
// reachable the same way on every platform.
func normalizeOpenErrno(errno unix.Errno) unix.Errno {
	if errno == unix.EMLINK {
		return unix.ELOOP
	}
	return errno
}
