//go:build linux

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import "golang.org/x/sys/unix"

// interiorOpenFlags are OR'd into every non-final component open during a
// walk (and into OpenDir/OpenSubdir). Handles intended only to be used as a
// dirfd for further *at(2) syscalls need no read permission on Linux, so we
// use O_PATH there -- this is the "single platform-conditional design
// decision visible to callers" spec calls out in its Interior-handle flag
// choice.
const interiorOpenFlags = unix.O_PATH | unix.O_DIRECTORY
