//go:build !linux

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import "golang.org/x/sys/unix"

// interiorOpenFlags: O_PATH is Linux-specific, so everywhere else a plain
// O_DIRECTORY handle is used (it is still never resolved through on the
// final component without O_NOFOLLOW, see resolver.go).
const interiorOpenFlags = unix.O_DIRECTORY
