// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import (
	"errors"
	"os"
	"syscall"
)

// errPathError builds an *os.PathError for op/path carrying errno. This is
// used instead of a bare errno return (unlike the Rust original this is
// based on) so that callers can use errors.Is against the standard
// syscall.Errno values.
func errPathError(op, path string, errno syscall.Errno) error {
	return &os.PathError{Op: op, Path: path, Err: errno}
}

// IsNotExist tells you if err is an error that implies that either the path
// accessed does not exist, or a path component along the way does not exist.
// This is a more permissive version of [os.IsNotExist] -- it also accepts
// ENOTDIR, which lookups in this package pass through when an intermediate
// component exists but is not a directory, and which the stdlib helper does
// not recognise.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.ENOENT)
}

// IsEscape reports whether err indicates that a path tried to escape the
// confines of its base directory (either a bare ".." rejection, an absolute
// path rejection, or a device-boundary crossing -- all three are reported as
// EXDEV per the resolver's error table).
func IsEscape(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
