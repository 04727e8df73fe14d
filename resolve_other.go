//go:build !linux

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

// resolve walks path against base under flags. There is no fast path off
// Linux: openat2(2) does not exist, so every lookup uses the manual walk.
func resolve(base *DirHandle, path string, flags LookupFlags, finalOpenFlags int, mode uint32) (*DirHandle, error) {
	return resolveManual(base, path, flags, finalOpenFlags, mode)
}
