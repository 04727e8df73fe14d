//go:build !linux

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

// useKernelFastpath is always false off Linux: openat2(2) does not exist
// anywhere else, so every lookup uses the manual walk.
func useKernelFastpath(_ LookupFlags) bool {
	return false
}
