//go:build linux

// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

// useKernelFastpath is true unless the caller asked for NoXDev|XDevBindOK
// together -- that combination requires distinguishing bind mounts from
// other mounts, which openat2(2) cannot do, so the manual walk (which does
// its own st_dev comparison) must be used instead.
func useKernelFastpath(flags LookupFlags) bool {
	return !(flags.Has(NoXDev) && flags.Has(XDevBindOK))
}
