// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

// policy is the set of concrete per-step decisions derived from a
// LookupFlags value. It is a pure function of the flags -- nothing here
// touches the filesystem.
type policy struct {
	allowAbsolute    bool
	allowParent      bool
	resolveSymlinks  bool
	checkDev         bool
	useKernelFastpath bool
}

// derivePolicy computes the lookup policy for flags. useKernelFastpath is
// computed by an OS-conditional helper (see policy_linux.go/policy_other.go)
// since it is the one decision in the whole resolver that depends on GOOS.
func derivePolicy(flags LookupFlags) policy {
	return policy{
		allowAbsolute:     flags.Has(InRoot),
		allowParent:       flags.Has(AllowParentComponents),
		resolveSymlinks:   !flags.Has(NoSymlinks),
		checkDev:          flags.Has(NoXDev),
		useKernelFastpath: useKernelFastpath(flags),
	}
}
