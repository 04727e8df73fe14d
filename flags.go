// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import "fmt"

// LookupFlags controls how a path is resolved against a base directory. The
// bit layout is stable so that callers may persist a LookupFlags value (for
// example alongside a cached path) and reuse it later.
type LookupFlags uint32

const (
	// NoSymlinks causes any symlink encountered during resolution to fail
	// the lookup with ELOOP, instead of being followed.
	NoSymlinks LookupFlags = 1 << iota
	// InRoot treats the base directory as "/": absolute path components and
	// ".." components that would otherwise escape the base instead pin to
	// the base directory.
	InRoot
	// AllowParentComponents permits ".." components in the path. Without
	// this flag, a ".." written in the path itself fails the lookup with
	// EXDEV. A ".." that comes from a symlink target is not always rejected:
	// the manual walk accepts it under InRoot (returning to the base), and
	// the Linux openat2 fast path accepts it as long as it does not leave
	// the base.
	AllowParentComponents
	// NoXDev fails the lookup with EXDEV as soon as resolution would cross
	// onto a filesystem whose st_dev differs from the base directory's.
	NoXDev
	// XDevBindOK modifies NoXDev's Linux fast-path semantics so that
	// crossing a bind mount is not treated as a device crossing. It has no
	// effect unless NoXDev is also set, and on Linux the combination
	// disables the openat2 fast path (the kernel has no way to distinguish
	// a bind mount from any other mount when resolving RESOLVE_NO_XDEV).
	XDevBindOK
)

// Has reports whether all bits in want are set in flags.
func (flags LookupFlags) Has(want LookupFlags) bool {
	return flags&want == want
}

// String renders flags as a "|"-joined list of flag names, for use in error
// messages and test failure output.
func (flags LookupFlags) String() string {
	if flags == 0 {
		return "0"
	}
	names := []struct {
		bit  LookupFlags
		name string
	}{
		{NoSymlinks, "NoSymlinks"},
		{InRoot, "InRoot"},
		{AllowParentComponents, "AllowParentComponents"},
		{NoXDev, "NoXDev"},
		{XDevBindOK, "XDevBindOK"},
	}
	s := ""
	rest := flags
	for _, n := range names {
		if rest.Has(n.bit) {
			if s != "" {
				s += "|"
			}
			s += n.name
			rest &^= n.bit
		}
	}
	if rest != 0 {
		if s != "" {
			s += "|"
		}
		s += fmt.Sprintf("0x%x", uint32(rest))
	}
	return s
}
