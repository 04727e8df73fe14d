// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolveat implements race-resistant, confinement-checked pathname
// resolution on Unix-family operating systems.
//
// Given a base directory (held open as a [DirHandle]) and a caller-supplied
// path, the resolver walks the path one component at a time, enforcing at
// every step that the result stays a descendant of the base directory, even
// in the presence of adversarial symlinks, absolute paths, ".." traversal,
// or concurrent filesystem mutation by other unprivileged processes.
//
// On Linux, resolution is delegated to a single openat2(2) syscall
// (RESOLVE_BENEATH / RESOLVE_IN_ROOT) whenever the kernel supports the
// requested combination of [LookupFlags]; everywhere else (and as a fallback
// when openat2 returns ENOSYS or E2BIG) a component-by-component walk
// emulates the same semantics in userspace.
//
// This package does not attempt to be race-free against a root-privileged
// attacker, does not implement mount-point discovery beyond a st_dev
// comparison, and does not canonicalize paths for display.
package resolveat
