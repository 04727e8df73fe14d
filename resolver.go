// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import (
	"errors"
	"strings"

	"golang.org/x/sys/unix"
)

// errnoOf unwraps err down to the syscall.Errno it carries, if any.
func errnoOf(err error) (unix.Errno, bool) {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// closeAll closes every non-nil handle in handles. A nil entry represents
// the base directory itself sitting on the parent stack and owns nothing.
func closeAll(handles []*DirHandle) {
	for _, h := range handles {
		if h != nil {
			_ = h.Close()
		}
	}
}

// resolveManual performs the component-wise walk described by spec's
// resolver design: it is the fallback used whenever the Linux fast path
// (fastpath_linux.go) is unavailable or inapplicable, and the only
// implementation used on non-Linux platforms.
func resolveManual(base *DirHandle, path string, flags LookupFlags, finalOpenFlags int, mode uint32) (_ *DirHandle, Err error) {
	pol := derivePolicy(flags)

	var baseSt unix.Stat_t
	if pol.checkDev {
		var err error
		baseSt, err = base.statSelf()
		if err != nil {
			return nil, err
		}
	}

	symlinkMax := symlinkLimit()
	if !pol.resolveSymlinks {
		symlinkMax = 0
	}
	symlinksSeen := 0

	finalFlags := finalOpenFlags
	initialComps := parsePath(path)

	// A ".." appearing literally in the caller's own input is only ever
	// permitted with AllowParentComponents, even under InRoot (InRoot's
	// pinning-to-base behaviour is reserved for ".." introduced indirectly
	// by expanding a symlink target encountered mid-walk, matching what the
	// Linux fast path's openat2(2) RESOLVE_IN_ROOT does without needing a
	// userspace flag of its own). Checking this once up front, against the
	// unexpanded input, keeps that distinction -- the queue itself does not
	// remember where each component came from once symlinks start splicing
	// their own components into it.
	if !pol.allowParent {
		for _, c := range initialComps {
			if c.kind == componentParent {
				return nil, errPathError("resolve", path, unix.EXDEV)
			}
		}
	}

	queue := newComponentQueue(initialComps)

	var (
		current *DirHandle // nil means "the base directory"
		parents []*DirHandle
	)
	defer func() {
		if Err != nil {
			if current != nil {
				_ = current.Close()
			}
			closeAll(parents)
		}
	}()

	for {
		c, ok := queue.popFront()
		if !ok {
			break
		}

		switch c.kind {
		case componentRoot:
			if !pol.allowAbsolute {
				return nil, errPathError("resolve", path, unix.EXDEV)
			}
			closeAll(parents)
			parents = nil
			if current != nil {
				_ = current.Close()
				current = nil
			}

		case componentParent:
			// Permitted either because the caller opted into parent
			// components outright, or because InRoot pins ".." to the base
			// -- the literal-input case that InRoot alone must still reject
			// was already filtered out above. Without AllowParentComponents
			// no parent stack is kept (see the descent below), so under
			// InRoot alone every such ".." returns to the base itself, not
			// to the directory above the current one.
			if !pol.allowParent && !pol.allowAbsolute {
				return nil, errPathError("resolve", path, unix.EXDEV)
			}
			if n := len(parents); n > 0 {
				if current != nil {
					_ = current.Close()
				}
				current = parents[n-1]
				parents = parents[:n-1]
			} else if pol.allowAbsolute {
				// IN_ROOT: ".." past the base just stays at the base.
				if current != nil {
					_ = current.Close()
					current = nil
				}
			} else {
				return nil, errPathError("resolve", path, unix.EXDEV)
			}

		case componentName:
			var openFlags int
			if queue.empty() {
				openFlags = finalFlags
			} else {
				openFlags = interiorOpenFlags
			}
			openFlags |= unix.O_NOFOLLOW | unix.O_CLOEXEC

			curDir := current
			if curDir == nil {
				curDir = base
			}

			next, err := curDir.openatRaw(c.name, openFlags, mode)
			if err == nil {
				if pol.checkDev {
					st, serr := next.statSelf()
					if serr != nil {
						_ = next.Close()
						return nil, serr
					}
					if st.Dev != baseSt.Dev {
						_ = next.Close()
						return nil, errPathError("resolve", path, unix.EXDEV)
					}
				}

				if queue.empty() {
					// Final component: we're done.
					if current != nil {
						_ = current.Close()
					}
					closeAll(parents)
					return next, nil
				}

				if pol.allowParent {
					// current may be nil here, meaning the level we are
					// descending from is the base directory itself; that
					// must still occupy a slot on the stack so a later
					// ".." can pop back to it instead of falling through
					// to the "no parents left" case below.
					parents = append(parents, current)
				} else if current != nil {
					_ = current.Close()
				}
				current = next
				continue
			}

			errno, _ := errnoOf(err)
			errno = normalizeOpenErrno(errno)

			if errno != unix.ELOOP && errno != unix.ENOTDIR {
				return nil, err
			}

			// The failure may indicate a symlink in the way.
			target, rlErr := curDir.readlinkatRaw(c.name)
			if rlErr != nil {
				rlErrno, _ := errnoOf(rlErr)
				if rlErrno == unix.EINVAL {
					if errno == unix.ENOTDIR {
						// It really wasn't a directory, and it's not a
						// symlink either -- surface the original error.
						return nil, err
					}
					// errno was ELOOP (definitely a symlink a moment ago)
					// but readlink now says EINVAL (not a symlink). The
					// file changed type under us.
					return nil, errPathError("resolve", path, unix.EAGAIN)
				}
				return nil, rlErr
			}

			// Confirmed symlink.
			if symlinksSeen >= symlinkMax {
				return nil, errPathError("resolve", path, unix.ELOOP)
			}
			symlinksSeen++

			if queue.empty() && strings.HasSuffix(target, "/") {
				finalFlags |= unix.O_DIRECTORY
			}
			queue.pushFrontAll(parsePath(target))
		}
	}

	// Queue exhausted without an open being performed (e.g. "." or, under
	// IN_ROOT, a bare "/" that immediately reduced to the base).
	closeAll(parents)
	if current != nil {
		return current, nil
	}
	return base.Clone()
}
