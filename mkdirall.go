// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import (
	"strings"

	"golang.org/x/sys/unix"
)

// CreateDirAll is a race-resistant equivalent of os.MkdirAll scoped to d: it
// walks as far down path as already exists, opening one component at a time
// with O_NOFOLLOW (symlinks in path are not followed; a symlink component
// fails with ENOTDIR), then creates the remaining components one at a time
// with mkdirat(2), returning a handle to the final directory.
//
// Unlike repeatedly calling CreateDir after a failed OpenSubdir, the handle
// returned here is obtained without a second, independent lookup of path: the
// walk that discovers how much of path already exists is the same walk that
// produces the handle the remaining mkdirat(2) calls are issued against, so
// an attacker can only race the single still-to-be-created final component.
func (d *DirHandle) CreateDirAll(path string, mode uint32, flags LookupFlags) (_ *DirHandle, Err error) {
	pol := derivePolicy(flags)

	if strings.HasPrefix(path, "/") {
		if !pol.allowAbsolute {
			return nil, errPathError("mkdirat", path, unix.EXDEV)
		}
		path = strings.TrimPrefix(path, "/")
	}

	comps := parsePath(path)
	for _, c := range comps {
		if c.kind == componentParent && !pol.allowParent {
			return nil, errPathError("mkdirat", path, unix.EXDEV)
		}
	}

	cur, err := d.Clone()
	if err != nil {
		return nil, err
	}
	defer func() {
		if Err != nil {
			_ = cur.Close()
		}
	}()

	i := 0
	depth := 0 // directories descended below d
	for ; i < len(comps); i++ {
		c := comps[i]
		if c.kind == componentRoot {
			if !pol.allowAbsolute {
				return nil, errPathError("mkdirat", path, unix.EXDEV)
			}
			continue
		}
		name := c.String()
		if c.kind == componentParent {
			if depth == 0 {
				// ".." at d itself: InRoot stays at d, otherwise escaping.
				if pol.allowAbsolute {
					continue
				}
				return nil, errPathError("mkdirat", path, unix.EXDEV)
			}
			name = ".."
		}
		next, err := cur.openatRaw(name, interiorOpenFlags|unix.O_NOFOLLOW, 0)
		if err != nil {
			if errno, _ := errnoOf(err); errno == unix.ENOENT {
				break
			}
			return nil, err
		}
		_ = cur.Close()
		cur = next
		if c.kind == componentParent {
			depth--
		} else {
			depth++
		}
	}

	if st, err := cur.statSelf(); err != nil {
		return nil, err
	} else if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return nil, errPathError("mkdirat", cur.Name(), unix.ENOTDIR)
	}

	for ; i < len(comps); i++ {
		c := comps[i]
		if c.kind != componentName {
			// A ".." or "/" appearing after the first yet-to-be-created
			// component has no well-defined target: there is nothing to
			// walk back up into that we just created ourselves.
			return nil, errPathError("mkdirat", path, unix.ENOENT)
		}

		if err := cur.mkdiratRaw(c.name, mode); err != nil {
			return nil, err
		}
		next, err := cur.openatRaw(c.name, interiorOpenFlags|unix.O_NOFOLLOW, 0)
		if err != nil {
			return nil, err
		}
		_ = cur.Close()
		cur = next
	}
	return cur, nil
}
