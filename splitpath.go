// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import (
	"strings"

	"golang.org/x/sys/unix"
)

// endsInDotDot reports whether path's final component (ignoring a trailing
// "/") is exactly "..".
func endsInDotDot(path string) bool {
	trimmed := strings.TrimSuffix(path, "/")
	last := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		last = trimmed[idx+1:]
	}
	return last == ".."
}

// basenameSplit splits path into (final-name, parent-directory-string),
// operating purely lexically on the byte representation. A trailing "/" on
// the final name is preserved (it forces directory semantics on whatever
// *at(2) syscall eventually uses the name). If path's final component is
// "..", there is no basename to extract (ok is false).
func basenameSplit(path string) (name, parent string, ok bool) {
	if endsInDotDot(path) {
		return "", "", false
	}
	trimmed := strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return path, "", true
	}
	return path[idx+1:], path[:idx], true
}

// splitPath obtains a (containing-directory-handle, final-name) pair for the
// create/remove/stat/symlink/readlink/hardlink/rename family of operations,
// so that each can be performed with a single primitive *at(2) syscall. See
// spec for the four possible return shapes:
//
//   - (nil, nil): the whole path resolves to base itself.
//   - (parent, &name): a final name component with a non-trivial parent.
//   - (nil, &name): the parent is base itself.
//   - (parent, nil): path ends in ".." (ALLOW_PARENT_COMPONENTS required);
//     parent is the full resolution, there is no final name.
func splitPath(base *DirHandle, path string, flags LookupFlags) (*DirHandle, *string, error) {
	pol := derivePolicy(flags)

	if strings.HasPrefix(path, "/") {
		if !pol.allowAbsolute {
			return nil, nil, errPathError("resolve", path, unix.EXDEV)
		}
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			// Just "/".
			return nil, nil, nil
		}
	} else if path == "" {
		return nil, nil, errPathError("resolve", path, unix.ENOENT)
	}

	// A path made up entirely of droppable components ("." or redundant
	// slashes, e.g. ".", "./.", "a/../." under AllowParentComponents)
	// resolves to the base itself, the same as a bare "/" above -- it must
	// not fall through to basenameSplit, which operates lexically and would
	// otherwise treat a lone "." as a literal child name.
	if len(parsePath(path)) == 0 {
		return nil, nil, nil
	}

	if name, parent, ok := basenameSplit(path); ok {
		if parent == "" {
			return nil, &name, nil
		}
		parentHandle, err := base.OpenSubdir(parent, flags)
		if err != nil {
			return nil, nil, err
		}
		return parentHandle, &name, nil
	}

	// path's final component is "..": no (dir, name) pair is meaningful,
	// since there is no unlink-style primitive that accepts ".." as a name.
	if !pol.allowParent {
		return nil, nil, errPathError("resolve", path, unix.EXDEV)
	}
	dir, err := base.OpenSubdir(path, flags)
	if err != nil {
		return nil, nil, err
	}
	return dir, nil, nil
}
