// Copyright (C) 2025 Aleksa Sarai <cyphar@cyphar.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolveat

import "strings"

// componentKind distinguishes the four kinds of path component the resolver
// can see: a leading "/", a "..", a "." (which is dropped at parse time and
// never appears in a parsed component slice), and an ordinary name.
type componentKind int

const (
	componentName componentKind = iota
	componentRoot
	componentParent
)

// component is a single parsed path element. CurrentRef (".") components are
// dropped during parsing and so never appear as a component value -- this
// mirrors spec's "CurrentRef (ignored)" component kind by simply never
// materialising it.
type component struct {
	kind componentKind
	name string // only meaningful when kind == componentName
}

func (c component) String() string {
	switch c.kind {
	case componentRoot:
		return "/"
	case componentParent:
		return ".."
	default:
		return c.name
	}
}

// parsePath splits path into an ordered sequence of components. A leading
// "/" becomes a single componentRoot token; "." components are dropped;
// empty components (from "//" or a trailing "/") are dropped; everything
// else becomes either componentParent or componentName.
func parsePath(path string) []component {
	var comps []component
	if strings.HasPrefix(path, "/") {
		comps = append(comps, component{kind: componentRoot})
	}
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "", ".":
			// Dropped: "//" collapses, and "." never needs to be walked.
		case "..":
			comps = append(comps, component{kind: componentParent})
		default:
			comps = append(comps, component{kind: componentName, name: part})
		}
	}
	return comps
}
