/*
Copyright 2026 The QueryMesh Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package plan

import (
	"maps"
	"slices"

	"github.com/gammazero/deque"

	"querymesh.io/querymesh/go/qm/qmerrors"
)

// Verify walks the tree below root and checks that it is well formed: every
// node has a single kind, every child points back at the parent listing it,
// and no node is reachable twice. It returns an INTERNAL error describing the
// first problem found.
func (t *Tree) Verify(root NodeID) error {
	if root <= None || int(root) >= len(t.nodes) {
		return qmerrors.Errorf(qmerrors.Internal, "malformed plan: root %d does not belong to the tree", root)
	}
	if p := t.nodes[root].parent; p != None {
		if n := countOf(t.nodes[p].children, root); n != 1 {
			return qmerrors.Errorf(qmerrors.Internal, "malformed plan: node %d is listed %d times by its parent %d", root, n, p)
		}
	}

	seen := map[NodeID]struct{}{root: {}}
	var queue deque.Deque[NodeID]
	queue.PushBack(root)
	for queue.Len() > 0 {
		n := queue.PopFront()
		nd := &t.nodes[n]
		if !nd.typ.IsSingle() {
			return qmerrors.Errorf(qmerrors.Internal, "malformed plan: node %d has type %s", n, nd.typ)
		}
		for _, child := range nd.children {
			if child <= None || int(child) >= len(t.nodes) {
				return qmerrors.Errorf(qmerrors.Internal, "malformed plan: node %d has unknown child %d", n, child)
			}
			if _, dup := seen[child]; dup {
				return qmerrors.Errorf(qmerrors.Internal, "malformed plan: node %d is reachable more than once", child)
			}
			if p := t.nodes[child].parent; p != n {
				return qmerrors.Errorf(qmerrors.Internal, "malformed plan: node %d is a child of %d but points at parent %d", child, n, p)
			}
			seen[child] = struct{}{}
			queue.PushBack(child)
		}
	}
	return nil
}

func countOf(ids []NodeID, id NodeID) (n int) {
	for _, x := range ids {
		if x == id {
			n++
		}
	}
	return
}

// Clone copies the subtree below root into a new tree and returns it with the
// id of the copied root. Group ids are preserved. Property values are copied
// by reference, so rules must replace property values instead of mutating them.
func (t *Tree) Clone(root NodeID) (*Tree, NodeID) {
	t.node(root)
	out := &Tree{
		nodes:      make([]node, 1, len(t.nodes)),
		groupNames: slices.Clone(t.groupNames),
		groupIDs:   maps.Clone(t.groupIDs),
	}
	return out, out.copyFrom(t, root, None)
}

func (t *Tree) copyFrom(src *Tree, n, parent NodeID) NodeID {
	from := &src.nodes[n]
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		typ:    from.typ,
		parent: parent,
		props:  maps.Clone(from.props),
		groups: from.groups,
	})
	children := make([]NodeID, 0, len(from.children))
	for _, child := range from.children {
		children = append(children, t.copyFrom(src, child, id))
	}
	t.nodes[id].children = children
	return id
}
