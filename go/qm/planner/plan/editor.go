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
	"slices"

	"querymesh.io/querymesh/go/qm/qmerrors"
)

// attachAt and detachAt are the only places that write parent or children
// links. Every exported editing method validates its preconditions first and
// then composes these two, so a failed precondition never leaves a torn tree.

func (t *Tree) attachAt(parent NodeID, idx int, child NodeID) {
	p := &t.nodes[parent]
	p.children = slices.Insert(p.children, idx, child)
	t.nodes[child].parent = parent
}

func (t *Tree) detachAt(parent NodeID, idx int) NodeID {
	p := &t.nodes[parent]
	child := p.children[idx]
	p.children = slices.Delete(p.children, idx, idx+1)
	t.nodes[child].parent = None
	return child
}

// childIndex returns the position of child under parent and panics if child
// is not one of parent's children.
func (t *Tree) childIndex(parent, child NodeID) int {
	p := t.node(parent)
	t.node(child)
	idx := slices.Index(p.children, child)
	if idx < 0 {
		panic(qmerrors.Bug("node %d is not a child of node %d", child, parent))
	}
	return idx
}

// mustBeDetached panics unless n has no parent and is not an ancestor of
// (or equal to) under.
func (t *Tree) mustBeDetached(n, under NodeID) {
	if p := t.node(n).parent; p != None {
		panic(qmerrors.Bug("node %d is already attached to node %d", n, p))
	}
	for a := under; a != None; a = t.nodes[a].parent {
		if a == n {
			panic(qmerrors.Bug("attaching node %d below node %d would create a cycle", n, under))
		}
	}
}

// AttachFirst makes child the first child of parent. A None child is ignored.
func (t *Tree) AttachFirst(parent, child NodeID) {
	t.node(parent)
	if child == None {
		return
	}
	t.mustBeDetached(child, parent)
	t.attachAt(parent, 0, child)
}

// AttachLast makes child the last child of parent. A None child is ignored.
func (t *Tree) AttachLast(parent, child NodeID) {
	p := t.node(parent)
	if child == None {
		return
	}
	t.mustBeDetached(child, parent)
	t.attachAt(parent, len(p.children), child)
}

// CutFirst detaches and returns the first child of n, or None if n has no
// children.
func (t *Tree) CutFirst(n NodeID) NodeID {
	if len(t.node(n).children) == 0 {
		return None
	}
	return t.detachAt(n, 0)
}

// CutLast detaches and returns the last child of n, or None if n has no
// children.
func (t *Tree) CutLast(n NodeID) NodeID {
	children := t.node(n).children
	if len(children) == 0 {
		return None
	}
	return t.detachAt(n, len(children)-1)
}

// Detach removes n, with its subtree, from its parent. Roots are left alone.
func (t *Tree) Detach(n NodeID) {
	p := t.node(n).parent
	if p == None {
		return
	}
	t.detachAt(p, t.childIndex(p, n))
}

// InsertNode splices insert between parent and its existing child: insert
// takes child's position among parent's children and child becomes insert's
// only child. insert must be detached and childless.
func (t *Tree) InsertNode(parent, child, insert NodeID) {
	idx := t.childIndex(parent, child)
	t.mustBeDetached(insert, parent)
	if n := len(t.nodes[insert].children); n > 0 {
		panic(qmerrors.Bug("inserted node %d already has %d children", insert, n))
	}

	t.detachAt(parent, idx)
	t.attachAt(parent, idx, insert)
	t.attachAt(insert, len(t.nodes[insert].children), child)
}

// RemoveChildNode unwraps child: its children take its place among parent's
// children, in their original order, and child is left with neither parent
// nor children.
func (t *Tree) RemoveChildNode(parent, child NodeID) {
	idx := t.childIndex(parent, child)

	t.detachAt(parent, idx)
	for k := 0; len(t.nodes[child].children) > 0; k++ {
		t.attachAt(parent, idx+k, t.detachAt(child, 0))
	}
}

// ReplaceNode puts replacement at the position of original and moves all of
// original's children, in order, after any children replacement already has.
// original ends up with neither parent nor children. replacement must be
// detached.
func (t *Tree) ReplaceNode(original, replacement NodeID) {
	t.ReplaceNodeChain(original, []NodeID{replacement})
}

// ReplaceNodeChain links chain into a line, each node becoming the last child
// of the one before it, puts the head of the chain at the position of
// original and moves original's children, in order, to the tail. Every chain
// node must be detached and all but the tail must be childless. An empty
// chain is a bug.
func (t *Tree) ReplaceNodeChain(original NodeID, chain []NodeID) {
	orig := t.node(original)
	if len(chain) == 0 {
		panic(qmerrors.Bug("replacing node %d with an empty chain", original))
	}
	seen := make(map[NodeID]struct{}, len(chain))
	for i, n := range chain {
		if n == original {
			panic(qmerrors.Bug("replacing node %d with itself", original))
		}
		if _, dup := seen[n]; dup {
			panic(qmerrors.Bug("node %d appears twice in replacement chain", n))
		}
		seen[n] = struct{}{}
		t.mustBeDetached(n, original)
		if i < len(chain)-1 && len(t.nodes[n].children) > 0 {
			panic(qmerrors.Bug("replacement chain node %d already has children", n))
		}
	}

	head, tail := chain[0], chain[len(chain)-1]
	for i := 0; i+1 < len(chain); i++ {
		t.attachAt(chain[i], 0, chain[i+1])
	}
	if parent := orig.parent; parent != None {
		idx := t.childIndex(parent, original)
		t.detachAt(parent, idx)
		t.attachAt(parent, idx, head)
	}
	for len(t.nodes[original].children) > 0 {
		t.attachAt(tail, len(t.nodes[tail].children), t.detachAt(original, 0))
	}
}

// Sibling returns the other child of n's parent, or None if n is a root or an
// only child. The parent must have at most two children.
func (t *Tree) Sibling(n NodeID) NodeID {
	parent := t.node(n).parent
	if parent == None {
		return None
	}
	children := t.nodes[parent].children
	switch len(children) {
	case 1:
		return None
	case 2:
		if children[0] == n {
			return children[1]
		}
		return children[0]
	default:
		panic(qmerrors.Bug("node %d has %d children, sibling lookup needs at most 2", parent, len(children)))
	}
}
