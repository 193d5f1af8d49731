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

// Package plan contains the relational plan tree the optimizer rewrites.
/*
A plan is built by the resolver and handed to the optimizer, which applies
rule after rule until nothing changes any more. Every rule follows the same
pattern:
1. Search
   Locate rewrite targets with FindNodePreOrder, FindAllNodes and FindParent.
   Searches take a union of node types to match and a union of types to stop
   at, which scopes a rule to one query block or one source without counting
   recursion depth.
2. Edit
   Change the shape with AttachFirst/AttachLast, CutFirst/CutLast, InsertNode,
   RemoveChildNode, ReplaceNode and ReplaceNodeChain. Each of these keeps
   parent and child links consistent, so a rule never patches links itself.

Nodes live in an arena owned by a Tree and are addressed by NodeID handles.
Only the methods of Tree can link nodes, which makes it impossible for code
outside this package to create a node with two parents or a child that does
not point back at its parent.

Misusing the editor (attaching a node that already has a parent, asking for
the sibling of a node whose parent has three children, ...) is a bug in the
calling rule. Such calls panic with a qmerrors.Bug error before touching the
tree; the optimizer recovers the panic at the end of the pass. Outcomes like
"nothing found" or "no child to cut" are reported with None.

A Tree has no internal locking and must only be used by one goroutine at a
time. The package has no global mutable state, so independent trees can be
planned in parallel.
*/
package plan

import (
	"maps"
	"slices"

	"querymesh.io/querymesh/go/qm/qmerrors"
)

// NodeID is a handle to a node of a Tree. Handles stay valid for the lifetime
// of the tree that returned them and mean nothing to any other tree.
type NodeID int32

// None is the absent node.
const None NodeID = 0

type node struct {
	typ      Type
	parent   NodeID
	children []NodeID
	props    map[Info]any
	groups   GroupSet
}

// Tree is an arena of plan nodes.
type Tree struct {
	// nodes[0] backs None and is never handed out
	nodes []node

	groupNames []string
	groupIDs   map[string]GroupID
}

// NewTree returns an empty tree. The zero Tree is ready to use as well.
func NewTree() *Tree {
	return &Tree{
		nodes:    make([]node, 1, 16),
		groupIDs: map[string]GroupID{},
	}
}

// NewNode creates a detached node of the given type.
func (t *Tree) NewNode(typ Type) NodeID {
	if !typ.IsSingle() {
		panic(qmerrors.Bug("plan node type must be a single kind, got %s", typ))
	}
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, node{})
	}
	t.nodes = append(t.nodes, node{typ: typ})
	return NodeID(len(t.nodes) - 1)
}

// Len returns the number of nodes ever created in the tree.
func (t *Tree) Len() int {
	return max(len(t.nodes)-1, 0)
}

func (t *Tree) node(id NodeID) *node {
	if id <= None || int(id) >= len(t.nodes) {
		panic(qmerrors.Bug("node %d does not belong to this plan tree", id))
	}
	return &t.nodes[id]
}

// Type returns the kind of n.
func (t *Tree) Type(n NodeID) Type {
	return t.node(n).typ
}

// SetType changes the kind of n. typ must be a single kind.
func (t *Tree) SetType(n NodeID, typ Type) {
	if !typ.IsSingle() {
		panic(qmerrors.Bug("plan node type must be a single kind, got %s", typ))
	}
	t.node(n).typ = typ
}

// Parent returns the parent of n, or None for a root.
func (t *Tree) Parent(n NodeID) NodeID {
	return t.node(n).parent
}

// Root walks up from n to the root of its tree.
func (t *Tree) Root(n NodeID) NodeID {
	for p := t.node(n).parent; p != None; p = t.nodes[p].parent {
		n = p
	}
	return n
}

// ChildCount returns the number of children of n.
func (t *Tree) ChildCount(n NodeID) int {
	return len(t.node(n).children)
}

// FirstChild returns the first child of n, or None.
func (t *Tree) FirstChild(n NodeID) NodeID {
	children := t.node(n).children
	if len(children) == 0 {
		return None
	}
	return children[0]
}

// LastChild returns the last child of n, or None.
func (t *Tree) LastChild(n NodeID) NodeID {
	children := t.node(n).children
	if len(children) == 0 {
		return None
	}
	return children[len(children)-1]
}

// ChildAt returns the i-th child of n, or None when out of range.
func (t *Tree) ChildAt(n NodeID, i int) NodeID {
	children := t.node(n).children
	if i < 0 || i >= len(children) {
		return None
	}
	return children[i]
}

// Children returns a copy of the ordered children of n.
func (t *Tree) Children(n NodeID) []NodeID {
	return slices.Clone(t.node(n).children)
}

// Property returns the value stored under key on n.
func (t *Tree) Property(n NodeID, key Info) (any, bool) {
	v, ok := t.node(n).props[key]
	return v, ok
}

// HasProperty reports whether key is set on n.
func (t *Tree) HasProperty(n NodeID, key Info) bool {
	_, ok := t.node(n).props[key]
	return ok
}

// SetProperty stores value under key on n, replacing any previous value.
func (t *Tree) SetProperty(n NodeID, key Info, value any) {
	nd := t.node(n)
	if nd.props == nil {
		nd.props = map[Info]any{}
	}
	nd.props[key] = value
}

// RemoveProperty deletes key from n and returns the old value.
func (t *Tree) RemoveProperty(n NodeID, key Info) (any, bool) {
	nd := t.node(n)
	v, ok := nd.props[key]
	delete(nd.props, key)
	return v, ok
}

// PropertyKeys returns the keys set on n in ascending order.
func (t *Tree) PropertyKeys(n NodeID) []Info {
	return slices.Sorted(maps.Keys(t.node(n).props))
}

// Group returns the id of the group with the given name, allocating a new id
// the first time a name is seen.
func (t *Tree) Group(name string) GroupID {
	if id, ok := t.groupIDs[name]; ok {
		return id
	}
	if t.groupIDs == nil {
		t.groupIDs = map[string]GroupID{}
	}
	id := GroupID(len(t.groupNames))
	t.groupNames = append(t.groupNames, name)
	t.groupIDs[name] = id
	return id
}

// GroupName returns the name id was allocated for, or "" for an unknown id.
func (t *Tree) GroupName(id GroupID) string {
	if id < 0 || int(id) >= len(t.groupNames) {
		return ""
	}
	return t.groupNames[id]
}

// Groups returns the groups n computes over.
func (t *Tree) Groups(n NodeID) GroupSet {
	return t.node(n).groups
}

// SetGroups replaces the groups of n.
func (t *Tree) SetGroups(n NodeID, gs GroupSet) {
	t.node(n).groups = gs
}

// AddGroup adds id to the groups of n.
func (t *Tree) AddGroup(n NodeID, id GroupID) {
	nd := t.node(n)
	nd.groups = nd.groups.With(id)
}

// AddGroups adds every group of gs to the groups of n.
func (t *Tree) AddGroups(n NodeID, gs GroupSet) {
	nd := t.node(n)
	nd.groups = nd.groups.Merge(gs)
}
