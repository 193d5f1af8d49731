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

// A node whose type is in both types and stopTypes is still matched by the
// searches below; the stop mask only keeps them from going past it.

// FindNodePreOrder returns the first node, parent before children and left
// before right, whose type is in types. The search does not descend below
// nodes whose type is in stopTypes. It returns None if nothing matches.
func (t *Tree) FindNodePreOrder(root NodeID, types, stopTypes Type) NodeID {
	nd := t.node(root)
	switch {
	case types.Contains(nd.typ):
		return root
	case stopTypes.Contains(nd.typ):
		return None
	}
	for _, child := range nd.children {
		if found := t.FindNodePreOrder(child, types, stopTypes); found != None {
			return found
		}
	}
	return None
}

// FindAllNodes returns, in pre-order, every node whose type is in types,
// without descending below nodes whose type is in stopTypes.
func (t *Tree) FindAllNodes(root NodeID, types, stopTypes Type) []NodeID {
	var found []NodeID
	t.findAll(root, types, stopTypes, &found)
	return found
}

func (t *Tree) findAll(n NodeID, types, stopTypes Type, found *[]NodeID) {
	nd := t.node(n)
	if types.Contains(nd.typ) {
		*found = append(*found, n)
	}
	if stopTypes.Contains(nd.typ) {
		return
	}
	for _, child := range nd.children {
		t.findAll(child, types, stopTypes, found)
	}
}

// FindParent walks up from the parent of n and returns the first ancestor
// whose type is in types. It returns None when it reaches the root, or an
// ancestor whose type is in stopTypes, without a match.
func (t *Tree) FindParent(n NodeID, types, stopTypes Type) NodeID {
	for p := t.node(n).parent; p != None; p = t.nodes[p].parent {
		typ := t.nodes[p].typ
		if types.Contains(typ) {
			return p
		}
		if stopTypes.Contains(typ) {
			return None
		}
	}
	return None
}

// VisitPreOrder calls visit for every node below and including root, parent
// before children. It stops at the first error and returns it.
func (t *Tree) VisitPreOrder(root NodeID, visit func(NodeID) error) error {
	if err := visit(root); err != nil {
		return err
	}
	for _, child := range t.Children(root) {
		if err := t.VisitPreOrder(child, visit); err != nil {
			return err
		}
	}
	return nil
}
