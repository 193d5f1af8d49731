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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// root(Project) -> source1(Access) -> join -> source2(Access)
func buildAccessChain() (tr *Tree, root, source1, join, source2 NodeID) {
	tr = NewTree()
	root = tr.NewNode(Project)
	source1 = tr.NewNode(Access)
	join = tr.NewNode(Join)
	source2 = tr.NewNode(Access)
	tr.AttachLast(root, source1)
	tr.AttachLast(source1, join)
	tr.AttachLast(join, source2)
	return
}

func TestFindNodePreOrderStopTypes(t *testing.T) {
	tr, root, source1, join, source2 := buildAccessChain()

	assert.Equal(t, source1, tr.FindNodePreOrder(root, Access, Access))
	assert.Equal(t, source1, tr.FindNodePreOrder(root, Access, NoType))
	assert.Equal(t, None, tr.FindNodePreOrder(root, Join, Access), "join sits below the stop boundary")
	assert.Equal(t, join, tr.FindNodePreOrder(root, Join, NoType))
	assert.Equal(t, source2, tr.FindNodePreOrder(join, Access, Access))
	assert.Equal(t, root, tr.FindNodePreOrder(root, Project|Access, NoType))
	assert.Equal(t, None, tr.FindNodePreOrder(root, NoType, NoType), "NoType matches nothing")
	assert.Equal(t, None, tr.FindNodePreOrder(root, Sort, NoType))

	assert.Equal(t, []NodeID{source1}, tr.FindAllNodes(root, Access, Access))
	assert.Equal(t, []NodeID{source1, source2}, tr.FindAllNodes(root, Access, NoType))
	assert.Empty(t, tr.FindAllNodes(root, Join|Access, Project))
	assert.Equal(t, []NodeID{root}, tr.FindAllNodes(root, Project, Project))
}

func TestFindNodePreOrderLeftBeforeRight(t *testing.T) {
	tr := NewTree()
	join := tr.NewNode(Join)
	left, right := tr.NewNode(Select), tr.NewNode(Select)
	deepLeft := tr.NewNode(Sort)
	shallowRight := tr.NewNode(Sort)
	tr.AttachLast(join, left)
	tr.AttachLast(join, right)
	tr.AttachLast(left, tr.NewNode(Project))
	tr.AttachLast(tr.FirstChild(left), deepLeft)
	tr.AttachLast(right, shallowRight)

	assert.Equal(t, deepLeft, tr.FindNodePreOrder(join, Sort, NoType))
	assert.Equal(t, shallowRight, tr.FindNodePreOrder(join, Sort, Project))
}

func TestFindAllNodesPreOrder(t *testing.T) {
	tr := NewTree()
	top := tr.NewNode(Sort)
	join := tr.NewNode(Join)
	left := tr.NewNode(Project)
	midSort := tr.NewNode(Sort)
	deepSort := tr.NewNode(Sort)
	right := tr.NewNode(Access)
	tr.AttachLast(top, join)
	tr.AttachLast(join, left)
	tr.AttachLast(join, right)
	tr.AttachLast(left, midSort)
	tr.AttachLast(midSort, tr.NewNode(Select))
	tr.AttachLast(tr.FirstChild(midSort), deepSort)
	rightSort := tr.NewNode(Sort)
	tr.AttachLast(right, rightSort)

	assert.Equal(t, []NodeID{top, midSort, deepSort, rightSort}, tr.FindAllNodes(top, Sort, NoType))
	assert.Equal(t, []NodeID{top, midSort, rightSort}, tr.FindAllNodes(top, Sort, Select))
	assert.Equal(t, []NodeID{top, midSort}, tr.FindAllNodes(top, Sort, Access|Select))

	var all []NodeID
	require.NoError(t, tr.VisitPreOrder(top, func(n NodeID) error {
		all = append(all, n)
		return nil
	}))
	assert.Equal(t, all, tr.FindAllNodes(top, AllTypes, NoType))
	assert.Len(t, all, 8)
}

func TestFindParent(t *testing.T) {
	tr, root, source1, join, source2 := buildAccessChain()

	assert.Equal(t, join, tr.FindParent(source2, Join, NoType))
	assert.Equal(t, source1, tr.FindParent(source2, Access, NoType), "starts strictly above the node")
	assert.Equal(t, root, tr.FindParent(source2, Project, NoType))
	assert.Equal(t, None, tr.FindParent(source2, Project, Access))
	assert.Equal(t, source1, tr.FindParent(source2, Access|Project, Access), "a match wins over the stop")
	assert.Equal(t, None, tr.FindParent(root, AllTypes, NoType), "roots have no ancestors")
	assert.Equal(t, None, tr.FindParent(source2, Sort, NoType))
}

func TestVisitPreOrderStopsOnError(t *testing.T) {
	tr, root, source1, _, _ := buildAccessChain()
	stop := errors.New("stop")
	var seen []NodeID
	err := tr.VisitPreOrder(root, func(n NodeID) error {
		seen = append(seen, n)
		if n == source1 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []NodeID{root, source1}, seen)
}
