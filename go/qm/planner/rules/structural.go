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

package rules

import (
	"fmt"

	"querymesh.io/querymesh/go/qm/log"
	"querymesh.io/querymesh/go/qm/planner/optimizer"
	"querymesh.io/querymesh/go/qm/planner/plan"
)

// collapseDupRemove unwraps a DupRemove whose parent already removes
// duplicates.
func collapseDupRemove(t *plan.Tree, root plan.NodeID) (plan.NodeID, *optimizer.ApplyResult) {
	var res *optimizer.ApplyResult
	for _, n := range t.FindAllNodes(root, plan.DupRemove, plan.NoType) {
		parent := t.Parent(n)
		if parent == plan.None || t.Type(parent) != plan.DupRemove {
			continue
		}
		t.RemoveChildNode(parent, n)
		res = res.Merge(optimizer.Rewrote(fmt.Sprintf("removed dup removal %d below %d", n, parent)))
	}
	return root, res
}

// sortTransparent are the kinds an outer Sort reorders through.
const sortTransparent = plan.Project | plan.Select

// removeShadowedSort drops a Sort whose output is reordered by an ancestor
// Sort with nothing but projections and selections in between.
func removeShadowedSort(t *plan.Tree, root plan.NodeID) (plan.NodeID, *optimizer.ApplyResult) {
	var res *optimizer.ApplyResult
	for _, n := range t.FindAllNodes(root, plan.Sort, plan.NoType) {
		if n == root {
			continue
		}
		outer := t.FindParent(n, plan.Sort, plan.AllTypes&^sortTransparent)
		if outer == plan.None {
			continue
		}
		t.RemoveChildNode(t.Parent(n), n)
		res = res.Merge(optimizer.Rewrote(fmt.Sprintf("removed sort %d shadowed by sort %d", n, outer)))
	}
	return root, res
}

// pushLimitBelowProject swaps a TupleLimit with the Project directly beneath
// it, so that rows are cut before they are projected.
func pushLimitBelowProject(t *plan.Tree, root plan.NodeID) (plan.NodeID, *optimizer.ApplyResult) {
	var res *optimizer.ApplyResult
	for _, limit := range t.FindAllNodes(root, plan.TupleLimit, plan.NoType) {
		if t.ChildCount(limit) != 1 {
			continue
		}
		project := t.FirstChild(limit)
		if t.Type(project) != plan.Project {
			continue
		}

		t.RemoveChildNode(limit, project)
		if parent := t.Parent(limit); parent != plan.None {
			t.InsertNode(parent, limit, project)
		} else {
			t.AttachLast(project, limit)
			root = project
		}
		res = res.Merge(optimizer.Rewrote(fmt.Sprintf("pushed limit %d below project %d", limit, project)))
	}
	return root, res
}

// raiseNull turns an inner or cross join with an empty input into an empty
// node.
func raiseNull(t *plan.Tree, root plan.NodeID) (plan.NodeID, *optimizer.ApplyResult) {
	var res *optimizer.ApplyResult
	for _, join := range t.FindAllNodes(root, plan.Join, plan.NoType) {
		// an earlier replacement may have cut this join loose
		if !isWithin(t, join, root) {
			continue
		}
		if t.ChildCount(join) != 2 || !isInnerOrCross(t, join) {
			continue
		}
		empty := t.FindNodePreOrder(t.FirstChild(join), plan.Null, plan.AllTypes)
		if empty == plan.None {
			empty = t.FindNodePreOrder(t.LastChild(join), plan.Null, plan.AllTypes)
		}
		if empty == plan.None {
			continue
		}

		other := t.Sibling(empty)
		t.Detach(empty)
		t.Detach(other)
		t.AddGroups(empty, t.Groups(join))
		t.ReplaceNode(join, empty)
		if join == root {
			root = empty
		}
		if log.V(3) {
			log.Infof("raise-null: join %d replaced by empty node %d", join, empty)
		}
		res = res.Merge(optimizer.Rewrote(fmt.Sprintf("replaced join %d with empty node %d", join, empty)))
	}
	return root, res
}

func isWithin(t *plan.Tree, n, root plan.NodeID) bool {
	for ; n != plan.None; n = t.Parent(n) {
		if n == root {
			return true
		}
	}
	return false
}

func isInnerOrCross(t *plan.Tree, join plan.NodeID) bool {
	v, ok := t.Property(join, plan.JoinType)
	if !ok {
		return true
	}
	switch v {
	case plan.JoinInner, plan.JoinCross:
		return true
	}
	return false
}

// splitAccessProjection gives an Access node that still carries its own
// filter an explicit Project and Select beneath it. The Access keeps its
// output columns, the Select takes the filter and the Project lists the
// output columns.
func splitAccessProjection(t *plan.Tree, root plan.NodeID) (plan.NodeID, *optimizer.ApplyResult) {
	var res *optimizer.ApplyResult
	for _, access := range t.FindAllNodes(root, plan.Access, plan.NoType) {
		cols, ok := t.Property(access, plan.OutputCols)
		if !ok || !t.HasProperty(access, plan.SelectCriteria) {
			continue
		}
		if hasProjectBelow(t, access) {
			continue
		}

		criteria, _ := t.Property(access, plan.SelectCriteria)
		groups := t.Groups(access)

		head := t.NewNode(plan.Access)
		for _, key := range t.PropertyKeys(access) {
			if key == plan.SelectCriteria {
				continue
			}
			v, _ := t.Property(access, key)
			t.SetProperty(head, key, v)
		}
		project := t.NewNode(plan.Project)
		t.SetProperty(project, plan.ProjectCols, cols)
		sel := t.NewNode(plan.Select)
		t.SetProperty(sel, plan.SelectCriteria, criteria)
		for _, n := range []plan.NodeID{head, project, sel} {
			t.SetGroups(n, groups)
		}

		t.ReplaceNodeChain(access, []plan.NodeID{head, project, sel})
		if access == root {
			root = head
		}
		res = res.Merge(optimizer.Rewrote(fmt.Sprintf("split projection and selection out of access %d", access)))
	}
	return root, res
}

func hasProjectBelow(t *plan.Tree, access plan.NodeID) bool {
	for _, child := range t.Children(access) {
		if t.FindNodePreOrder(child, plan.Project, plan.Access) != plan.None {
			return true
		}
	}
	return false
}
