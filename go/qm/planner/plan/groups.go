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
	"fmt"
	"iter"
	"strings"

	"querymesh.io/querymesh/go/qm/planner/plan/bitset"
)

// GroupID identifies a table or alias reference. Ids are handed out per tree
// by Tree.Group and carry no meaning beyond identity.
type GroupID int

// GroupSet is an immutable set of groups.
type GroupSet bitset.Bitset

// NewGroupSet returns a set holding the given groups.
func NewGroupSet(ids ...GroupID) GroupSet {
	offsets := make([]int, len(ids))
	for i, id := range ids {
		offsets[i] = int(id)
	}
	return GroupSet(bitset.Build(offsets...))
}

// Has reports whether id is in the set.
func (gs GroupSet) Has(id GroupID) bool {
	return bitset.Bitset(gs).Has(int(id))
}

// With returns a set that also holds id.
func (gs GroupSet) With(id GroupID) GroupSet {
	return GroupSet(bitset.Bitset(gs).Set(int(id)))
}

// Without returns a set without id.
func (gs GroupSet) Without(id GroupID) GroupSet {
	return GroupSet(bitset.Bitset(gs).Clear(int(id)))
}

// Merge returns the union of both sets.
func (gs GroupSet) Merge(other GroupSet) GroupSet {
	return GroupSet(bitset.Bitset(gs).Or(bitset.Bitset(other)))
}

// Remove returns the groups of gs that are not in other.
func (gs GroupSet) Remove(other GroupSet) GroupSet {
	return GroupSet(bitset.Bitset(gs).AndNot(bitset.Bitset(other)))
}

// IsOverlapping returns true if at least one group exists in both sets.
func (gs GroupSet) IsOverlapping(other GroupSet) bool {
	return bitset.Bitset(gs).Overlaps(bitset.Bitset(other))
}

// IsSolvedBy returns true if all of gs is contained in other.
func (gs GroupSet) IsSolvedBy(other GroupSet) bool {
	return bitset.Bitset(gs).IsContainedBy(bitset.Bitset(other))
}

// IsEmpty reports whether the set holds no groups.
func (gs GroupSet) IsEmpty() bool { return len(gs) == 0 }

// Len returns the number of groups in the set.
func (gs GroupSet) Len() int { return bitset.Bitset(gs).Popcount() }

// All yields the ids in ascending order.
func (gs GroupSet) All() iter.Seq[GroupID] {
	return func(yield func(GroupID) bool) {
		for off := range bitset.Bitset(gs).All() {
			if !yield(GroupID(off)) {
				return
			}
		}
	}
}

// Format formats the GroupSet.
func (gs GroupSet) Format(f fmt.State, _ rune) {
	var sb strings.Builder
	sb.WriteString("GroupSet{")
	first := true
	for id := range gs.All() {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&sb, "%d", id)
	}
	sb.WriteByte('}')
	fmt.Fprint(f, sb.String())
}
