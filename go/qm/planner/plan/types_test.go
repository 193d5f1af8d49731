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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querymesh.io/querymesh/go/qm/qmerrors"
)

func TestTypeBitsAreDistinct(t *testing.T) {
	var union Type
	for i := range typeNames {
		k := Type(1) << i
		assert.True(t, k.IsSingle(), k.String())
		assert.Zero(t, union&k, "kind %s overlaps another kind", k)
		union |= k
	}
	assert.Equal(t, AllTypes, union)
}

func TestTypeContains(t *testing.T) {
	tcs := []struct {
		types Type
		k     Type
		want  bool
	}{
		{Access | Join, Access, true},
		{Access | Join, Join, true},
		{Access | Join, Sort, false},
		{AllTypes, DependentProject, true},
		{NoType, Access, false},
		{Project, Project, true},
	}
	for _, tc := range tcs {
		t.Run(fmt.Sprintf("%s in %s", tc.k, tc.types), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.types.Contains(tc.k))
		})
	}
}

func TestTypeIsSingle(t *testing.T) {
	assert.True(t, Sort.IsSingle())
	assert.False(t, NoType.IsSingle())
	assert.False(t, (Sort | Join).IsSingle())
	assert.False(t, AllTypes.IsSingle())
	assert.False(t, Type(1<<20).IsSingle())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "NoType", NoType.String())
	assert.Equal(t, "Join", Join.String())
	assert.Equal(t, "Access|Join|Sort", (Sort | Access | Join).String())
	assert.Equal(t, "Null|Unknown", (Null | Type(1<<30)).String())
}

func TestParseType(t *testing.T) {
	tcs := []struct {
		in   string
		want Type
	}{
		{"", NoType},
		{"NoType", NoType},
		{"join", Join},
		{"Access | SORT", Access | Sort},
		{"DependentProject|TupleLimit", DependentProject | TupleLimit},
	}
	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseType(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for k := Type(1); k&AllTypes != 0; k <<= 1 {
		got, err := ParseType(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseType("Access|Shuffle")
	require.Error(t, err)
	assert.Equal(t, qmerrors.InvalidArgument, qmerrors.CodeOf(err))
	assert.ErrorContains(t, err, `"Shuffle"`)
}

func TestInfoNames(t *testing.T) {
	for i := JoinType; i < lastInfo; i++ {
		name := i.String()
		require.NotEqual(t, "unknown_info", name, "info %d has no name", int(i))
		got, err := ParseInfo(name)
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
	assert.Equal(t, "unknown_info", lastInfo.String())

	got, err := ParseInfo(" Max_Tuple_Limit ")
	require.NoError(t, err)
	assert.Equal(t, MaxTupleLimit, got)

	_, err = ParseInfo("cost")
	assert.Equal(t, qmerrors.InvalidArgument, qmerrors.CodeOf(err))
}

func TestGroupSet(t *testing.T) {
	a := NewGroupSet(0, 3)
	b := NewGroupSet(3, 12)

	assert.True(t, a.Has(3))
	assert.False(t, a.Has(12))
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.IsOverlapping(b))
	assert.False(t, a.IsSolvedBy(b))
	assert.True(t, NewGroupSet(3).IsSolvedBy(a))
	assert.True(t, GroupSet("").IsSolvedBy(a))

	merged := a.Merge(b)
	assert.Equal(t, NewGroupSet(0, 3, 12), merged)
	assert.Equal(t, NewGroupSet(0), a.Remove(b))
	assert.Equal(t, NewGroupSet(12), merged.Without(0).Without(3))
	assert.True(t, merged.Without(0).Without(3).Without(12).IsEmpty())
	assert.Equal(t, merged, NewGroupSet().With(12).With(0).With(3))

	var ids []GroupID
	for id := range merged.All() {
		ids = append(ids, id)
	}
	assert.Equal(t, []GroupID{0, 3, 12}, ids)
	assert.Equal(t, "GroupSet{0,3,12}", fmt.Sprintf("%v", merged))

	// sets are values: deriving a new one leaves the original alone
	assert.Equal(t, NewGroupSet(0, 3), a)
}

func TestGroupInterning(t *testing.T) {
	tr := NewTree()
	emp := tr.Group("emp")
	dept := tr.Group("dept")
	assert.NotEqual(t, emp, dept)
	assert.Equal(t, emp, tr.Group("emp"))
	assert.Equal(t, "dept", tr.GroupName(dept))
	assert.Equal(t, "", tr.GroupName(GroupID(42)))
	assert.Equal(t, "", tr.GroupName(GroupID(-1)))
}
