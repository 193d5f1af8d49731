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

package bitset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleBit(t *testing.T) {
	for i := 0; i < 40; i++ {
		bs := Single(i)
		require.True(t, bs.Has(i), "bit %d", i)
		require.Equal(t, 1, bs.Popcount())
		require.Equal(t, []int{i}, slices.Collect(bs.All()))
	}
}

func TestBuildAndEquality(t *testing.T) {
	a := Build(1, 9, 17)
	b := Single(17).Set(1).Set(9)
	assert.Equal(t, a, b)
	assert.Equal(t, []int{1, 9, 17}, slices.Collect(a.All()))
	assert.Equal(t, Bitset(""), Build())
}

func TestClearTruncates(t *testing.T) {
	bs := Build(3, 20)
	bs = bs.Clear(20)
	assert.Equal(t, Single(3), bs)
	assert.True(t, bs.Clear(3).IsEmpty())
	assert.Equal(t, bs, bs.Clear(50))
}

func TestSetOperations(t *testing.T) {
	a := Build(0, 5, 12)
	b := Build(5, 30)

	tests := []struct {
		name string
		got  Bitset
		want []int
	}{
		{"or", a.Or(b), []int{0, 5, 12, 30}},
		{"and", a.And(b), []int{5}},
		{"and not", a.AndNot(b), []int{0, 12}},
		{"and not reversed", b.AndNot(a), []int{30}},
		{"or empty", a.Or(""), []int{0, 5, 12}},
		{"and empty", a.And(""), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slices.Collect(tc.got.All()))
			assert.Equal(t, Build(tc.want...), tc.got)
		})
	}
}

func TestContainmentAndOverlap(t *testing.T) {
	a := Build(1, 2)
	b := Build(1, 2, 40)
	assert.True(t, a.IsContainedBy(b))
	assert.False(t, b.IsContainedBy(a))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(Single(40)))
	assert.True(t, Bitset("").IsContainedBy(a))
}

func TestImmutable(t *testing.T) {
	a := Build(1)
	_ = a.Set(2)
	_ = a.Or(Single(3))
	assert.Equal(t, Single(1), a)
}
