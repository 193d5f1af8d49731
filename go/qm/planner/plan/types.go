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
	"math/bits"
	"strings"

	"querymesh.io/querymesh/go/qm/qmerrors"
)

// Type is a plan node kind. Every kind is a single bit, so a Type value can
// also hold a union of kinds; search functions take such unions. A node's own
// type is always exactly one bit.
type Type uint32

const (
	// NoType has no bits set. As a stop mask it means "no boundary", as a
	// search mask it matches nothing.
	NoType Type = 0

	Access           Type = 1 << 0
	DupRemove        Type = 1 << 1
	Join             Type = 1 << 2
	Project          Type = 1 << 3
	Select           Type = 1 << 4
	Sort             Type = 1 << 5
	Source           Type = 1 << 6
	Group            Type = 1 << 7
	SetOp            Type = 1 << 8
	Null             Type = 1 << 9
	TupleLimit       Type = 1 << 10
	DependentProject Type = 1 << 11

	// AllTypes is the union of every kind.
	AllTypes = Access | DupRemove | Join | Project | Select | Sort | Source |
		Group | SetOp | Null | TupleLimit | DependentProject
)

var typeNames = [...]string{
	"Access",
	"DupRemove",
	"Join",
	"Project",
	"Select",
	"Sort",
	"Source",
	"Group",
	"SetOp",
	"Null",
	"TupleLimit",
	"DependentProject",
}

// Contains reports whether the single kind k is a member of the union types.
func (types Type) Contains(k Type) bool {
	return k&types == k
}

// IsSingle reports whether exactly one known kind bit is set.
func (t Type) IsSingle() bool {
	return t&AllTypes == t && bits.OnesCount32(uint32(t)) == 1
}

// String renders a union as its kind names joined by '|'.
func (t Type) String() string {
	if t == NoType {
		return "NoType"
	}
	var sb strings.Builder
	for i, name := range typeNames {
		if t&(1<<i) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(name)
	}
	if rest := t &^ AllTypes; rest != 0 {
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString("Unknown")
	}
	return sb.String()
}

// ParseType parses a '|' separated list of kind names, ignoring case.
// "NoType" and the empty string parse to NoType.
func ParseType(s string) (Type, error) {
	var t Type
	for part := range strings.SplitSeq(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "notype") {
			continue
		}
		found := false
		for i, name := range typeNames {
			if strings.EqualFold(part, name) {
				t |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return NoType, qmerrors.Errorf(qmerrors.InvalidArgument, "unknown plan node type %q", part)
		}
	}
	return t, nil
}
