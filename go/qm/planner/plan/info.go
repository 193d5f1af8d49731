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
	"strings"

	"querymesh.io/querymesh/go/qm/qmerrors"
)

// Info is a key in a node's property bag. Rules use properties to stash
// planning metadata on nodes; the tree editor never reads them.
type Info int

const (
	JoinType Info = iota + 1
	JoinStrategy
	JoinCriteria
	SelectCriteria
	ProjectCols
	OutputCols
	SortOrder
	GroupCols
	SetOperation
	UseAll
	MaxTupleLimit
	OffsetTupleLimit
	ModelID
	AccessPatterns
	AtomicRequest
	EstCardinality
	IsDupRemoval
	NestedCommand

	lastInfo
)

var infoNames = map[Info]string{
	JoinType:         "join_type",
	JoinStrategy:     "join_strategy",
	JoinCriteria:     "join_criteria",
	SelectCriteria:   "select_criteria",
	ProjectCols:      "project_cols",
	OutputCols:       "output_cols",
	SortOrder:        "sort_order",
	GroupCols:        "group_cols",
	SetOperation:     "set_operation",
	UseAll:           "use_all",
	MaxTupleLimit:    "max_tuple_limit",
	OffsetTupleLimit: "offset_tuple_limit",
	ModelID:          "model_id",
	AccessPatterns:   "access_patterns",
	AtomicRequest:    "atomic_request",
	EstCardinality:   "est_cardinality",
	IsDupRemoval:     "is_dup_removal",
	NestedCommand:    "nested_command",
}

func (i Info) String() string {
	if name, ok := infoNames[i]; ok {
		return name
	}
	return "unknown_info"
}

// ParseInfo returns the key with the given snake_case name.
func ParseInfo(name string) (Info, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := JoinType; i < lastInfo; i++ {
		if infoNames[i] == name {
			return i, nil
		}
	}
	return 0, qmerrors.Errorf(qmerrors.InvalidArgument, "unknown plan property %q", name)
}

// Join types stored under JoinType. A join without the property is inner.
const (
	JoinInner = "inner"
	JoinCross = "cross"
	JoinLeft  = "left_outer"
	JoinRight = "right_outer"
	JoinFull  = "full_outer"
	JoinSemi  = "semi"
	JoinAnti  = "anti_semi"
)
