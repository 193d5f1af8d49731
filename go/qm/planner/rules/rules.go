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

// Package rules holds the built-in structural rewrite rules. They only move,
// remove and insert plan nodes; none of them looks inside expressions.
package rules

import (
	"querymesh.io/querymesh/go/qm/planner/optimizer"
	"querymesh.io/querymesh/go/qm/planner/plan"
	"querymesh.io/querymesh/go/qm/qmerrors"
)

// Rule names.
const (
	SplitAccessProjection = "split-access-projection"
	RaiseNull             = "raise-null"
	CollapseDupRemove     = "collapse-dup-remove"
	RemoveShadowedSort    = "remove-shadowed-sort"
	PushLimitBelowProject = "push-limit-below-project"
)

type rewriter = func(t *plan.Tree, root plan.NodeID) (plan.NodeID, *optimizer.ApplyResult)

var builtins = []struct {
	name    string
	summary string
	fn      rewriter
}{
	{SplitAccessProjection, "moves the filter of an access node into a Project and Select beneath it", splitAccessProjection},
	{RaiseNull, "replaces an inner or cross join that has an empty input with the empty node", raiseNull},
	{CollapseDupRemove, "drops a duplicate removal directly below another one", collapseDupRemove},
	{RemoveShadowedSort, "drops a sort reordered by an enclosing sort", removeShadowedSort},
	{PushLimitBelowProject, "moves a row limit below the projection it sits on", pushLimitBelowProject},
}

// All returns every built-in rule in the order the optimizer runs them.
func All() []optimizer.Rule {
	out := make([]optimizer.Rule, len(builtins))
	for i, b := range builtins {
		out[i] = optimizer.RuleFunc(b.name, b.fn)
	}
	return out
}

// Names lists the built-in rule names in run order.
func Names() []string {
	out := make([]string, len(builtins))
	for i, b := range builtins {
		out[i] = b.name
	}
	return out
}

// Summary returns a one-line description of the named built-in rule, or "" if
// there is no such rule.
func Summary(name string) string {
	for _, b := range builtins {
		if b.name == name {
			return b.summary
		}
	}
	return ""
}

// ByName returns the named rules in the given order. No names means All.
func ByName(names []string) ([]optimizer.Rule, error) {
	if len(names) == 0 {
		return All(), nil
	}
	out := make([]optimizer.Rule, 0, len(names))
	for _, name := range names {
		found := false
		for _, b := range builtins {
			if b.name == name {
				out = append(out, optimizer.RuleFunc(b.name, b.fn))
				found = true
				break
			}
		}
		if !found {
			return nil, qmerrors.Errorf(qmerrors.InvalidArgument, "unknown optimizer rule %q", name)
		}
	}
	return out, nil
}
