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

package optimizer

import (
	"slices"
	"strings"

	"querymesh.io/querymesh/go/qm/planner/plan"
)

type (
	// Rule rewrites a plan in place. Apply returns the root of the plan after
	// the rewrite, which differs from root when the old root was replaced,
	// together with a description of what changed.
	Rule interface {
		Name() string
		Apply(t *plan.Tree, root plan.NodeID) (plan.NodeID, *ApplyResult)
	}

	// ApplyResult tracks modifications to the plan tree during a rule
	// application. A nil *ApplyResult means nothing changed.
	ApplyResult struct {
		Transformations []Rewrite
	}

	Rewrite struct {
		Message string
	}

	ruleFunc struct {
		name  string
		apply func(t *plan.Tree, root plan.NodeID) (plan.NodeID, *ApplyResult)
	}
)

// NoRewrite is returned by rules that left the plan untouched.
var NoRewrite *ApplyResult = nil

// Rewrote reports a single change.
func Rewrote(message string) *ApplyResult {
	return &ApplyResult{Transformations: []Rewrite{{Message: message}}}
}

// Merge combines the changes of two results.
func (ar *ApplyResult) Merge(other *ApplyResult) *ApplyResult {
	switch {
	case ar == nil:
		return other
	case other == nil:
		return ar
	}
	return &ApplyResult{Transformations: slices.Concat(ar.Transformations, other.Transformations)}
}

// Changed reports whether the rule rewrote the plan.
func (ar *ApplyResult) Changed() bool {
	return ar != nil
}

// String joins the change messages, or says that nothing changed.
func (ar *ApplyResult) String() string {
	if ar == nil {
		return "no rewrite"
	}
	msgs := make([]string, len(ar.Transformations))
	for i, tr := range ar.Transformations {
		msgs[i] = tr.Message
	}
	return strings.Join(msgs, "; ")
}

// RuleFunc turns a function into a named Rule.
func RuleFunc(name string, apply func(t *plan.Tree, root plan.NodeID) (plan.NodeID, *ApplyResult)) Rule {
	return ruleFunc{name: name, apply: apply}
}

func (r ruleFunc) Name() string { return r.name }

func (r ruleFunc) Apply(t *plan.Tree, root plan.NodeID) (plan.NodeID, *ApplyResult) {
	return r.apply(t, root)
}
