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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Description is a self-contained snapshot of a subtree, used by explain
// output and by tests comparing plans.
type Description struct {
	Type       string         `json:"type"`
	Groups     []string       `json:"groups,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Inputs     []Description  `json:"inputs,omitempty"`
}

// Describe snapshots the subtree below root, children in order.
func (t *Tree) Describe(root NodeID) Description {
	nd := t.node(root)
	descr := Description{Type: nd.typ.String()}
	for id := range nd.groups.All() {
		descr.Groups = append(descr.Groups, t.GroupName(id))
	}
	if len(nd.props) > 0 {
		descr.Properties = make(map[string]any, len(nd.props))
		for k, v := range nd.props {
			descr.Properties[k.String()] = v
		}
	}
	for _, child := range nd.children {
		descr.Inputs = append(descr.Inputs, t.Describe(child))
	}
	return descr
}

// ToJSON renders the subtree below root as indented JSON. Property values
// that cannot be marshalled are rendered with %v.
func (t *Tree) ToJSON(root NodeID) string {
	descr := t.Describe(root)
	out, err := json.MarshalIndent(descr, "", "  ")
	if err != nil {
		out, _ = json.MarshalIndent(stringify(descr), "", "  ")
	}
	return string(out)
}

func stringify(d Description) Description {
	for k, v := range d.Properties {
		d.Properties[k] = fmt.Sprintf("%v", v)
	}
	for i := range d.Inputs {
		d.Inputs[i] = stringify(d.Inputs[i])
	}
	return d
}

// ToTree renders the subtree below root as an indented text tree.
func (t *Tree) ToTree(root NodeID) string {
	return t.asTree(root, nil).String()
}

func (t *Tree) label(n NodeID) string {
	nd := t.node(n)
	var sb strings.Builder
	sb.WriteString(nd.typ.String())
	if !nd.groups.IsEmpty() {
		var names []string
		for id := range nd.groups.All() {
			names = append(names, t.GroupName(id))
		}
		fmt.Fprintf(&sb, " [%s]", strings.Join(names, ", "))
	}
	if keys := t.PropertyKeys(n); len(keys) > 0 {
		props := make([]string, len(keys))
		for i, k := range keys {
			props[i] = fmt.Sprintf("%s=%v", k, nd.props[k])
		}
		fmt.Fprintf(&sb, " (%s)", strings.Join(props, ", "))
	}
	return sb.String()
}

func (t *Tree) asTree(n NodeID, parent treeprint.Tree) treeprint.Tree {
	var branch treeprint.Tree
	if parent == nil {
		branch = treeprint.NewWithRoot(t.label(n))
	} else {
		branch = parent.AddBranch(t.label(n))
	}
	for _, child := range t.node(n).children {
		t.asTree(child, branch)
	}
	return branch
}
