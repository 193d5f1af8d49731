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

// Package plandoc reads and writes plan trees as YAML or JSON documents.
//
// A document is a single node:
//
//	type: Project
//	groups: [emp]
//	properties:
//	  project_cols: [emp.name]
//	children:
//	  - type: Access
//	    groups: [emp]
//
// Property names are the snake_case names of plan.Info keys.
package plandoc

import (
	"encoding/json"
	"fmt"
	"math"

	"sigs.k8s.io/yaml"

	"querymesh.io/querymesh/go/qm/planner/plan"
	"querymesh.io/querymesh/go/qm/qmerrors"
)

// Node is one plan node of a document.
type Node struct {
	Type       TypeName       `json:"type"`
	Groups     []string       `json:"groups,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Children   []*Node        `json:"children,omitempty"`
}

// TypeName is the kind name of a document node. YAML reads a bare Null as the
// null value, so an explicit null type decodes as the Null kind.
type TypeName string

// UnmarshalJSON implements json.Unmarshaler.
func (n *TypeName) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = TypeName(plan.Null.String())
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*n = TypeName(name)
	return nil
}

// Parse decodes a YAML or JSON document. Unknown fields are rejected.
func Parse(data []byte) (*Node, error) {
	var doc Node
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, qmerrors.Errorf(qmerrors.InvalidArgument, "cannot parse plan document: %v", err)
	}
	return &doc, nil
}

// Load decodes a document and builds it into a new tree.
func Load(data []byte) (*plan.Tree, plan.NodeID, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, plan.None, err
	}
	return Build(doc)
}

// Build turns a decoded document into a new tree and returns the root.
func Build(doc *Node) (*plan.Tree, plan.NodeID, error) {
	t := plan.NewTree()
	root, err := build(t, doc, "root")
	if err != nil {
		return nil, plan.None, err
	}
	return t, root, nil
}

func build(t *plan.Tree, doc *Node, path string) (plan.NodeID, error) {
	if doc == nil {
		return plan.None, qmerrors.Errorf(qmerrors.InvalidArgument, "%s: empty node", path)
	}
	typ, err := plan.ParseType(string(doc.Type))
	if err != nil {
		return plan.None, qmerrors.Wrap(err, path)
	}
	if !typ.IsSingle() {
		return plan.None, qmerrors.Errorf(qmerrors.InvalidArgument, "%s: node type must name exactly one kind, got %q", path, doc.Type)
	}

	n := t.NewNode(typ)
	for _, name := range doc.Groups {
		if name == "" {
			return plan.None, qmerrors.Errorf(qmerrors.InvalidArgument, "%s: empty group name", path)
		}
		t.AddGroup(n, t.Group(name))
	}
	for name, v := range doc.Properties {
		key, err := plan.ParseInfo(name)
		if err != nil {
			return plan.None, qmerrors.Wrap(err, path)
		}
		t.SetProperty(n, key, normalize(v))
	}
	for i, child := range doc.Children {
		c, err := build(t, child, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return plan.None, err
		}
		t.AttachLast(n, c)
	}
	return n, nil
}

// normalize undoes the widening of the JSON decoder: whole numbers become
// ints and lists of strings become []string.
func normalize(v any) any {
	switch v := v.(type) {
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt && v < math.MaxInt {
			return int(v)
		}
		return v
	case []any:
		strs := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				break
			}
			strs = append(strs, s)
		}
		if len(strs) == len(v) {
			return strs
		}
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = normalize(e)
		}
		return out
	}
	return v
}

// FromTree describes the subtree below root as a document.
func FromTree(t *plan.Tree, root plan.NodeID) *Node {
	doc := &Node{Type: TypeName(t.Type(root).String())}
	for id := range t.Groups(root).All() {
		doc.Groups = append(doc.Groups, t.GroupName(id))
	}
	if keys := t.PropertyKeys(root); len(keys) > 0 {
		doc.Properties = make(map[string]any, len(keys))
		for _, k := range keys {
			doc.Properties[k.String()], _ = t.Property(root, k)
		}
	}
	for _, child := range t.Children(root) {
		doc.Children = append(doc.Children, FromTree(t, child))
	}
	return doc
}

// Dump writes the subtree below root as YAML.
func Dump(t *plan.Tree, root plan.NodeID) ([]byte, error) {
	out, err := yaml.Marshal(FromTree(t, root))
	if err != nil {
		return nil, qmerrors.Wrapf(err, "cannot encode plan rooted at node %d", root)
	}
	return out, nil
}
