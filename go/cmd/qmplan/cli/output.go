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

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"querymesh.io/querymesh/go/qm/planner/optimizer"
	"querymesh.io/querymesh/go/qm/planner/plandoc"
	"querymesh.io/querymesh/go/qm/qmerrors"
)

const (
	formatTree = "tree"
	formatJSON = "json"
	formatYAML = "yaml"
)

// readPlan loads and verifies the plan document at path. "-" reads the
// command's standard input.
func readPlan(cmd *cobra.Command, path string) (*optimizer.Plan, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, qmerrors.Errorf(qmerrors.NotFound, "cannot read plan %s: %v", path, err)
	}

	t, root, err := plandoc.Load(data)
	if err != nil {
		return nil, qmerrors.Wrap(err, path)
	}
	if err := t.Verify(root); err != nil {
		return nil, qmerrors.Wrap(err, path)
	}
	return &optimizer.Plan{Tree: t, Root: root}, nil
}

func render(w io.Writer, p *optimizer.Plan, format string) error {
	switch format {
	case formatTree:
		_, err := io.WriteString(w, p.Tree.ToTree(p.Root))
		return err
	case formatJSON:
		_, err := fmt.Fprintln(w, p.Tree.ToJSON(p.Root))
		return err
	case formatYAML:
		out, err := plandoc.Dump(p.Tree, p.Root)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return qmerrors.Errorf(qmerrors.InvalidArgument, "unknown output format %q: expected tree, json or yaml", format)
	}
}
