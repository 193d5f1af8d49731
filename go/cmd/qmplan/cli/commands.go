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
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"querymesh.io/querymesh/go/qm/log"
	"querymesh.io/querymesh/go/qm/planner/optimizer"
	"querymesh.io/querymesh/go/qm/planner/rules"
	"querymesh.io/querymesh/go/qm/utils"
)

func newExplain() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "explain FILE",
		Short: "Checks a plan document and prints it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPlan(cmd, args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), p, format)
		},
	}
	utils.SetFlagStringVar(cmd.Flags(), &format, "format", formatTree, "output format: tree, json or yaml")
	return cmd
}

func newOptimize(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "optimize FILE...",
		Short: "Runs the optimizer rules over one or more plan documents and prints the results.",
		Long: `Runs the configured optimizer rules, in order, over every plan until a
full pass changes nothing, then prints the optimized plans in the order the
files were given. Plans are optimized concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := rules.ByName(opts.optimizer.Rules)
			if err != nil {
				return err
			}
			engine, err := optimizer.NewEngine(opts.optimizer, nil, selected...)
			if err != nil {
				return err
			}

			plans := make([]*optimizer.Plan, len(args))
			for i, path := range args {
				if plans[i], err = readPlan(cmd, path); err != nil {
					return err
				}
			}
			if err := engine.OptimizeAll(cmd.Context(), plans); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, p := range plans {
				if len(plans) > 1 {
					fmt.Fprintf(out, "# %s\n", args[i])
				}
				if err := render(out, p, format); err != nil {
					return err
				}
			}
			log.InfoS("optimized plans", "count", len(plans), "rules", len(selected))
			return nil
		},
	}
	utils.SetFlagStringVar(cmd.Flags(), &format, "format", formatTree, "output format: tree, json or yaml")
	return cmd
}

func newVerify() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Checks that plan documents load into well formed plans.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				p, err := readPlan(cmd, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d nodes\n", path, p.Tree.Len())
			}
			return nil
		},
	}
}

func newRules() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Lists the built-in optimizer rules in the order they run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Order", "Rule", "Rewrite")
			for i, name := range rules.Names() {
				if err := table.Append(strconv.Itoa(i+1), name, rules.Summary(name)); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
