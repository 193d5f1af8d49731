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
	goflag "flag"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"querymesh.io/querymesh/go/qm/log"
	"querymesh.io/querymesh/go/qm/planner/optimizer"
	"querymesh.io/querymesh/go/qm/qmerrors"
	"querymesh.io/querymesh/go/qm/utils"
)

// Main is the qmplan root command.
var Main = New()

type options struct {
	configFile string
	optimizer  optimizer.Config
}

// New builds a fresh qmplan command tree with its own flag values.
func New() *cobra.Command {
	opts := &options{optimizer: optimizer.DefaultConfig()}
	root := &cobra.Command{
		Use:   "qmplan",
		Short: "qmplan inspects and optimizes relational query plans.",
		Long: `qmplan reads query plans written as YAML or JSON documents, checks
that they are well formed, renders them, and runs the structural
optimizer rules over them.`,
		Example: `qmplan explain plan.yaml
qmplan optimize --optimizer-rules raise-null,collapse-dup-remove --format json plan.yaml
qmplan verify plans/*.yaml`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.preRun,
	}

	fs := root.PersistentFlags()
	fs.SetNormalizeFunc(utils.NormalizeUnderscoresToDashes)
	fs.AddGoFlagSet(goflag.CommandLine)
	log.RegisterFlags(fs)
	opts.optimizer.RegisterFlags(fs)
	utils.SetFlagStringVar(fs, &opts.configFile, "config", "", "YAML or JSON file with optimizer settings; flags given explicitly take precedence")
	root.MarkPersistentFlagFilename("config", "yaml", "yml", "json")

	root.AddCommand(
		newExplain(),
		newOptimize(opts),
		newVerify(),
		newRules(),
	)
	return root
}

// preRun sets up logging and resolves the optimizer settings from flags and
// the config file.
func (opts *options) preRun(cmd *cobra.Command, _ []string) error {
	if err := log.Init(cmd.Flags()); err != nil {
		return qmerrors.Wrap(err, "cannot set up logging")
	}

	v := viper.New()
	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		if err := v.ReadInConfig(); err != nil {
			return qmerrors.Errorf(qmerrors.InvalidArgument, "cannot read config %s: %v", opts.configFile, err)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return qmerrors.Wrap(err, "cannot bind flags")
	}
	cfg, err := optimizer.ConfigFromViper(v)
	if err != nil {
		return err
	}
	opts.optimizer = cfg
	log.DebugS("resolved optimizer config", "max_passes", cfg.MaxPasses, "parallelism", cfg.Parallelism, "rules", cfg.Rules, "verify", cfg.VerifyAfterRule)
	return nil
}
