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
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"querymesh.io/querymesh/go/qm/qmerrors"
	"querymesh.io/querymesh/go/qm/utils"
)

// Flag and config file keys.
const (
	MaxPassesKey       = "optimizer-max-passes"
	VerifyAfterRuleKey = "optimizer-verify"
	ParallelismKey     = "optimizer-parallelism"
	RulesKey           = "optimizer-rules"
	CacheTTLKey        = "plan-cache-ttl"
	CacheCleanupKey    = "plan-cache-cleanup"
)

// Config controls the rule engine.
type Config struct {
	// MaxPasses bounds the number of passes over the rule list before a plan
	// is declared non-convergent.
	MaxPasses int `json:"max_passes"`
	// VerifyAfterRule checks the plan structure after every rule that changed
	// it. Meant for tests and debugging.
	VerifyAfterRule bool `json:"verify_after_rule"`
	// Parallelism is the number of plans OptimizeAll works on at once.
	Parallelism int `json:"parallelism"`
	// Rules names the rules to run, in order. Empty means every built-in rule.
	Rules []string `json:"rules"`

	CacheTTL     time.Duration `json:"cache_ttl"`
	CacheCleanup time.Duration `json:"cache_cleanup"`
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		MaxPasses:    100,
		Parallelism:  4,
		CacheTTL:     5 * time.Minute,
		CacheCleanup: 10 * time.Minute,
	}
}

// RegisterFlags installs the optimizer flags on fs, writing into cfg. The
// current values of cfg are the flag defaults.
func (cfg *Config) RegisterFlags(fs *pflag.FlagSet) {
	utils.SetFlagIntVar(fs, &cfg.MaxPasses, MaxPassesKey, cfg.MaxPasses, "maximum number of optimizer passes over the rule list")
	utils.SetFlagBoolVar(fs, &cfg.VerifyAfterRule, VerifyAfterRuleKey, cfg.VerifyAfterRule, "verify the plan structure after every rule that rewrote it")
	utils.SetFlagIntVar(fs, &cfg.Parallelism, ParallelismKey, cfg.Parallelism, "number of plans optimized concurrently")
	utils.SetFlagStringSliceVar(fs, &cfg.Rules, RulesKey, cfg.Rules, "comma separated rule names to run in order (default: all built-in rules)")
	utils.SetFlagDurationVar(fs, &cfg.CacheTTL, CacheTTLKey, cfg.CacheTTL, "how long optimized plans stay in the plan cache")
	utils.SetFlagDurationVar(fs, &cfg.CacheCleanup, CacheCleanupKey, cfg.CacheCleanup, "how often expired plans are purged from the plan cache")
}

// ConfigFromViper reads the optimizer keys from v on top of the defaults. When
// v has the flags bound, explicitly set flags win over the config file.
func ConfigFromViper(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()
	if v.IsSet(MaxPassesKey) {
		cfg.MaxPasses = v.GetInt(MaxPassesKey)
	}
	if v.IsSet(VerifyAfterRuleKey) {
		cfg.VerifyAfterRule = v.GetBool(VerifyAfterRuleKey)
	}
	if v.IsSet(ParallelismKey) {
		cfg.Parallelism = v.GetInt(ParallelismKey)
	}
	if v.IsSet(RulesKey) {
		cfg.Rules = v.GetStringSlice(RulesKey)
	}
	if v.IsSet(CacheTTLKey) {
		cfg.CacheTTL = v.GetDuration(CacheTTLKey)
	}
	if v.IsSet(CacheCleanupKey) {
		cfg.CacheCleanup = v.GetDuration(CacheCleanupKey)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot run with.
func (cfg Config) Validate() error {
	switch {
	case cfg.MaxPasses <= 0:
		return qmerrors.Errorf(qmerrors.InvalidArgument, "%s must be positive, got %d", MaxPassesKey, cfg.MaxPasses)
	case cfg.Parallelism <= 0:
		return qmerrors.Errorf(qmerrors.InvalidArgument, "%s must be positive, got %d", ParallelismKey, cfg.Parallelism)
	case cfg.CacheTTL <= 0:
		return qmerrors.Errorf(qmerrors.InvalidArgument, "%s must be positive, got %v", CacheTTLKey, cfg.CacheTTL)
	case cfg.CacheCleanup <= 0:
		return qmerrors.Errorf(qmerrors.InvalidArgument, "%s must be positive, got %v", CacheCleanupKey, cfg.CacheCleanup)
	}
	return nil
}
