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
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querymesh.io/querymesh/go/qm/qmerrors"
)

func TestRegisterFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{
		"--optimizer-max-passes=7",
		"--optimizer-verify",
		"--optimizer-rules=raise-null,collapse-dup-remove",
		"--plan-cache-ttl=30s",
	}))
	assert.Equal(t, 7, cfg.MaxPasses)
	assert.True(t, cfg.VerifyAfterRule)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, []string{"raise-null", "collapse-dup-remove"}, cfg.Rules)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.CacheCleanup)
}

func TestConfigFromViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
optimizer-max-passes: 12
optimizer-parallelism: 2
optimizer-rules: [remove-shadowed-sort]
plan-cache-cleanup: 1h
`)))

	cfg, err := ConfigFromViper(v)
	require.NoError(t, err)
	want := DefaultConfig()
	want.MaxPasses = 12
	want.Parallelism = 2
	want.Rules = []string{"remove-shadowed-sort"}
	want.CacheCleanup = time.Hour
	assert.Equal(t, want, cfg)
}

func TestConfigFromViperFlagsWin(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--optimizer-max-passes=3"}))

	v := viper.New()
	require.NoError(t, v.BindPFlags(fs))
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader("optimizer-max-passes: 50\noptimizer-parallelism: 8\n")))

	got, err := ConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3, got.MaxPasses)
	assert.Equal(t, 8, got.Parallelism)
	assert.Equal(t, 5*time.Minute, got.CacheTTL)
}

func TestConfigValidate(t *testing.T) {
	tcs := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"passes", func(c *Config) { c.MaxPasses = 0 }, MaxPassesKey},
		{"parallelism", func(c *Config) { c.Parallelism = -1 }, ParallelismKey},
		{"ttl", func(c *Config) { c.CacheTTL = 0 }, CacheTTLKey},
		{"cleanup", func(c *Config) { c.CacheCleanup = -time.Second }, CacheCleanupKey},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			assert.Equal(t, qmerrors.InvalidArgument, qmerrors.CodeOf(err))
			assert.ErrorContains(t, err, tc.want)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())

	v := viper.New()
	v.Set(MaxPassesKey, -4)
	_, err := ConfigFromViper(v)
	assert.Equal(t, qmerrors.InvalidArgument, qmerrors.CodeOf(err))
}
