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

package utils

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagHelpers(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetNormalizeFunc(NormalizeUnderscoresToDashes)

	var (
		n     int
		b     bool
		s     string
		d     time.Duration
		names []string
	)
	SetFlagIntVar(fs, &n, "max-passes", 10, "")
	SetFlagBoolVar(fs, &b, "verify", false, "")
	SetFlagStringVar(fs, &s, "format", "tree", "")
	SetFlagDurationVar(fs, &d, "ttl", time.Minute, "")
	SetFlagStringSliceVar(fs, &names, "rules", nil, "")

	require.NoError(t, fs.Parse([]string{"--max_passes=3", "--verify", "--format=json", "--ttl=2s", "--rules=a,b"}))
	assert.Equal(t, 3, n)
	assert.True(t, b)
	assert.Equal(t, "json", s)
	assert.Equal(t, 2*time.Second, d)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestUnderscoredNamePanics(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var n int
	assert.Panics(t, func() { SetFlagIntVar(fs, &n, "max_passes", 1, "") })
}

func TestNormalizeKeepsGlogFlags(t *testing.T) {
	assert.Equal(t, pflag.NormalizedName("log_dir"), NormalizeUnderscoresToDashes(nil, "log_dir"))
	assert.Equal(t, pflag.NormalizedName("plan-cache-ttl"), NormalizeUnderscoresToDashes(nil, "plan_cache_ttl"))
}
