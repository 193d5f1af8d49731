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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters kept by an Engine.
type Metrics struct {
	RuleApplications *prometheus.CounterVec
	Passes           prometheus.Counter
	Failures         *prometheus.CounterVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
}

// NewMetrics creates the optimizer counters and registers them on reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RuleApplications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "querymesh",
			Subsystem: "optimizer",
			Name:      "rule_applications_total",
			Help:      "The number of times a rule rewrote a plan.",
		}, []string{"rule"}),
		Passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "querymesh",
			Subsystem: "optimizer",
			Name:      "passes_total",
			Help:      "The number of passes over the rule list.",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "querymesh",
			Subsystem: "optimizer",
			Name:      "failures_total",
			Help:      "The number of failed optimizations by error code.",
		}, []string{"code"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "querymesh",
			Subsystem: "plan_cache",
			Name:      "hits_total",
			Help:      "The number of plans served from the plan cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "querymesh",
			Subsystem: "plan_cache",
			Name:      "misses_total",
			Help:      "The number of plans built and optimized because the plan cache had no entry.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{
		m.RuleApplications,
		m.Passes,
		m.Failures,
		m.CacheHits,
		m.CacheMisses,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
