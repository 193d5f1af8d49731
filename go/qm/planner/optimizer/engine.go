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

// Package optimizer runs rewrite rules over plan trees until they settle.
package optimizer

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"querymesh.io/querymesh/go/qm/log"
	"querymesh.io/querymesh/go/qm/planner/plan"
	"querymesh.io/querymesh/go/qm/qmerrors"
)

// Plan is a tree together with the root of the plan it holds.
type Plan struct {
	Tree *plan.Tree
	Root plan.NodeID
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	t, root := p.Tree.Clone(p.Root)
	return &Plan{Tree: t, Root: root}
}

// Engine applies an ordered list of rules to plans. An Engine may be shared
// between goroutines; the plans it works on may not.
type Engine struct {
	cfg     Config
	metrics *Metrics
	rules   []Rule

	cacheOnce sync.Once
	cache     *PlanCache
	inflight  singleflight.Group
}

// NewEngine returns an engine running rules in the given order. A nil metrics
// gets a private, unregistered set of counters.
func NewEngine(cfg Config, metrics *Metrics, rules ...Rule) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if _, dup := seen[r.Name()]; dup {
			return nil, qmerrors.Errorf(qmerrors.InvalidArgument, "rule %s is listed twice", r.Name())
		}
		seen[r.Name()] = struct{}{}
	}
	if metrics == nil {
		metrics, _ = NewMetrics(nil)
	}
	return &Engine{
		cfg:     cfg,
		metrics: metrics,
		rules:   rules,
	}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Optimize rewrites p until a full pass over the rules changes nothing.
//
// A rule that misuses the plan editor panics; the panic is recovered here and
// returned as an INTERNAL error, and p must be considered garbage afterwards.
// Plans that keep changing for MaxPasses passes fail with RESOURCE_EXHAUSTED.
func (e *Engine) Optimize(ctx context.Context, p *Plan) (err error) {
	if p == nil || p.Tree == nil {
		return qmerrors.New(qmerrors.InvalidArgument, "no plan to optimize")
	}
	passID := uuid.NewString()
	defer func() {
		if err != nil {
			e.metrics.Failures.WithLabelValues(qmerrors.CodeOf(err).String()).Inc()
			log.ErrorS("plan optimization failed", "optimization", passID, "error", err)
		}
	}()

	for pass := 1; pass <= e.cfg.MaxPasses; pass++ {
		e.metrics.Passes.Inc()
		changed := false
		for _, rule := range e.rules {
			if err := ctx.Err(); err != nil {
				return qmerrors.Wrapf(err, "optimization %s interrupted in pass %d", passID, pass)
			}
			res, err := e.apply(rule, p)
			if err != nil {
				return qmerrors.Wrapf(err, "rule %s in pass %d", rule.Name(), pass)
			}
			if !res.Changed() {
				continue
			}
			changed = true
			e.metrics.RuleApplications.WithLabelValues(rule.Name()).Inc()
			log.DebugS("rule rewrote plan", "optimization", passID, "pass", pass, "rule", rule.Name(), "changes", res.String())
		}
		if !changed {
			if log.V(2) {
				log.Infof("optimization %s settled after %d passes", passID, pass)
			}
			return nil
		}
	}
	return qmerrors.Errorf(qmerrors.ResourceExhausted, "plan did not settle after %d optimizer passes", e.cfg.MaxPasses)
}

func (e *Engine) apply(rule Rule, p *Plan) (res *ApplyResult, err error) {
	defer qmerrors.PanicHandler(&err)

	root, res := rule.Apply(p.Tree, p.Root)
	if root == plan.None {
		return nil, qmerrors.Bug("rule %s returned no plan root", rule.Name())
	}
	p.Root = root
	if !res.Changed() || !e.cfg.VerifyAfterRule {
		return res, nil
	}
	if parent := p.Tree.Parent(root); parent != plan.None {
		return nil, qmerrors.Errorf(qmerrors.Internal, "malformed plan: root %d has parent %d", root, parent)
	}
	if err := p.Tree.Verify(root); err != nil {
		return nil, err
	}
	return res, nil
}

// OptimizeAll optimizes independent plans concurrently, at most Parallelism at
// a time. It returns the first error; the remaining plans are not started once
// one has failed. Plans must not share a Tree.
func (e *Engine) OptimizeAll(ctx context.Context, plans []*Plan) error {
	trees := make(map[*plan.Tree]int, len(plans))
	for i, p := range plans {
		if p == nil || p.Tree == nil {
			return qmerrors.Errorf(qmerrors.InvalidArgument, "plan %d is empty", i)
		}
		if j, dup := trees[p.Tree]; dup {
			return qmerrors.Errorf(qmerrors.InvalidArgument, "plans %d and %d share a tree", j, i)
		}
		trees[p.Tree] = i
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Parallelism)
	for _, p := range plans {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return e.Optimize(gctx, p)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return qmerrors.Wrap(err, "optimization interrupted")
	}
	return nil
}

// OptimizeCached returns an optimized copy of the plan cached under key. On a
// miss, build is called and its result optimized and cached. Concurrent
// misses for the same key share a single build, which keeps running when the
// caller that started it gives up; each caller only waits as long as its own
// ctx allows.
func (e *Engine) OptimizeCached(ctx context.Context, key string, build func() (*Plan, error)) (*Plan, error) {
	cache := e.Cache()
	if p, ok := cache.Get(key); ok {
		e.metrics.CacheHits.Inc()
		return p, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := e.inflight.DoChan(key, func() (any, error) {
		e.metrics.CacheMisses.Inc()
		p, err := build()
		if err != nil {
			return nil, err
		}
		if err := e.Optimize(shared, p); err != nil {
			return nil, err
		}
		cache.Put(key, p)
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, qmerrors.Wrapf(ctx.Err(), "waiting for plan %s", key)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// every caller gets its own copy
		return res.Val.(*Plan).Clone(), nil
	}
}

// Cache returns the plan cache used by OptimizeCached. It is created on first
// use.
func (e *Engine) Cache() *PlanCache {
	e.cacheOnce.Do(func() {
		e.cache = NewPlanCache(e.cfg.CacheTTL, e.cfg.CacheCleanup)
	})
	return e.cache
}
