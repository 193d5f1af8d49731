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

	"github.com/patrickmn/go-cache"
)

// PlanCache keeps optimized plans by key. Plans are copied on the way in and
// on the way out, so callers are free to keep rewriting what they get.
type PlanCache struct {
	cache *cache.Cache
}

// NewPlanCache returns a cache whose entries expire after ttl. Expired entries
// are purged every cleanup.
func NewPlanCache(ttl, cleanup time.Duration) *PlanCache {
	return &PlanCache{cache: cache.New(ttl, cleanup)}
}

// Get returns a copy of the plan stored under key.
func (pc *PlanCache) Get(key string) (*Plan, bool) {
	v, ok := pc.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*Plan).Clone(), true
}

// Put stores a copy of p under key with the default expiration.
func (pc *PlanCache) Put(key string, p *Plan) {
	pc.cache.SetDefault(key, p.Clone())
}

// Delete drops the entry for key.
func (pc *PlanCache) Delete(key string) {
	pc.cache.Delete(key)
}

// Len returns the number of cached plans, including expired ones not yet
// purged.
func (pc *PlanCache) Len() int {
	return pc.cache.ItemCount()
}

// Flush drops every entry.
func (pc *PlanCache) Flush() {
	pc.cache.Flush()
}
