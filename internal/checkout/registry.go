package checkout

import (
	"sync"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/tokenization"
)

// Registry indexes live flows by id.
type Registry struct {
	mu    sync.RWMutex
	flows map[string]*tokenization.Flow
	now   func() time.Time
}

func NewRegistry() *Registry {
	return NewRegistryWithClock(time.Now)
}

func NewRegistryWithClock(now func() time.Time) *Registry {
	return &Registry{
		flows: make(map[string]*tokenization.Flow),
		now:   now,
	}
}

func (r *Registry) Add(flow *tokenization.Flow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[flow.ID()] = flow
}

func (r *Registry) Get(id string) (*tokenization.Flow, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	flow, ok := r.flows[id]
	return flow, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flows)
}

// Reap abandons flows created more than olderThan ago and forgets them.
// It returns how many unfinished flows were abandoned.
func (r *Registry) Reap(olderThan time.Duration) int {
	cutoff := r.now().Add(-olderThan)

	r.mu.Lock()
	var stale []*tokenization.Flow
	for id, flow := range r.flows {
		if flow.CreatedAt().Before(cutoff) {
			stale = append(stale, flow)
			delete(r.flows, id)
		}
	}
	r.mu.Unlock()

	abandoned := 0
	for _, flow := range stale {
		if !flow.State().IsTerminal() {
			flow.Abandon()
			abandoned++
		}
	}
	return abandoned
}
