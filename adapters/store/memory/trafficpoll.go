package memory

import (
	"context"
	"sync"

	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
)

// InMemoryTrafficPollRepository is a thread-safe in-memory implementation.
type InMemoryTrafficPollRepository struct {
	mu    sync.RWMutex
	items map[string]*model.TrafficPoll
}

func NewInMemoryTrafficPollRepository() *InMemoryTrafficPollRepository {
	return &InMemoryTrafficPollRepository{items: make(map[string]*model.TrafficPoll)}
}

func (r *InMemoryTrafficPollRepository) Get(_ context.Context, siteID string) (*model.TrafficPoll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[siteID]
	if !ok {
		return nil, model.ErrSiteNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryTrafficPollRepository) Upsert(_ context.Context, p *model.TrafficPoll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.SiteID] = &cp
	return nil
}

var _ domain.TrafficPollRepository = (*InMemoryTrafficPollRepository)(nil)
