package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
)

// InMemorySiteRepository is a thread-safe in-memory implementation.
type InMemorySiteRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Site
	seq   int64
}

func NewInMemorySiteRepository() *InMemorySiteRepository {
	return &InMemorySiteRepository{items: make(map[string]*model.Site)}
}

func (r *InMemorySiteRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("site-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *InMemorySiteRepository) Create(_ context.Context, s *model.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID()
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *InMemorySiteRepository) Get(_ context.Context, id string) (*model.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrSiteNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemorySiteRepository) List(_ context.Context) ([]*model.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Site, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *InMemorySiteRepository) Update(_ context.Context, s *model.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; !ok {
		return model.ErrSiteNotFound
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *InMemorySiteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrSiteNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.SiteRepository = (*InMemorySiteRepository)(nil)
