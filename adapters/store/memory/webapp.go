package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
)

// InMemoryWebAppRepository is a thread-safe in-memory implementation.
type InMemoryWebAppRepository struct {
	mu    sync.RWMutex
	items map[string]*model.WebApp
	seq   int64
}

func NewInMemoryWebAppRepository() *InMemoryWebAppRepository {
	return &InMemoryWebAppRepository{items: make(map[string]*model.WebApp)}
}

func (r *InMemoryWebAppRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("webapp-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *InMemoryWebAppRepository) Create(_ context.Context, a *model.WebApp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = r.nextID()
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *InMemoryWebAppRepository) Get(_ context.Context, id string) (*model.WebApp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrWebAppNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryWebAppRepository) List(_ context.Context) ([]*model.WebApp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.WebApp, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *InMemoryWebAppRepository) Update(_ context.Context, a *model.WebApp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return model.ErrWebAppNotFound
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *InMemoryWebAppRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrWebAppNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.WebAppRepository = (*InMemoryWebAppRepository)(nil)
