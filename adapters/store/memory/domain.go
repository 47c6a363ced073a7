package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
)

// InMemoryDomainRepository is a thread-safe in-memory implementation.
type InMemoryDomainRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Domain
	seq   int64
}

func NewInMemoryDomainRepository() *InMemoryDomainRepository {
	return &InMemoryDomainRepository{items: make(map[string]*model.Domain)}
}

func (r *InMemoryDomainRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("domain-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *InMemoryDomainRepository) Create(_ context.Context, d *model.Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.Name == d.Name {
			return fmt.Errorf("domain %s already exists", d.Name)
		}
	}
	if d.ID == "" {
		d.ID = r.nextID()
	}
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *InMemoryDomainRepository) Get(_ context.Context, id string) (*model.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrDomainNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryDomainRepository) GetByName(_ context.Context, name string) (*model.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.items {
		if v.Name == name {
			cp := *v
			return &cp, nil
		}
	}
	return nil, model.ErrDomainNotFound
}

func (r *InMemoryDomainRepository) List(_ context.Context) ([]*model.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Domain, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryDomainRepository) ListBySuffix(_ context.Context, name string) ([]*model.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Domain
	for _, v := range r.items {
		if strings.HasSuffix(v.Name, "."+name) {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryDomainRepository) Update(_ context.Context, d *model.Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[d.ID]; !ok {
		return model.ErrDomainNotFound
	}
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *InMemoryDomainRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrDomainNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.DomainRepository = (*InMemoryDomainRepository)(nil)
