package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
)

// InMemoryRecordRepository is a thread-safe in-memory implementation.
type InMemoryRecordRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Record
	seq   int64
}

func NewInMemoryRecordRepository() *InMemoryRecordRepository {
	return &InMemoryRecordRepository{items: make(map[string]*model.Record)}
}

func (r *InMemoryRecordRepository) Create(_ context.Context, rec *model.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("record-%d-%d", time.Now().UnixNano(), r.seq)
	}
	if rec.Order == 0 {
		rec.Order = r.seq
	}
	cp := *rec
	r.items[rec.ID] = &cp
	return nil
}

func (r *InMemoryRecordRepository) Get(_ context.Context, id string) (*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryRecordRepository) ListByDomain(_ context.Context, domainID string) ([]*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Record
	for _, v := range r.items {
		if v.DomainID == domainID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *InMemoryRecordRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.RecordRepository = (*InMemoryRecordRepository)(nil)
