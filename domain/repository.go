package domain

import (
	"context"

	"github.com/panelops/panelops/domain/model"
)

// SiteRepository stores and retrieves Site aggregates.
type SiteRepository interface {
	Create(ctx context.Context, s *model.Site) error
	Get(ctx context.Context, id string) (*model.Site, error)
	List(ctx context.Context) ([]*model.Site, error)
	Update(ctx context.Context, s *model.Site) error
	Delete(ctx context.Context, id string) error
}

// WebAppRepository stores and retrieves WebApp aggregates.
type WebAppRepository interface {
	Create(ctx context.Context, a *model.WebApp) error
	Get(ctx context.Context, id string) (*model.WebApp, error)
	List(ctx context.Context) ([]*model.WebApp, error)
	Update(ctx context.Context, a *model.WebApp) error
	Delete(ctx context.Context, id string) error
}

// DomainRepository stores and retrieves Domain aggregates.
type DomainRepository interface {
	Create(ctx context.Context, d *model.Domain) error
	Get(ctx context.Context, id string) (*model.Domain, error)
	GetByName(ctx context.Context, name string) (*model.Domain, error)
	List(ctx context.Context) ([]*model.Domain, error)
	// ListBySuffix returns all domains whose name ends with "." + name.
	ListBySuffix(ctx context.Context, name string) ([]*model.Domain, error)
	Update(ctx context.Context, d *model.Domain) error
	Delete(ctx context.Context, id string) error
}

// RecordRepository stores and retrieves declared resource records.
type RecordRepository interface {
	Create(ctx context.Context, r *model.Record) error
	Get(ctx context.Context, id string) (*model.Record, error)
	// ListByDomain returns the domain's records in persisted order.
	ListByDomain(ctx context.Context, domainID string) ([]*model.Record, error)
	Delete(ctx context.Context, id string) error
}

// TrafficPollRepository stores the last-polled timestamp per monitored site.
type TrafficPollRepository interface {
	Get(ctx context.Context, siteID string) (*model.TrafficPoll, error)
	Upsert(ctx context.Context, p *model.TrafficPoll) error
}

// Repositories groups repository interfaces wired into use cases.
type Repositories struct {
	Site        SiteRepository
	WebApp      WebAppRepository
	Domain      DomainRepository
	Record      RecordRepository
	TrafficPoll TrafficPollRepository
}
