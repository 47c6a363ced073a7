package rdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
	"gorm.io/gorm"
)

type SiteRepository struct{ db *gorm.DB }

func NewSiteRepository(db *gorm.DB) *SiteRepository { return &SiteRepository{db: db} }

func siteToRecord(s *model.Site) *SiteRecord {
	contents, _ := json.Marshal(s.Contents)
	directives, _ := json.Marshal(s.Directives)
	domainIDs, _ := json.Marshal(s.DomainIDs)
	return &SiteRecord{
		ID: s.ID, Name: s.Name, AccountID: s.AccountID,
		Protocol: string(s.Protocol), Active: s.Active,
		Contents: string(contents), Directives: string(directives),
		DomainIDs: string(domainIDs),
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func siteToModel(r *SiteRecord) *model.Site {
	s := &model.Site{
		ID: r.ID, Name: r.Name, AccountID: r.AccountID,
		Protocol: model.Protocol(r.Protocol), Active: r.Active,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
	if r.Contents != "" {
		json.Unmarshal([]byte(r.Contents), &s.Contents)
	}
	if r.Directives != "" {
		json.Unmarshal([]byte(r.Directives), &s.Directives)
	}
	if r.DomainIDs != "" {
		json.Unmarshal([]byte(r.DomainIDs), &s.DomainIDs)
	}
	return s
}

func (r *SiteRepository) Create(ctx context.Context, s *model.Site) error {
	rec := siteToRecord(s)
	if rec.ID == "" {
		rec.ID = "site-" + uuid.NewString()
		s.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *SiteRepository) Get(ctx context.Context, id string) (*model.Site, error) {
	var rec SiteRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrSiteNotFound
		}
		return nil, err
	}
	return siteToModel(&rec), nil
}

func (r *SiteRepository) List(ctx context.Context) ([]*model.Site, error) {
	var recs []SiteRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Site, 0, len(recs))
	for i := range recs {
		out = append(out, siteToModel(&recs[i]))
	}
	return out, nil
}

func (r *SiteRepository) Update(ctx context.Context, s *model.Site) error {
	rec := siteToRecord(s)
	return r.db.WithContext(ctx).Model(&SiteRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&SiteRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrSiteNotFound
	}
	return nil
}

var _ domain.SiteRepository = (*SiteRepository)(nil)
