package rdb

import (
	"context"

	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrafficPollRepository struct{ db *gorm.DB }

func NewTrafficPollRepository(db *gorm.DB) *TrafficPollRepository {
	return &TrafficPollRepository{db: db}
}

func (r *TrafficPollRepository) Get(ctx context.Context, siteID string) (*model.TrafficPoll, error) {
	var rec TrafficPollRecord
	if err := r.db.WithContext(ctx).First(&rec, "site_id = ?", siteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrSiteNotFound
		}
		return nil, err
	}
	return &model.TrafficPoll{
		SiteID: rec.SiteID, LastPolledAt: rec.LastPolledAt, UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r *TrafficPollRepository) Upsert(ctx context.Context, p *model.TrafficPoll) error {
	rec := &TrafficPollRecord{
		SiteID: p.SiteID, LastPolledAt: p.LastPolledAt, UpdatedAt: p.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "site_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_polled_at", "updated_at"}),
	}).Create(rec).Error
}

var _ domain.TrafficPollRepository = (*TrafficPollRepository)(nil)
