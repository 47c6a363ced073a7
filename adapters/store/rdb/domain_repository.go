package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
	"gorm.io/gorm"
)

type DomainRepository struct{ db *gorm.DB }

func NewDomainRepository(db *gorm.DB) *DomainRepository { return &DomainRepository{db: db} }

func domainToRecord(d *model.Domain) *DomainRecord {
	return &DomainRecord{
		ID: d.ID, Name: d.Name, AccountID: d.AccountID, TopID: d.TopID,
		Serial: d.Serial,
		Refresh: d.Refresh, Retry: d.Retry, Expire: d.Expire, MinTTL: d.MinTTL,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func domainToModel(r *DomainRecord) *model.Domain {
	return &model.Domain{
		ID: r.ID, Name: r.Name, AccountID: r.AccountID, TopID: r.TopID,
		Serial: r.Serial,
		Refresh: r.Refresh, Retry: r.Retry, Expire: r.Expire, MinTTL: r.MinTTL,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (r *DomainRepository) Create(ctx context.Context, d *model.Domain) error {
	rec := domainToRecord(d)
	if rec.ID == "" {
		rec.ID = "domain-" + uuid.NewString()
		d.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *DomainRepository) Get(ctx context.Context, id string) (*model.Domain, error) {
	var rec DomainRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrDomainNotFound
		}
		return nil, err
	}
	return domainToModel(&rec), nil
}

func (r *DomainRepository) GetByName(ctx context.Context, name string) (*model.Domain, error) {
	var rec DomainRecord
	if err := r.db.WithContext(ctx).First(&rec, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrDomainNotFound
		}
		return nil, err
	}
	return domainToModel(&rec), nil
}

func (r *DomainRepository) List(ctx context.Context) ([]*model.Domain, error) {
	var recs []DomainRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Domain, 0, len(recs))
	for i := range recs {
		out = append(out, domainToModel(&recs[i]))
	}
	return out, nil
}

func (r *DomainRepository) ListBySuffix(ctx context.Context, name string) ([]*model.Domain, error) {
	var recs []DomainRecord
	if err := r.db.WithContext(ctx).Where("name LIKE ?", "%."+name).Order("name ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Domain, 0, len(recs))
	for i := range recs {
		out = append(out, domainToModel(&recs[i]))
	}
	return out, nil
}

func (r *DomainRepository) Update(ctx context.Context, d *model.Domain) error {
	rec := domainToRecord(d)
	// Select forces zero-valued fields (cleared TopID, blank timers)
	// through; Updates alone skips them.
	return r.db.WithContext(ctx).Model(&DomainRecord{}).Where("id = ?", rec.ID).
		Select("Name", "AccountID", "TopID", "Serial", "Refresh", "Retry", "Expire", "MinTTL", "UpdatedAt").
		Updates(rec).Error
}

func (r *DomainRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&DomainRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrDomainNotFound
	}
	return nil
}

var _ domain.DomainRepository = (*DomainRepository)(nil)
