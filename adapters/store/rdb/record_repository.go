package rdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
	"gorm.io/gorm"
)

type RecordRepository struct{ db *gorm.DB }

func NewRecordRepository(db *gorm.DB) *RecordRepository { return &RecordRepository{db: db} }

func recordToRow(rec *model.Record) *ResourceRecord {
	return &ResourceRecord{
		ID: rec.ID, DomainID: rec.DomainID, Type: string(rec.Type),
		TTL: rec.TTL, Value: rec.Value, Order: rec.Order,
		CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt,
	}
}

func recordToModel(r *ResourceRecord) *model.Record {
	return &model.Record{
		ID: r.ID, DomainID: r.DomainID, Type: model.RecordType(r.Type),
		TTL: r.TTL, Value: r.Value, Order: r.Order,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (r *RecordRepository) Create(ctx context.Context, rec *model.Record) error {
	row := recordToRow(rec)
	if row.ID == "" {
		row.ID = "record-" + uuid.NewString()
		rec.ID = row.ID
	}
	if row.Order == 0 {
		row.Order = time.Now().UnixNano()
		rec.Order = row.Order
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *RecordRepository) Get(ctx context.Context, id string) (*model.Record, error) {
	var row ResourceRecord
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}
	return recordToModel(&row), nil
}

func (r *RecordRepository) ListByDomain(ctx context.Context, domainID string) ([]*model.Record, error) {
	var rows []ResourceRecord
	if err := r.db.WithContext(ctx).Where("domain_id = ?", domainID).
		Order("record_order ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Record, 0, len(rows))
	for i := range rows {
		out = append(out, recordToModel(&rows[i]))
	}
	return out, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ResourceRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrRecordNotFound
	}
	return nil
}

var _ domain.RecordRepository = (*RecordRepository)(nil)
