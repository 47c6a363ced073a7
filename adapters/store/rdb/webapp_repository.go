package rdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
	"gorm.io/gorm"
)

type WebAppRepository struct{ db *gorm.DB }

func NewWebAppRepository(db *gorm.DB) *WebAppRepository { return &WebAppRepository{db: db} }

func webappToRecord(a *model.WebApp) *WebAppRecord {
	args, _ := json.Marshal(a.Directive.Args)
	return &WebAppRecord{
		ID: a.ID, Name: a.Name, AccountID: a.AccountID, Type: a.Type,
		DirectiveName: a.Directive.Name, DirectiveArgs: string(args),
		DataDir:   a.DataDir,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func webappToModel(r *WebAppRecord) *model.WebApp {
	a := &model.WebApp{
		ID: r.ID, Name: r.Name, AccountID: r.AccountID, Type: r.Type,
		Directive: model.Directive{Name: r.DirectiveName},
		DataDir:   r.DataDir,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
	if r.DirectiveArgs != "" {
		json.Unmarshal([]byte(r.DirectiveArgs), &a.Directive.Args)
	}
	return a
}

func (r *WebAppRepository) Create(ctx context.Context, a *model.WebApp) error {
	rec := webappToRecord(a)
	if rec.ID == "" {
		rec.ID = "webapp-" + uuid.NewString()
		a.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *WebAppRepository) Get(ctx context.Context, id string) (*model.WebApp, error) {
	var rec WebAppRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrWebAppNotFound
		}
		return nil, err
	}
	return webappToModel(&rec), nil
}

func (r *WebAppRepository) List(ctx context.Context) ([]*model.WebApp, error) {
	var recs []WebAppRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.WebApp, 0, len(recs))
	for i := range recs {
		out = append(out, webappToModel(&recs[i]))
	}
	return out, nil
}

func (r *WebAppRepository) Update(ctx context.Context, a *model.WebApp) error {
	rec := webappToRecord(a)
	return r.db.WithContext(ctx).Model(&WebAppRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *WebAppRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&WebAppRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrWebAppNotFound
	}
	return nil
}

var _ domain.WebAppRepository = (*WebAppRepository)(nil)
