// Package webapp implements web application management use cases.
package webapp

import (
	"context"
	"time"

	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
)

// Repos holds repositories needed for webapp use cases.
type Repos struct {
	WebApp domain.WebAppRepository
}

// UseCase wires repositories needed for webapp use cases.
type UseCase struct {
	Repos *Repos
}

// CreateInput contains the data required to create a webapp.
type CreateInput struct {
	Name      string          `json:"name"`
	AccountID string          `json:"account_id"`
	Type      string          `json:"type,omitempty"`
	Directive model.Directive `json:"directive"`
	DataDir   string          `json:"data_dir,omitempty"`
}

// CreateOutput contains the created WebApp.
type CreateOutput struct {
	WebApp *model.WebApp `json:"webapp"`
}

// Create persists a new WebApp.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" || in.AccountID == "" || in.Directive.Name == "" {
		return nil, model.ErrWebAppInvalid
	}
	now := time.Now().UTC()
	a := &model.WebApp{
		Name:      in.Name,
		AccountID: in.AccountID,
		Type:      in.Type,
		Directive: in.Directive,
		DataDir:   in.DataDir,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Repos.WebApp.Create(ctx, a); err != nil {
		return nil, err
	}
	return &CreateOutput{WebApp: a}, nil
}

// ListOutput contains all webapps.
type ListOutput struct {
	WebApps []*model.WebApp `json:"webapps"`
}

// List returns all webapps.
func (u *UseCase) List(ctx context.Context) (*ListOutput, error) {
	apps, err := u.Repos.WebApp.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{WebApps: apps}, nil
}

// DeleteInput identifies the webapp to delete.
type DeleteInput struct {
	ID string `json:"id"`
}

// Delete removes a webapp.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.ID == "" {
		return model.ErrWebAppInvalid
	}
	return u.Repos.WebApp.Delete(ctx, in.ID)
}
