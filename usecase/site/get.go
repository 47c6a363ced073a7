package site

import (
	"context"

	"github.com/panelops/panelops/domain/model"
)

// GetInput identifies the site to fetch.
type GetInput struct {
	ID string `json:"id"`
}

// GetOutput contains the fetched Site.
type GetOutput struct {
	Site *model.Site `json:"site"`
}

// Get fetches one site by ID.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == "" {
		return nil, model.ErrSiteInvalid
	}
	s, err := u.Repos.Site.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Site: s}, nil
}
