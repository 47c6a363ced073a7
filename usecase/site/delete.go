package site

import (
	"context"

	"github.com/panelops/panelops/domain/model"
)

// DeleteInput identifies the site to delete.
type DeleteInput struct {
	ID string `json:"id"`
}

// DeleteOutput is the result of a site deletion.
type DeleteOutput struct{}

// Delete removes a site. Its deployed artifacts are removed by the next
// deploy run.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.ID == "" {
		return nil, model.ErrSiteInvalid
	}
	if err := u.Repos.Site.Delete(ctx, in.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
