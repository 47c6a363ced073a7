package site

import (
	"context"

	"github.com/panelops/panelops/domain/model"
)

// ListInput filters the site listing.
type ListInput struct {
	AccountID string `json:"account_id,omitempty"`
}

// ListOutput contains the listed sites.
type ListOutput struct {
	Sites []*model.Site `json:"sites"`
}

// List returns sites, optionally restricted to one account.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	sites, err := u.Repos.Site.List(ctx)
	if err != nil {
		return nil, err
	}
	if in != nil && in.AccountID != "" {
		filtered := sites[:0]
		for _, s := range sites {
			if s.AccountID == in.AccountID {
				filtered = append(filtered, s)
			}
		}
		sites = filtered
	}
	return &ListOutput{Sites: sites}, nil
}
