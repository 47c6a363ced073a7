package site

import (
	"context"
	"time"

	"github.com/panelops/panelops/domain/model"
)

// UpdateInput contains the mutable site fields; nil fields are unchanged.
type UpdateInput struct {
	ID         string                 `json:"id"`
	Protocol   *model.Protocol        `json:"protocol,omitempty"`
	Active     *bool                  `json:"active,omitempty"`
	Contents   *[]model.Content       `json:"contents,omitempty"`
	Directives *[]model.SiteDirective `json:"directives,omitempty"`
	DomainIDs  *[]string              `json:"domain_ids,omitempty"`
}

// UpdateOutput contains the updated Site.
type UpdateOutput struct {
	Site *model.Site `json:"site"`
}

// Update applies partial changes to a site.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil || in.ID == "" {
		return nil, model.ErrSiteInvalid
	}
	s, err := u.Repos.Site.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Protocol != nil {
		s.Protocol = *in.Protocol
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	if in.Contents != nil {
		s.Contents = *in.Contents
	}
	if in.Directives != nil {
		s.Directives = *in.Directives
	}
	if in.DomainIDs != nil {
		s.DomainIDs = *in.DomainIDs
	}
	s.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Site.Update(ctx, s); err != nil {
		return nil, err
	}
	return &UpdateOutput{Site: s}, nil
}
