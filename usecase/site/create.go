package site

import (
	"context"
	"fmt"
	"time"

	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/naming"
)

// CreateInput contains the data required to create a site.
type CreateInput struct {
	Name      string         `json:"name"`
	AccountID string         `json:"account_id"`
	Protocol  model.Protocol `json:"protocol,omitempty"`
	// Contents maps URL path prefixes to webapp IDs, in declaration order.
	Contents []model.Content `json:"contents,omitempty"`
	// Directives holds site-level directive values.
	Directives []model.SiteDirective `json:"directives,omitempty"`
	// DomainIDs references the domains served by this site.
	DomainIDs []string `json:"domain_ids,omitempty"`
	Active    *bool    `json:"active,omitempty"`
}

// CreateOutput contains the created Site.
type CreateOutput struct {
	Site *model.Site `json:"site"`
}

// Create persists a new Site. Referenced webapps and domains must exist;
// content paths are normalized.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" || in.AccountID == "" {
		return nil, model.ErrSiteInvalid
	}
	protocol := in.Protocol
	if protocol == "" {
		protocol = model.ProtocolHTTP
	}
	switch protocol {
	case model.ProtocolHTTP, model.ProtocolHTTPS, model.ProtocolHTTPAndHTTPS, model.ProtocolHTTPSOnly:
	default:
		return nil, fmt.Errorf("%w: unknown protocol %q", model.ErrSiteInvalid, protocol)
	}
	contents := make([]model.Content, 0, len(in.Contents))
	for _, content := range in.Contents {
		if _, err := u.Repos.WebApp.Get(ctx, content.WebAppID); err != nil {
			return nil, fmt.Errorf("content %q: %w", content.Path, err)
		}
		contents = append(contents, model.Content{
			Path:     naming.NormalizeURLPath(content.Path),
			WebAppID: content.WebAppID,
		})
	}
	for _, domainID := range in.DomainIDs {
		if _, err := u.Repos.Domain.Get(ctx, domainID); err != nil {
			return nil, err
		}
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now().UTC()
	s := &model.Site{
		Name:       in.Name,
		AccountID:  in.AccountID,
		Protocol:   protocol,
		Active:     active,
		Contents:   contents,
		Directives: in.Directives,
		DomainIDs:  in.DomainIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.Repos.Site.Create(ctx, s); err != nil {
		return nil, err
	}
	return &CreateOutput{Site: s}, nil
}
