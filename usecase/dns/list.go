package dns

import (
	"context"

	"github.com/panelops/panelops/domain/model"
)

// ListInput filters the domain listing.
type ListInput struct {
	// TopOnly restricts the listing to zone-owning top domains.
	TopOnly bool `json:"top_only,omitempty"`
}

// ListOutput contains the listed domains.
type ListOutput struct {
	Domains []*model.Domain `json:"domains"`
}

// List returns registered domains.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	domains, err := u.Repos.Domain.List(ctx)
	if err != nil {
		return nil, err
	}
	if in != nil && in.TopOnly {
		tops := domains[:0]
		for _, d := range domains {
			if d.IsTop() {
				tops = append(tops, d)
			}
		}
		domains = tops
	}
	return &ListOutput{Domains: domains}, nil
}
