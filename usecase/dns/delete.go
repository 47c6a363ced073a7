package dns

import (
	"context"
	"fmt"

	"github.com/panelops/panelops/domain/model"
)

// DeleteInput identifies the domain to delete.
type DeleteInput struct {
	ID string `json:"id"`
}

// DeleteOutput is the result of a domain deletion.
type DeleteOutput struct{}

// Delete removes a domain and its declared records. A top domain with
// registered subdomains cannot be deleted.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.ID == "" {
		return nil, model.ErrDomainInvalid
	}
	d, err := u.Repos.Domain.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if d.IsTop() {
		subdomains, err := u.Repos.Domain.ListBySuffix(ctx, d.Name)
		if err != nil {
			return nil, err
		}
		if len(subdomains) > 0 {
			return nil, fmt.Errorf("%w: %s still has %d subdomains",
				model.ErrDomainInvalid, d.Name, len(subdomains))
		}
	}
	records, err := u.Repos.Record.ListByDomain(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := u.Repos.Record.Delete(ctx, rec.ID); err != nil {
			return nil, err
		}
	}
	if err := u.Repos.Domain.Delete(ctx, d.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
