package dns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/naming"
	"github.com/panelops/panelops/internal/zonefile"
)

// CreateInput contains the data required to register a new domain.
type CreateInput struct {
	// Name is the domain name; it is stored lower-cased.
	Name string `json:"name"`
	// AccountID is the owning account. A subdomain left empty inherits
	// the account of its top domain.
	AccountID string `json:"account_id"`
}

// CreateOutput contains the registered Domain.
type CreateOutput struct {
	Domain *model.Domain `json:"domain"`
}

// Create registers a domain. The closest registered ancestor, when one
// exists, determines the zone the domain belongs to; otherwise the domain
// becomes a top domain owning a fresh zone, and any already registered
// name under it is rewired to the new top.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" {
		return nil, model.ErrDomainInvalid
	}
	name := strings.ToLower(strings.TrimSpace(in.Name))
	if err := naming.ValidateDomainName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDomainInvalid, err)
	}
	now := time.Now().UTC()
	d := &model.Domain{
		Name:      name,
		AccountID: in.AccountID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	top, err := u.findTop(ctx, name)
	if err != nil {
		return nil, err
	}
	if top != nil {
		d.TopID = top.ID
		if d.AccountID == "" {
			d.AccountID = top.AccountID
		}
	} else {
		d.Serial = zonefile.GenerateSerial(now)
	}
	if err := u.Repos.Domain.Create(ctx, d); err != nil {
		return nil, err
	}
	if d.IsTop() {
		if err := u.adoptSubdomains(ctx, d); err != nil {
			return nil, err
		}
	}
	return &CreateOutput{Domain: d}, nil
}

// findTop resolves the top domain a new name belongs to: the zone owner of
// the closest registered ancestor, or nil when no ancestor is registered.
func (u *UseCase) findTop(ctx context.Context, name string) (*model.Domain, error) {
	for _, candidate := range model.ParentCandidates(name) {
		parent, err := u.Repos.Domain.GetByName(ctx, candidate)
		if err != nil {
			if errors.Is(err, model.ErrDomainNotFound) {
				continue
			}
			return nil, err
		}
		if parent.IsTop() {
			return parent, nil
		}
		return u.Repos.Domain.Get(ctx, parent.TopID)
	}
	return nil, nil
}

// adoptSubdomains rewires every registered name under a new top domain.
// Each rewritten domain is saved individually so a failure identifies the
// offending row.
func (u *UseCase) adoptSubdomains(ctx context.Context, top *model.Domain) error {
	subdomains, err := u.Repos.Domain.ListBySuffix(ctx, top.Name)
	if err != nil {
		return err
	}
	for _, sub := range subdomains {
		if sub.TopID == top.ID {
			continue
		}
		sub.TopID = top.ID
		sub.Serial = 0
		if err := u.Repos.Domain.Update(ctx, sub); err != nil {
			return fmt.Errorf("rewire subdomain %s: %w", sub.Name, err)
		}
	}
	return nil
}
