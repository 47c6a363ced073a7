package dns

import (
	"context"

	"github.com/panelops/panelops/domain/model"
)

// GetInput identifies a domain by ID or name.
type GetInput struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// GetOutput contains the resolved Domain.
type GetOutput struct {
	Domain *model.Domain `json:"domain"`
}

// Get resolves a domain by ID when given, by name otherwise.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || (in.ID == "" && in.Name == "") {
		return nil, model.ErrDomainInvalid
	}
	var (
		d   *model.Domain
		err error
	)
	if in.ID != "" {
		d, err = u.Repos.Domain.Get(ctx, in.ID)
	} else {
		d, err = u.Repos.Domain.GetByName(ctx, in.Name)
	}
	if err != nil {
		return nil, err
	}
	return &GetOutput{Domain: d}, nil
}
