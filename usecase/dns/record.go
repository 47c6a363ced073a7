package dns

import (
	"context"
	"fmt"
	"time"

	"github.com/panelops/panelops/domain/model"
)

// AddRecordInput contains the data for one declared record.
type AddRecordInput struct {
	// Domain is the owning domain's name or ID.
	Domain string           `json:"domain"`
	Type   model.RecordType `json:"type"`
	TTL    string           `json:"ttl,omitempty"`
	Value  string           `json:"value"`
}

// AddRecordOutput contains the persisted record.
type AddRecordOutput struct {
	Record *model.Record `json:"record"`
}

// AddRecord declares a record on a domain. The value is normalized and
// checked for syntactic validity for its type before persisting.
func (u *UseCase) AddRecord(ctx context.Context, in *AddRecordInput) (*AddRecordOutput, error) {
	if in == nil || in.Domain == "" || in.Value == "" {
		return nil, model.ErrRecordInvalid
	}
	d, err := u.resolveDomain(ctx, in.Domain)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec := &model.Record{
		DomainID:  d.ID,
		Type:      in.Type,
		TTL:       in.TTL,
		Value:     in.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRecordInvalid, err)
	}
	if err := u.Repos.Record.Create(ctx, rec); err != nil {
		return nil, err
	}
	return &AddRecordOutput{Record: rec}, nil
}

// ListRecordsInput identifies the domain whose records to list.
type ListRecordsInput struct {
	Domain string `json:"domain"`
}

// ListRecordsOutput contains the declared records in persisted order.
type ListRecordsOutput struct {
	Records []*model.Record `json:"records"`
}

// ListRecords returns the domain's declared records in declaration order.
func (u *UseCase) ListRecords(ctx context.Context, in *ListRecordsInput) (*ListRecordsOutput, error) {
	if in == nil || in.Domain == "" {
		return nil, model.ErrRecordInvalid
	}
	d, err := u.resolveDomain(ctx, in.Domain)
	if err != nil {
		return nil, err
	}
	records, err := u.Repos.Record.ListByDomain(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return &ListRecordsOutput{Records: records}, nil
}

// DeleteRecordInput identifies the record to delete.
type DeleteRecordInput struct {
	ID string `json:"id"`
}

// DeleteRecordOutput is the result of a record deletion.
type DeleteRecordOutput struct{}

// DeleteRecord removes one declared record.
func (u *UseCase) DeleteRecord(ctx context.Context, in *DeleteRecordInput) (*DeleteRecordOutput, error) {
	if in == nil || in.ID == "" {
		return nil, model.ErrRecordInvalid
	}
	if err := u.Repos.Record.Delete(ctx, in.ID); err != nil {
		return nil, err
	}
	return &DeleteRecordOutput{}, nil
}

// resolveDomain accepts a domain ID or name.
func (u *UseCase) resolveDomain(ctx context.Context, ref string) (*model.Domain, error) {
	d, err := u.Repos.Domain.GetByName(ctx, ref)
	if err == nil {
		return d, nil
	}
	return u.Repos.Domain.Get(ctx, ref)
}
