package dns

import (
	"context"
	"sort"

	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/zonefile"
)

// RenderZoneInput identifies the zone to render.
type RenderZoneInput struct {
	// Domain is a domain name or ID; a subdomain renders its zone's top
	// domain.
	Domain string `json:"domain"`
}

// RenderZoneOutput contains the rendered zone file text.
type RenderZoneOutput struct {
	Domain *model.Domain `json:"domain"`
	Text   string        `json:"text"`
}

// RenderZone composes the effective record sets of a zone and renders the
// zone file text.
func (u *UseCase) RenderZone(ctx context.Context, in *RenderZoneInput) (*RenderZoneOutput, error) {
	if in == nil || in.Domain == "" {
		return nil, model.ErrDomainInvalid
	}
	d, err := u.resolveDomain(ctx, in.Domain)
	if err != nil {
		return nil, err
	}
	if !d.IsTop() {
		d, err = u.Repos.Domain.Get(ctx, d.TopID)
		if err != nil {
			return nil, err
		}
	}
	records, err := u.Repos.Record.ListByDomain(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	top := zonefile.DomainRecords{
		Domain:  d,
		Records: zonefile.Compose(d, records, u.Defaults),
	}
	members, err := u.ZoneMembers(ctx, d)
	if err != nil {
		return nil, err
	}
	subdomains := make([]zonefile.DomainRecords, 0, len(members))
	for _, sub := range members {
		subRecords, err := u.Repos.Record.ListByDomain(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		subdomains = append(subdomains, zonefile.DomainRecords{
			Domain:  sub,
			Records: zonefile.Compose(sub, subRecords, u.Defaults),
		})
	}
	return &RenderZoneOutput{Domain: d, Text: zonefile.Render(top, subdomains)}, nil
}

// ZoneMembers returns the subdomains belonging to a top domain's zone, in
// name order.
func (u *UseCase) ZoneMembers(ctx context.Context, top *model.Domain) ([]*model.Domain, error) {
	all, err := u.Repos.Domain.ListBySuffix(ctx, top.Name)
	if err != nil {
		return nil, err
	}
	members := all[:0]
	for _, sub := range all {
		if sub.TopID == top.ID {
			members = append(members, sub)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}
