package dns

import (
	"context"
	"time"

	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/zonefile"
)

// RefreshSerialInput identifies the zone whose serial to advance.
type RefreshSerialInput struct {
	// Domain is a domain name or ID; a subdomain refreshes its zone's
	// top domain.
	Domain string `json:"domain"`
}

// RefreshSerialOutput contains the new serial.
type RefreshSerialOutput struct {
	Domain *model.Domain `json:"domain"`
	Serial int           `json:"serial"`
}

// RefreshSerial advances the zone serial and persists it. Secondaries only
// transfer a zone whose serial moved forward, so every composed change
// must be preceded by a refresh.
func (u *UseCase) RefreshSerial(ctx context.Context, in *RefreshSerialInput) (*RefreshSerialOutput, error) {
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
	serial, err := zonefile.NextSerial(d.Serial, time.Now())
	if err != nil {
		return nil, err
	}
	d.Serial = serial
	d.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Domain.Update(ctx, d); err != nil {
		return nil, err
	}
	return &RefreshSerialOutput{Domain: d, Serial: serial}, nil
}
