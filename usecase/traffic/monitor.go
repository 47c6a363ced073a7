// Package traffic implements usage monitoring over per-site access logs.
package traffic

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/logging"
	"github.com/panelops/panelops/internal/traffic"
)

// Repos holds repositories needed for traffic use cases.
type Repos struct {
	Site        domain.SiteRepository
	TrafficPoll domain.TrafficPollRepository
}

// UseCase wires repositories and the log scan settings.
type UseCase struct {
	Repos *Repos

	// LogDir holds per-site access logs named <unique>.log.
	LogDir string

	// IgnoreHosts excludes matching lines from usage sums.
	IgnoreHosts []string

	// Now is the clock; tests override it.
	Now func() time.Time
}

// MonitorInput holds parameters for one monitoring pass.
type MonitorInput struct {
	// SiteIDs restricts the pass to the given sites; empty means all.
	SiteIDs []string `json:"site_ids,omitempty"`
}

// MonitorOutput contains the measured usage per site.
type MonitorOutput struct {
	Usages []model.TrafficUsage `json:"usages"`
}

// Monitor sums each site's transferred bytes since its last poll and
// advances the poll timestamp. The window starts at the last poll
// inclusive and ends at the current time exclusive, so consecutive passes
// never count a line twice. Rotated logs still covering the window are
// included.
func (u *UseCase) Monitor(ctx context.Context, in *MonitorInput) (*MonitorOutput, error) {
	logger := logging.FromContext(ctx)
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	sites, err := u.sites(ctx, in)
	if err != nil {
		return nil, err
	}
	monitor := &traffic.Monitor{IgnoreHosts: u.IgnoreHosts}
	out := &MonitorOutput{}
	for _, s := range sites {
		end := now()
		var start time.Time
		poll, err := u.Repos.TrafficPoll.Get(ctx, s.ID)
		switch {
		case err == nil:
			start = poll.LastPolledAt
		case errors.Is(err, model.ErrSiteNotFound):
			// never polled, the window opens at the epoch
		default:
			return nil, err
		}
		window := traffic.NewWindow(start, end)
		logPath := filepath.Join(u.LogDir, s.UniqueName()+".log")
		bytes, err := monitor.SumFiles(window, logPath, logPath+".1")
		if err != nil {
			return nil, err
		}
		logger.Debug(ctx, "measured site traffic",
			"site", s.UniqueName(),
			"bytes", bytes)
		if err := u.Repos.TrafficPoll.Upsert(ctx, &model.TrafficPoll{
			SiteID:       s.ID,
			LastPolledAt: end,
			UpdatedAt:    end,
		}); err != nil {
			return nil, err
		}
		out.Usages = append(out.Usages, model.TrafficUsage{SiteID: s.ID, Bytes: bytes})
	}
	return out, nil
}

func (u *UseCase) sites(ctx context.Context, in *MonitorInput) ([]*model.Site, error) {
	if in == nil || len(in.SiteIDs) == 0 {
		return u.Repos.Site.List(ctx)
	}
	sites := make([]*model.Site, 0, len(in.SiteIDs))
	for _, id := range in.SiteIDs {
		s, err := u.Repos.Site.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, nil
}
