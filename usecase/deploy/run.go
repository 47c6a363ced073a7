package deploy

import (
	"context"
	"fmt"
	"strings"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/logging"
	"github.com/panelops/panelops/internal/script"
)

// RunInput holds parameters for one deployment pass.
type RunInput struct {
	// Backends restricts the pass to the named backends; empty runs all.
	Backends []string `json:"backends,omitempty"`
}

// RunOutput reports the result of one deployment pass.
type RunOutput struct {
	Results []BackendResult `json:"results"`
	// Failures lists per-resource render errors; the affected resources
	// were skipped, everything else was deployed.
	Failures []ResourceFailure `json:"failures,omitempty"`
}

// BackendResult describes the outcome of one backend on one host.
type BackendResult struct {
	Backend   string `json:"backend"`
	Host      string `json:"host"`
	Updated   bool   `json:"updated"`
	Restarted bool   `json:"restarted"`
}

// ResourceFailure identifies a resource whose rendering failed.
type ResourceFailure struct {
	Backend  string `json:"backend"`
	Resource string `json:"resource"`
	Message  string `json:"message"`
}

// Run executes one deployment pass: every backend builds its script from
// the full declared state, the scripts run on every target host, and
// restart coordination decides which backend finally restarts each shared
// daemon. A resource whose rendering fails is rolled back to its script
// checkpoint and reported without aborting the pass.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	logger := logging.FromContext(ctx)
	selected := u.selectBackends(in)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no backends selected")
	}
	hosts := u.Hosts
	if len(hosts) == 0 {
		hosts = []string{""}
	}

	out := &RunOutput{}
	scripts := make(map[string]string, len(selected))
	for _, backend := range selected {
		text, failures, err := u.buildScript(ctx, backend)
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", backend.ID(), err)
		}
		out.Failures = append(out.Failures, failures...)
		scripts[backend.ID()] = text
	}

	// Register every participant before any script runs, so the last
	// finisher is decided over the whole pass.
	for _, backend := range selected {
		if backend.Daemon() == "" {
			continue
		}
		if err := u.Coordinator.Register(ctx, backend.Daemon(), backend.ID()); err != nil {
			return nil, err
		}
	}

	for _, backend := range selected {
		updated := false
		for _, host := range hosts {
			output, err := u.Executor.Run(ctx, host, scripts[backend.ID()])
			if err != nil {
				return out, err
			}
			hostUpdated := parseUpdated(output)
			updated = updated || hostUpdated
			out.Results = append(out.Results, BackendResult{
				Backend: backend.ID(),
				Host:    host,
				Updated: hostUpdated,
			})
		}
		if backend.Daemon() == "" {
			continue
		}
		shouldRestart, err := u.Coordinator.Finish(ctx, backend.Daemon(), backend.ID(), updated)
		if err != nil {
			return out, err
		}
		if !shouldRestart {
			continue
		}
		logger.Info(ctx, "restarting daemon",
			"daemon", backend.Daemon(),
			"backend", backend.ID())
		for i := range out.Results {
			if out.Results[i].Backend == backend.ID() {
				out.Results[i].Restarted = true
			}
		}
		for _, host := range hosts {
			if _, err := u.Executor.Run(ctx, host, backend.Restart()); err != nil {
				return out, fmt.Errorf("restart %s: %w", backend.Daemon(), err)
			}
		}
	}
	return out, nil
}

func (u *UseCase) selectBackends(in *RunInput) []backenddrv.Backend {
	if in == nil || len(in.Backends) == 0 {
		return u.Backends
	}
	wanted := map[string]bool{}
	for _, name := range in.Backends {
		wanted[name] = true
	}
	var selected []backenddrv.Backend
	for _, backend := range u.Backends {
		if wanted[backend.ID()] {
			selected = append(selected, backend)
		}
	}
	return selected
}

// buildScript drives one backend over the full declared state.
func (u *UseCase) buildScript(ctx context.Context, backend backenddrv.Backend) (string, []ResourceFailure, error) {
	b := script.New()
	if err := backend.Prepare(b); err != nil {
		return "", nil, err
	}
	var failures []ResourceFailure
	if sb, ok := backend.(backenddrv.SiteBackend); ok {
		states, err := u.siteStates(ctx)
		if err != nil {
			return "", nil, err
		}
		for _, st := range states {
			mark := b.Mark()
			if err := sb.SaveSite(b, st); err != nil {
				b.Reset(mark)
				failures = append(failures, ResourceFailure{
					Backend:  backend.ID(),
					Resource: st.Site.UniqueName(),
					Message:  err.Error(),
				})
			}
		}
	}
	if db, ok := backend.(backenddrv.DomainBackend); ok {
		states, err := u.zoneStates(ctx)
		if err != nil {
			return "", nil, err
		}
		for _, st := range states {
			mark := b.Mark()
			if err := db.SaveZone(b, st); err != nil {
				b.Reset(mark)
				failures = append(failures, ResourceFailure{
					Backend:  backend.ID(),
					Resource: st.Domain.Name,
					Message:  err.Error(),
				})
			}
		}
	}
	if err := backend.Commit(b); err != nil {
		return "", nil, err
	}
	return b.String(), failures, nil
}

// siteStates resolves the full declared site state.
func (u *UseCase) siteStates(ctx context.Context) ([]*backenddrv.SiteState, error) {
	sites, err := u.Repos.Site.List(ctx)
	if err != nil {
		return nil, err
	}
	states := make([]*backenddrv.SiteState, 0, len(sites))
	for _, s := range sites {
		st := &backenddrv.SiteState{
			Site: s,
			Apps: map[string]*model.WebApp{},
		}
		for _, domainID := range s.DomainIDs {
			d, err := u.Repos.Domain.Get(ctx, domainID)
			if err != nil {
				return nil, fmt.Errorf("site %s: %w", s.Name, err)
			}
			st.Domains = append(st.Domains, d)
		}
		for _, content := range s.Contents {
			if _, ok := st.Apps[content.WebAppID]; ok {
				continue
			}
			app, err := u.Repos.WebApp.Get(ctx, content.WebAppID)
			if err != nil {
				return nil, fmt.Errorf("site %s: %w", s.Name, err)
			}
			st.Apps[content.WebAppID] = app
		}
		states = append(states, st)
	}
	return states, nil
}

// zoneStates resolves one zone state per top domain.
func (u *UseCase) zoneStates(ctx context.Context) ([]*backenddrv.ZoneState, error) {
	domains, err := u.Repos.Domain.List(ctx)
	if err != nil {
		return nil, err
	}
	byTop := map[string]*backenddrv.ZoneState{}
	var states []*backenddrv.ZoneState
	for _, d := range domains {
		if !d.IsTop() {
			continue
		}
		records, err := u.Repos.Record.ListByDomain(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		st := &backenddrv.ZoneState{Domain: d, Records: records}
		byTop[d.ID] = st
		states = append(states, st)
	}
	for _, d := range domains {
		if d.IsTop() {
			continue
		}
		st, ok := byTop[d.TopID]
		if !ok {
			continue
		}
		records, err := u.Repos.Record.ListByDomain(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		st.Subdomains = append(st.Subdomains, backenddrv.SubdomainState{
			Domain:  d,
			Records: records,
		})
	}
	return states, nil
}

// parseUpdated reads the updated flag a script reports as its last output.
func parseUpdated(output string) bool {
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "UPDATED=") {
			if strings.TrimPrefix(line, "UPDATED=") == "1" {
				return true
			}
		}
	}
	return false
}
