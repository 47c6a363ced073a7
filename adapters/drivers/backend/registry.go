// Package backenddrv defines the service backend abstraction: a backend
// turns declared resource state into an idempotent deployment script for
// one concern of one daemon (web server configuration, process manager
// pools, zone files). Implementations live under
// adapters/drivers/backend/<name> and register themselves by name.
package backenddrv

import (
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/script"
)

// Backend is the lifecycle shared by all service backends. The deploy use
// case drives it as prepare -> save/delete per resource -> commit, then
// hands the accumulated script to the execution transport.
type Backend interface {
	// ID returns the backend identifier (e.g. "apache2").
	ID() string

	// Daemon returns the name of the shared daemon whose restart is
	// coordinated across backends, or "" when the backend restarts
	// nothing.
	Daemon() string

	// UpdatedVar returns the shell variable the backend's statements set
	// to 1 when they change deployed state.
	UpdatedVar() string

	// Prepare emits one-time per-backend bookkeeping before any
	// per-resource statements.
	Prepare(b *script.Builder) error

	// Commit finalizes the script. The last statement reports the
	// updated flag so the deploy driver can feed the restart
	// coordination.
	Commit(b *script.Builder) error

	// Restart returns the script that reloads or starts the daemon.
	// Only the coordination's last finisher runs it.
	Restart() string
}

// SiteState is the resolved view of one site handed to site backends.
type SiteState struct {
	Site    *model.Site
	Domains []*model.Domain             // site's domains, for server names
	Apps    map[string]*model.WebApp    // referenced webapps by ID
}

// ZoneState is the resolved view of one zone handed to domain backends.
type ZoneState struct {
	Domain     *model.Domain // top domain owning the zone
	Records    []*model.Record
	Subdomains []SubdomainState
}

// SubdomainState pairs a subdomain with its declared records.
type SubdomainState struct {
	Domain  *model.Domain
	Records []*model.Record
}

// SiteBackend deploys per-site artifacts.
type SiteBackend interface {
	Backend
	SaveSite(b *script.Builder, st *SiteState) error
	DeleteSite(b *script.Builder, st *SiteState) error
}

// DomainBackend deploys per-zone artifacts.
type DomainBackend interface {
	Backend
	SaveZone(b *script.Builder, st *ZoneState) error
	DeleteZone(b *script.Builder, st *ZoneState) error
}

// backendFactory is a constructor function for a backend.
type backendFactory func(cfg *panelopscfg.Root) (Backend, error)

// registry holds registered backends by name.
var registry = map[string]backendFactory{}

// Register makes a backend available by the given name. Backends should
// call this from their init() function.
func Register(name string, factory backendFactory) {
	registry[name] = factory
}

// GetBackendFactory returns the backend factory function for the given name.
func GetBackendFactory(name string) (backendFactory, bool) {
	factory, exists := registry[name]
	return factory, exists
}

// Names returns the registered backend names.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}
