// Package bind9 deploys zone files and named.conf zone stanzas for top
// domains.
package bind9

import (
	"fmt"
	"path/filepath"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/internal/script"
	"github.com/panelops/panelops/internal/zonefile"
)

const (
	backendName = "bind9"
	updatedVar  = "UPDATED_NAMED"
)

func init() {
	backenddrv.Register(backendName, func(cfg *panelopscfg.Root) (backenddrv.Backend, error) {
		return New(cfg), nil
	})
}

// Backend writes one zone file per top domain and keeps a generated
// named.conf fragment holding the zone stanzas. Both writes are guarded
// by content diff so an unchanged zone never reloads the daemon.
type Backend struct {
	cfg *panelopscfg.Root

	// seq numbers the per-zone shell variables within one script.
	seq int
}

var _ backenddrv.DomainBackend = (*Backend)(nil)

func New(cfg *panelopscfg.Root) *Backend {
	return &Backend{cfg: cfg}
}

func (be *Backend) ID() string         { return backendName }
func (be *Backend) Daemon() string     { return "bind9" }
func (be *Backend) UpdatedVar() string { return updatedVar }

func (be *Backend) zonePath(name string) string {
	return filepath.Join(be.cfg.DNS.ZoneDir, name+".db")
}

func (be *Backend) stanzaPath(name string) string {
	return filepath.Join(be.cfg.DNS.ZoneDir, "conf", name+".conf")
}

func (be *Backend) defaults() zonefile.Defaults {
	dns := be.cfg.DNS
	return zonefile.Defaults{
		TTL:               dns.TTL,
		NameServers:       dns.NameServers,
		PrimaryNameServer: dns.PrimaryNameServer,
		Hostmaster:        dns.Hostmaster,
		MX:                dns.MX,
		A:                 dns.A,
		AAAA:              dns.AAAA,
		Refresh:           dns.Refresh,
		Retry:             dns.Retry,
		Expire:            dns.Expire,
		MinTTL:            dns.MinTTL,
	}
}

func (be *Backend) Prepare(b *script.Builder) error {
	b.Appendf("%s=0", updatedVar)
	return nil
}

// SaveZone composes and writes the zone file of a top domain plus its
// named.conf stanza, then reloads just that zone when either changed.
func (be *Backend) SaveZone(b *script.Builder, st *backenddrv.ZoneState) error {
	defaults := be.defaults()
	top := zonefile.DomainRecords{
		Domain:  st.Domain,
		Records: zonefile.Compose(st.Domain, st.Records, defaults),
	}
	subdomains := make([]zonefile.DomainRecords, 0, len(st.Subdomains))
	for _, sub := range st.Subdomains {
		subdomains = append(subdomains, zonefile.DomainRecords{
			Domain:  sub.Domain,
			Records: zonefile.Compose(sub.Domain, sub.Records, defaults),
		})
	}
	name := st.Domain.Name
	be.seq++
	zoneVar := fmt.Sprintf("UPDATED_ZONE_%d", be.seq)
	b.Appendf("%s=0", zoneVar)
	b.WriteChanged(fmt.Sprintf("write zone %s", name),
		be.zonePath(name), zonefile.Render(top, subdomains), zoneVar)
	stanza := fmt.Sprintf("zone \"%s\" {\n    type master;\n    file \"%s\";\n};",
		name, be.zonePath(name))
	b.WriteChanged(fmt.Sprintf("write zone stanza %s", name),
		be.stanzaPath(name), stanza, updatedVar)
	// Reload just this zone on content change; a failed reload falls back
	// to the coordinated daemon restart.
	b.Appendf(`if [[ ${%s:-0} == 1 ]]; then
    named-checkzone %s %s && rndc reload %s || %s=1
fi`, zoneVar, name, be.zonePath(name), name, updatedVar)
	return nil
}

// DeleteZone removes the zone file and its stanza; dropping a stanza
// needs a daemon reconfiguration, so it raises the updated flag.
func (be *Backend) DeleteZone(b *script.Builder, st *backenddrv.ZoneState) error {
	name := st.Domain.Name
	b.RunIfPresent(fmt.Sprintf("remove zone stanza %s", name),
		be.stanzaPath(name),
		fmt.Sprintf("rm -f %s", be.stanzaPath(name)), updatedVar)
	b.Appendf("rm -f %s", be.zonePath(name))
	return nil
}

func (be *Backend) Commit(b *script.Builder) error {
	b.Appendf(`echo "UPDATED=${%s:-0}"`, updatedVar)
	return nil
}

// Restart reloads a running daemon and starts a stopped one.
func (be *Backend) Restart() string {
	return "if pgrep named > /dev/null; then rndc reconfig; else service bind9 start; fi"
}
