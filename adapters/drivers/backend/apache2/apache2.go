// Package apache2 deploys Apache virtual-host configuration for sites.
package apache2

import (
	"fmt"
	"path/filepath"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/internal/script"
)

const (
	backendName = "apache2"
	updatedVar  = "UPDATED_APACHE"
)

func init() {
	backenddrv.Register(backendName, func(cfg *panelopscfg.Root) (backenddrv.Backend, error) {
		return New(cfg), nil
	})
}

// Backend renders and deploys per-site Apache configuration under
// sites-available, toggling sites-enabled symlinks through a2ensite and
// a2dissite.
type Backend struct {
	cfg      *panelopscfg.Root
	renderer *Renderer
}

var _ backenddrv.SiteBackend = (*Backend)(nil)

func New(cfg *panelopscfg.Root) *Backend {
	return &Backend{cfg: cfg, renderer: NewRenderer(cfg)}
}

func (be *Backend) ID() string         { return backendName }
func (be *Backend) Daemon() string     { return "apache2" }
func (be *Backend) UpdatedVar() string { return updatedVar }

func (be *Backend) availablePath(uniqueName string) string {
	return filepath.Join(be.cfg.Web.ConfDir, "sites-available", uniqueName+".conf")
}

func (be *Backend) enabledPath(uniqueName string) string {
	return filepath.Join(be.cfg.Web.ConfDir, "sites-enabled", uniqueName+".conf")
}

func (be *Backend) Prepare(b *script.Builder) error {
	b.Appendf("%s=0", updatedVar)
	return nil
}

// SaveSite writes the site's virtual-host file when its content changed
// and reconciles the enabled state with the site's active flag. A site
// with no domains has no ServerName and is only disabled.
func (be *Backend) SaveSite(b *script.Builder, st *backenddrv.SiteState) error {
	uniqueName := st.Site.UniqueName()
	serverName, _ := serverNames(st.Domains)
	if serverName == "" {
		b.RunIfPresent(fmt.Sprintf("disable site %s", uniqueName),
			be.enabledPath(uniqueName),
			fmt.Sprintf("a2dissite %s.conf", uniqueName), updatedVar)
		return nil
	}
	doc, err := be.renderer.Document(st)
	if err != nil {
		return err
	}
	b.WriteChanged(fmt.Sprintf("write site %s", uniqueName),
		be.availablePath(uniqueName), doc, updatedVar)
	if st.Site.Active {
		b.RunIfMissing(fmt.Sprintf("enable site %s", uniqueName),
			be.enabledPath(uniqueName),
			fmt.Sprintf("a2ensite %s.conf", uniqueName), updatedVar)
	} else {
		b.RunIfPresent(fmt.Sprintf("disable site %s", uniqueName),
			be.enabledPath(uniqueName),
			fmt.Sprintf("a2dissite %s.conf", uniqueName), updatedVar)
	}
	return nil
}

// DeleteSite disables the site and removes its configuration file.
func (be *Backend) DeleteSite(b *script.Builder, st *backenddrv.SiteState) error {
	uniqueName := st.Site.UniqueName()
	b.RunIfPresent(fmt.Sprintf("disable site %s", uniqueName),
		be.enabledPath(uniqueName),
		fmt.Sprintf("a2dissite %s.conf", uniqueName), updatedVar)
	b.Appendf("rm -f %s", be.availablePath(uniqueName))
	return nil
}

func (be *Backend) Commit(b *script.Builder) error {
	b.Appendf(`echo "UPDATED=${%s:-0}"`, updatedVar)
	return nil
}

// Restart reloads a running daemon and starts a stopped one.
func (be *Backend) Restart() string {
	return "if pgrep apache2 > /dev/null; then service apache2 reload; else service apache2 start; fi"
}
