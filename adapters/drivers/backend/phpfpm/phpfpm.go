// Package phpfpm deploys PHP-FPM pool definitions for the fpm-mounted
// web applications of a site.
package phpfpm

import (
	"fmt"
	"path/filepath"
	"strings"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/script"
)

const (
	backendName = "phpfpm"
	updatedVar  = "UPDATED_FPM"
)

func init() {
	backenddrv.Register(backendName, func(cfg *panelopscfg.Root) (backenddrv.Backend, error) {
		return New(cfg), nil
	})
}

// Backend writes one pool file per fpm web application. It shares the
// apache2 restart coordination: a pool change can require the web daemon
// to pick up new proxy targets, while php-fpm itself is reloaded inline.
type Backend struct {
	cfg *panelopscfg.Root
}

var _ backenddrv.SiteBackend = (*Backend)(nil)

func New(cfg *panelopscfg.Root) *Backend {
	return &Backend{cfg: cfg}
}

func (be *Backend) ID() string         { return backendName }
func (be *Backend) Daemon() string     { return "apache2" }
func (be *Backend) UpdatedVar() string { return updatedVar }

func (be *Backend) Prepare(b *script.Builder) error {
	b.Appendf("%s=0", updatedVar)
	return nil
}

func poolName(app *model.WebApp) string {
	return app.AccountID + "-" + strings.ToLower(app.Name)
}

func (be *Backend) poolPath(app *model.WebApp) string {
	return filepath.Join(be.cfg.Web.FPMPoolDir, poolName(app)+".conf")
}

func poolConfig(app *model.WebApp, socket string) string {
	name := poolName(app)
	var b strings.Builder
	fmt.Fprintf(&b, ";; Managed by panelops. Manual changes will be overwritten.\n")
	fmt.Fprintf(&b, "[%s]\n", name)
	fmt.Fprintf(&b, "user = %s\n", app.AccountID)
	fmt.Fprintf(&b, "group = %s\n", app.AccountID)
	fmt.Fprintf(&b, "listen = %s\n", socket)
	if !strings.Contains(socket, ":") {
		fmt.Fprintf(&b, "listen.owner = %s\n", app.AccountID)
		b.WriteString("listen.group = www-data\n")
	}
	b.WriteString("pm = ondemand\n")
	b.WriteString("pm.max_children = 4\n")
	b.WriteString("pm.process_idle_timeout = 10s\n")
	if app.DataDir != "" {
		fmt.Fprintf(&b, "chdir = %s\n", app.DataDir)
	}
	return b.String()
}

// fpmApps returns the site's fpm-mounted applications with their sockets,
// each application at most once.
func fpmApps(st *backenddrv.SiteState) []*model.WebApp {
	seen := map[string]bool{}
	var apps []*model.WebApp
	for _, content := range st.Site.Contents {
		app, ok := st.Apps[content.WebAppID]
		if !ok || app.Directive.Name != "fpm" || seen[app.ID] {
			continue
		}
		seen[app.ID] = true
		apps = append(apps, app)
	}
	return apps
}

func (be *Backend) SaveSite(b *script.Builder, st *backenddrv.SiteState) error {
	for _, app := range fpmApps(st) {
		if len(app.Directive.Args) < 1 {
			return fmt.Errorf("webapp %s: fpm directive requires a socket", app.Name)
		}
		socket := app.Directive.Args[0]
		b.WriteChanged(fmt.Sprintf("write pool %s", poolName(app)),
			be.poolPath(app), poolConfig(app, socket), updatedVar)
	}
	return nil
}

func (be *Backend) DeleteSite(b *script.Builder, st *backenddrv.SiteState) error {
	for _, app := range fpmApps(st) {
		b.RunIfPresent(fmt.Sprintf("remove pool %s", poolName(app)),
			be.poolPath(app),
			fmt.Sprintf("rm -f %s", be.poolPath(app)), updatedVar)
	}
	return nil
}

// Commit reloads php-fpm inline when pools changed; the reported flag
// feeds the shared web daemon coordination.
func (be *Backend) Commit(b *script.Builder) error {
	b.Appendf(`if [[ ${%s:-0} == 1 ]]; then service php-fpm reload; fi`, updatedVar)
	b.Appendf(`echo "UPDATED=${%s:-0}"`, updatedVar)
	return nil
}

// Restart reloads the shared web daemon; pool reloads happen at Commit.
func (be *Backend) Restart() string {
	return "if pgrep apache2 > /dev/null; then service apache2 reload; else service apache2 start; fi"
}
