package apache2

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/naming"
)

const banner = "# Managed by panelops. Manual changes will be overwritten."

// Renderer turns a site state into complete Apache virtual-host
// configuration text.
type Renderer struct {
	cfg *panelopscfg.Root
}

func NewRenderer(cfg *panelopscfg.Root) *Renderer {
	return &Renderer{cfg: cfg}
}

// serverNames splits the site's domains into the canonical ServerName and
// the ServerAlias list. The first non-wildcard domain, in name order, is
// canonical; wildcards can only ever be aliases.
func serverNames(domains []*model.Domain) (string, []string) {
	names := make([]string, 0, len(domains))
	for _, d := range domains {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	serverName := ""
	var aliases []string
	for _, name := range names {
		if serverName == "" && !strings.HasPrefix(name, "*") {
			serverName = name
			continue
		}
		aliases = append(aliases, name)
	}
	return serverName, aliases
}

// fragments renders every fragment of the site: content mappings first,
// then protocol, security, redirect, proxy and SaaS contributions.
func (r *Renderer) fragments(st *backenddrv.SiteState, ssl bool) ([]Fragment, error) {
	rc := &RenderContext{cfg: r.cfg}
	var all []Fragment
	contents := append([]model.Content(nil), st.Site.Contents...)
	sort.Slice(contents, func(i, j int) bool { return contents[i].Path < contents[j].Path })
	for _, content := range contents {
		app, ok := st.Apps[content.WebAppID]
		if !ok {
			return nil, fmt.Errorf("site %s content %q: %w", st.Site.Name, content.Path, model.ErrWebAppNotFound)
		}
		rc.Location = naming.NormalizeURLPath(content.Path)
		rc.AppPath = app.DataDir
		fragments, err := Dispatch(rc, app.Directive.Name, app.Directive.Args)
		if err != nil {
			return nil, err
		}
		all = append(all, fragments...)
	}
	if ssl {
		all = append(all, sslFragments(st.Site, r.cfg)...)
	}
	security, err := securityFragments(st.Site)
	if err != nil {
		return nil, err
	}
	all = append(all, security...)
	redirects, err := redirectFragments(st.Site)
	if err != nil {
		return nil, err
	}
	all = append(all, redirects...)
	proxies, err := proxyFragments(st.Site)
	if err != nil {
		return nil, err
	}
	all = append(all, proxies...)
	saas, err := saasFragments(rc, st.Site)
	if err != nil {
		return nil, err
	}
	all = append(all, saas...)
	for _, extra := range r.cfg.Web.ExtraDirectives {
		all = append(all, Fragment{extra.Location, extra.Text})
	}
	// Longer locations first, so the most specific mapping wins when
	// Apache processes the file top to bottom. The sort is stable:
	// fragments at the same location keep their registration order.
	sort.SliceStable(all, func(i, j int) bool {
		return len(all[i].Location) > len(all[j].Location)
	})
	return all, nil
}

// virtualHost renders one <VirtualHost> block for the given port.
func (r *Renderer) virtualHost(st *backenddrv.SiteState, port int, ssl bool) (string, error) {
	serverName, aliases := serverNames(st.Domains)
	uniqueName := st.Site.UniqueName()
	var addrs []string
	for _, ip := range r.cfg.Web.IPs {
		addrs = append(addrs, fmt.Sprintf("%s:%d", ip, port))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<VirtualHost %s>\n", strings.Join(addrs, " "))
	fmt.Fprintf(&b, "    IncludeOptional %s\n",
		filepath.Join(r.cfg.Web.ConfDir, "site-override", uniqueName+".conf"))
	fmt.Fprintf(&b, "    ServerName %s\n", serverName)
	if len(aliases) > 0 {
		fmt.Fprintf(&b, "    ServerAlias %s\n", strings.Join(aliases, " "))
	}
	fmt.Fprintf(&b, "    CustomLog %s common\n",
		filepath.Join(r.cfg.Web.LogDir, uniqueName+".log"))
	fmt.Fprintf(&b, "    ErrorLog %s\n",
		filepath.Join(r.cfg.Web.LogDir, uniqueName+".error.log"))
	fmt.Fprintf(&b, "    SuexecUserGroup %s %s\n", st.Site.AccountID, st.Site.AccountID)
	fragments, err := r.fragments(st, ssl)
	if err != nil {
		return "", err
	}
	for _, f := range fragments {
		for _, line := range strings.Split(f.Text, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	b.WriteString("</VirtualHost>")
	return b.String(), nil
}

// redirectHTTPS renders the plain-HTTP block of an https-only site: every
// request is bounced to its HTTPS counterpart.
func (r *Renderer) redirectHTTPS(st *backenddrv.SiteState) string {
	serverName, aliases := serverNames(st.Domains)
	uniqueName := st.Site.UniqueName()
	var addrs []string
	for _, ip := range r.cfg.Web.IPs {
		addrs = append(addrs, fmt.Sprintf("%s:80", ip))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<VirtualHost %s>\n", strings.Join(addrs, " "))
	fmt.Fprintf(&b, "    ServerName %s\n", serverName)
	if len(aliases) > 0 {
		fmt.Fprintf(&b, "    ServerAlias %s\n", strings.Join(aliases, " "))
	}
	fmt.Fprintf(&b, "    CustomLog %s common\n",
		filepath.Join(r.cfg.Web.LogDir, uniqueName+".log"))
	b.WriteString("    RewriteEngine On\n")
	b.WriteString("    RewriteRule (.*) https://%{HTTP_HOST}%{REQUEST_URI} [R=301,L]\n")
	b.WriteString("</VirtualHost>")
	return b.String()
}

// Document renders the complete configuration file for a site: one
// virtual host per enabled protocol plus the https-only redirect block.
func (r *Renderer) Document(st *backenddrv.SiteState) (string, error) {
	protocol := st.Site.Protocol
	var blocks []string
	if protocol.HasHTTP() {
		vh, err := r.virtualHost(st, 80, false)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, vh)
	}
	if protocol == model.ProtocolHTTPSOnly {
		blocks = append(blocks, r.redirectHTTPS(st))
	}
	if protocol.HasHTTPS() {
		vh, err := r.virtualHost(st, 443, true)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, vh)
	}
	return banner + "\n\n" + strings.Join(blocks, "\n\n") + "\n", nil
}
