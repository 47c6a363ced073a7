package apache2

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/naming"
)

// Fragment is a (location, text) unit of rendered configuration. Fragments
// are collected per virtual host and ordered before concatenation.
type Fragment struct {
	Location string
	Text     string
}

// RenderContext carries the mutable state of one virtual-host rendering.
// Location and app fields are set per content mapping before dispatching
// its directive.
type RenderContext struct {
	Location string
	AppPath  string

	// fcgidSetup records that the shared fcgi-bin setup block has been
	// emitted; it is needed at most once per document no matter how many
	// locations mount an fcgid app.
	fcgidSetup bool

	cfg *panelopscfg.Root
}

// Handler renders the fragments of one directive invocation.
type Handler func(rc *RenderContext, args []string) ([]Fragment, error)

// handlers is the registered directive set. The built-in set is closed;
// external SaaS integrations contribute directives through the configured
// saas delegation map rather than by name reflection.
var handlers = map[string]Handler{}

// RegisterDirective makes a directive handler available by name.
func RegisterDirective(name string, h Handler) {
	handlers[name] = h
}

func init() {
	RegisterDirective("static", staticDirective)
	RegisterDirective("fpm", fpmDirective)
	RegisterDirective("fcgid", fcgidDirective)
	RegisterDirective("uwsgi", uwsgiDirective)
}

// Dispatch resolves name to a handler and renders its fragments. An
// unknown name is a configuration error and fails the whole render.
func Dispatch(rc *RenderContext, name string, args []string) ([]Fragment, error) {
	h, ok := handlers[name]
	if !ok {
		return nil, fmt.Errorf("directive %q: %w", name, model.ErrUnknownDirective)
	}
	return h(rc, args)
}

// locationFilesystemMap maps the current location onto the app path:
// DocumentRoot for the site root, Alias for any other prefix.
func locationFilesystemMap(rc *RenderContext) string {
	if rc.Location == "" {
		return fmt.Sprintf("DocumentRoot %s", rc.AppPath)
	}
	return fmt.Sprintf("Alias %s %s", rc.Location, rc.AppPath)
}

func staticDirective(rc *RenderContext, args []string) ([]Fragment, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("static directive requires an app path")
	}
	rc.AppPath = path.Clean(args[0])
	return []Fragment{{rc.Location, locationFilesystemMap(rc)}}, nil
}

func fpmDirective(rc *RenderContext, args []string) ([]Fragment, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("fpm directive requires socket and app path")
	}
	socket, appPath := args[0], path.Clean(args[1])
	rc.AppPath = appPath
	var target string
	if strings.Contains(socket, ":") {
		// TCP socket
		target = fmt.Sprintf("fcgi://%s%s/$1", socket, appPath)
	} else {
		// UNIX socket
		target = fmt.Sprintf("unix:%s|fcgi://127.0.0.1%s/", socket, appPath)
		if rc.Location != "" {
			target = fmt.Sprintf("unix:%s|fcgi://127.0.0.1%s/$1", socket, appPath)
		}
	}
	text := fmt.Sprintf("ProxyPassMatch ^%s/(.*\\.php(/.*)?)$ %s\n", rc.Location, target)
	text += locationFilesystemMap(rc)
	return []Fragment{{rc.Location, text}}, nil
}

func fcgidDirective(rc *RenderContext, args []string) ([]Fragment, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("fcgid directive requires app path and wrapper path")
	}
	appPath, wrapperPath := path.Clean(args[0]), args[1]
	rc.AppPath = appPath
	text := ""
	// The Action trick avoids defining a new fcgid process class per
	// mounted app, which would defeat per-account process limits. The
	// fcgi-bin alias only needs defining once per virtual host; all
	// wrapper paths of an account share the same directory.
	if !rc.fcgidSetup {
		rc.fcgidSetup = true
		text = fmt.Sprintf(
			"Alias /fcgi-bin/ %s/\n"+
				"<Location /fcgi-bin/>\n"+
				"    SetHandler fcgid-script\n"+
				"    Options +ExecCGI\n"+
				"</Location>\n", filepath.Dir(wrapperPath))
	}
	text += locationFilesystemMap(rc)
	text += fmt.Sprintf("\nProxyPass %s/ !\n"+
		"<Directory %s/>\n"+
		"    AddHandler php-fcgi .php\n"+
		"    Action php-fcgi /fcgi-bin/%s\n"+
		"</Directory>", rc.Location, appPath, filepath.Base(wrapperPath))
	return []Fragment{{rc.Location, text}}, nil
}

func uwsgiDirective(rc *RenderContext, args []string) ([]Fragment, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("uwsgi directive requires a socket")
	}
	// requires mod_proxy_uwsgi
	text := fmt.Sprintf("ProxyPass / unix:%s|uwsgi://", args[0])
	text += locationFilesystemMap(rc)
	return []Fragment{{rc.Location, text}}, nil
}

// sslFragments renders the certificate block: the site's own triple, or
// the configured default triple, or nothing when neither is set.
func sslFragments(site *model.Site, cfg *panelopscfg.Root) []Fragment {
	cert := site.DirectiveValue("ssl-cert")
	key := site.DirectiveValue("ssl-key")
	ca := site.DirectiveValue("ssl-ca")
	if cert == "" || key == "" {
		cert = cfg.Web.SSLCert
		key = cfg.Web.SSLKey
		ca = cfg.Web.SSLCA
		if cert == "" || key == "" {
			return nil
		}
	}
	lines := []string{
		"SSLEngine on",
		fmt.Sprintf("SSLCertificateFile %s", cert),
		fmt.Sprintf("SSLCertificateKeyFile %s", key),
	}
	if ca != "" {
		lines = append(lines, fmt.Sprintf("SSLCACertificateFile %s", ca))
	}
	return []Fragment{{"", strings.Join(lines, "\n")}}
}

// securityFragments renders rule-removal and engine-disable blocks.
func securityFragments(site *model.Site) ([]Fragment, error) {
	var removeRules []string
	for _, values := range site.DirectiveValues("sec-rule-remove") {
		for _, rule := range strings.Fields(values) {
			id, err := strconv.Atoi(rule)
			if err != nil {
				return nil, fmt.Errorf("sec-rule-remove %q: %w", rule, err)
			}
			removeRules = append(removeRules, fmt.Sprintf("    SecRuleRemoveById %d", id))
		}
	}
	var security []Fragment
	if len(removeRules) > 0 {
		block := append([]string{"<IfModule mod_security2.c>"}, removeRules...)
		block = append(block, "</IfModule>")
		security = append(security, Fragment{"", strings.Join(block, "\n")})
	}
	for _, location := range site.DirectiveValues("sec-engine") {
		text := fmt.Sprintf("<IfModule mod_security2.c>\n"+
			"    <Location %s>\n"+
			"        SecRuleEngine Off\n"+
			"    </Location>\n"+
			"</IfModule>", location)
		security = append(security, Fragment{location, text})
	}
	return security, nil
}

var redirectPatternRe = regexp.MustCompile(`[\^\*\$\?\)]`)

// redirectFragments renders plain or pattern redirects; the pattern form
// is selected when the source value carries glob or anchor metacharacters.
func redirectFragments(site *model.Site) ([]Fragment, error) {
	var redirects []Fragment
	for _, value := range site.DirectiveValues("redirect") {
		fields := strings.Fields(value)
		if len(fields) != 2 {
			return nil, fmt.Errorf("redirect %q: want \"<location> <target>\"", value)
		}
		location, target := fields[0], fields[1]
		var text string
		if redirectPatternRe.MatchString(value) {
			text = fmt.Sprintf("RedirectMatch %s %s", location, target)
		} else {
			text = fmt.Sprintf("Redirect %s %s", location, target)
		}
		redirects = append(redirects, Fragment{location, text})
	}
	return redirects, nil
}

// proxyFragments renders reverse-proxy pass-throughs with trailing options.
func proxyFragments(site *model.Site) ([]Fragment, error) {
	var proxies []Fragment
	for _, value := range site.DirectiveValues("proxy") {
		fields := strings.Fields(value)
		if len(fields) < 2 {
			return nil, fmt.Errorf("proxy %q: want \"<location> <target> [options]\"", value)
		}
		location := naming.NormalizeURLPath(fields[0])
		target := fields[1]
		options := strings.Join(fields[2:], " ")
		text := strings.TrimRight(fmt.Sprintf("ProxyPass %s/ %s %s", location, target, options), " ")
		text += fmt.Sprintf("\nProxyPassReverse %s/ %s", location, target)
		proxies = append(proxies, Fragment{location, text})
	}
	return proxies, nil
}

// saasFragments renders directives contributed by external SaaS
// integrations: each "<service>-saas" directive delegates to the directive
// configured for that service name.
func saasFragments(rc *RenderContext, site *model.Site) ([]Fragment, error) {
	var saas []Fragment
	for _, d := range site.Directives {
		if !strings.HasSuffix(d.Name, "-saas") {
			continue
		}
		delegated, ok := rc.cfg.Web.SaaSDirectives[d.Name]
		if !ok {
			return nil, fmt.Errorf("saas directive %q: %w", d.Name, model.ErrUnknownDirective)
		}
		sub := *rc
		sub.Location = naming.NormalizeURLPath(d.Value)
		fragments, err := Dispatch(&sub, delegated.Name, delegated.Args)
		if err != nil {
			return nil, err
		}
		rc.fcgidSetup = rc.fcgidSetup || sub.fcgidSetup
		saas = append(saas, fragments...)
	}
	return saas, nil
}
