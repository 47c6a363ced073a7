package apache2

import (
	"errors"
	"strings"
	"testing"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/script"
)

func testConfig() *panelopscfg.Root {
	cfg := panelopscfg.Default()
	cfg.Web.IPs = []string{"10.0.0.1"}
	return cfg
}

func testState(cfg *panelopscfg.Root) *backenddrv.SiteState {
	return &backenddrv.SiteState{
		Site: &model.Site{
			ID:        "site-1",
			Name:      "Blog",
			AccountID: "alice",
			Protocol:  model.ProtocolHTTP,
			Active:    true,
			Contents:  []model.Content{{Path: "/", WebAppID: "webapp-1"}},
			DomainIDs: []string{"domain-1"},
		},
		Domains: []*model.Domain{{ID: "domain-1", Name: "example.com"}},
		Apps: map[string]*model.WebApp{
			"webapp-1": {
				ID:        "webapp-1",
				Directive: model.Directive{Name: "static", Args: []string{"/home/alice/webapps/blog"}},
				DataDir:   "/home/alice/webapps/blog",
			},
		},
	}
}

func TestDispatchUnknownDirective(t *testing.T) {
	rc := &RenderContext{cfg: testConfig()}
	_, err := Dispatch(rc, "gopher", nil)
	if !errors.Is(err, model.ErrUnknownDirective) {
		t.Fatalf("Dispatch: got %v, want ErrUnknownDirective", err)
	}
}

func TestStaticDirective(t *testing.T) {
	rc := &RenderContext{cfg: testConfig()}
	fragments, err := Dispatch(rc, "static", []string{"/srv/app"})
	if err != nil {
		t.Fatal(err)
	}
	if fragments[0].Text != "DocumentRoot /srv/app" {
		t.Errorf("root static: got %q", fragments[0].Text)
	}
	rc.Location = "/docs"
	fragments, err = Dispatch(rc, "static", []string{"/srv/docs"})
	if err != nil {
		t.Fatal(err)
	}
	if fragments[0].Text != "Alias /docs /srv/docs" {
		t.Errorf("aliased static: got %q", fragments[0].Text)
	}
}

func TestFPMDirectiveSocketForms(t *testing.T) {
	rc := &RenderContext{cfg: testConfig()}
	fragments, err := Dispatch(rc, "fpm", []string{"/run/php/alice.sock", "/srv/app"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fragments[0].Text, "unix:/run/php/alice.sock|fcgi://127.0.0.1/srv/app/") {
		t.Errorf("unix socket target missing: %q", fragments[0].Text)
	}
	fragments, err = Dispatch(rc, "fpm", []string{"127.0.0.1:9000", "/srv/app"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fragments[0].Text, "fcgi://127.0.0.1:9000/srv/app/$1") {
		t.Errorf("tcp socket target missing: %q", fragments[0].Text)
	}
}

func TestFcgidSetupOncePerDocument(t *testing.T) {
	cfg := testConfig()
	st := testState(cfg)
	st.Site.Contents = []model.Content{
		{Path: "/", WebAppID: "webapp-1"},
		{Path: "/shop", WebAppID: "webapp-2"},
	}
	st.Apps["webapp-1"] = &model.WebApp{
		ID:        "webapp-1",
		Directive: model.Directive{Name: "fcgid", Args: []string{"/srv/blog", "/home/alice/bin/php-wrapper"}},
	}
	st.Apps["webapp-2"] = &model.WebApp{
		ID:        "webapp-2",
		Directive: model.Directive{Name: "fcgid", Args: []string{"/srv/shop", "/home/alice/bin/php-wrapper"}},
	}
	doc, err := NewRenderer(cfg).Document(st)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(doc, "Alias /fcgi-bin/"); n != 1 {
		t.Errorf("fcgi-bin setup emitted %d times, want 1", n)
	}
	if n := strings.Count(doc, "Action php-fcgi"); n != 2 {
		t.Errorf("per-location fcgid mapping emitted %d times, want 2", n)
	}
}

func TestFragmentOrderingMostSpecificFirst(t *testing.T) {
	cfg := testConfig()
	st := testState(cfg)
	st.Site.Contents = []model.Content{
		{Path: "/a", WebAppID: "app-a"},
		{Path: "/abc", WebAppID: "app-abc"},
		{Path: "/ab", WebAppID: "app-ab"},
	}
	for _, id := range []string{"app-a", "app-ab", "app-abc"} {
		st.Apps[id] = &model.WebApp{
			ID:        id,
			Directive: model.Directive{Name: "static", Args: []string{"/srv/" + id}},
		}
	}
	doc, err := NewRenderer(cfg).Document(st)
	if err != nil {
		t.Fatal(err)
	}
	abc := strings.Index(doc, "Alias /abc ")
	ab := strings.Index(doc, "Alias /ab ")
	a := strings.Index(doc, "Alias /a ")
	if abc < 0 || ab < 0 || a < 0 {
		t.Fatalf("missing aliases in document:\n%s", doc)
	}
	if !(abc < ab && ab < a) {
		t.Errorf("want /abc before /ab before /a, got offsets %d %d %d", abc, ab, a)
	}
}

func TestSSLDefaultsFallback(t *testing.T) {
	cfg := testConfig()
	site := &model.Site{}
	if got := sslFragments(site, cfg); got != nil {
		t.Errorf("no certificates anywhere: got %v, want none", got)
	}
	cfg.Web.SSLCert = "/etc/ssl/default.crt"
	cfg.Web.SSLKey = "/etc/ssl/default.key"
	fragments := sslFragments(site, cfg)
	if len(fragments) != 1 || !strings.Contains(fragments[0].Text, "SSLCertificateFile /etc/ssl/default.crt") {
		t.Errorf("default fallback: got %v", fragments)
	}
	site.Directives = []model.SiteDirective{
		{Name: "ssl-cert", Value: "/home/alice/site.crt"},
		{Name: "ssl-key", Value: "/home/alice/site.key"},
	}
	fragments = sslFragments(site, cfg)
	if !strings.Contains(fragments[0].Text, "SSLCertificateFile /home/alice/site.crt") {
		t.Errorf("site triple must win over defaults: got %v", fragments)
	}
}

func TestRedirectPlainVersusPattern(t *testing.T) {
	site := &model.Site{Directives: []model.SiteDirective{
		{Name: "redirect", Value: "/old http://elsewhere.example/new"},
		{Name: "redirect", Value: "/img/(.*)$ http://static.example/$1"},
	}}
	fragments, err := redirectFragments(site)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(fragments[0].Text, "Redirect /old ") {
		t.Errorf("plain redirect: got %q", fragments[0].Text)
	}
	if !strings.HasPrefix(fragments[1].Text, "RedirectMatch /img/(.*)$ ") {
		t.Errorf("pattern redirect: got %q", fragments[1].Text)
	}
}

func TestSecurityFragments(t *testing.T) {
	site := &model.Site{Directives: []model.SiteDirective{
		{Name: "sec-rule-remove", Value: "950007 950008"},
		{Name: "sec-engine", Value: "/uploads"},
	}}
	fragments, err := securityFragments(site)
	if err != nil {
		t.Fatal(err)
	}
	if len(fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(fragments))
	}
	if !strings.Contains(fragments[0].Text, "SecRuleRemoveById 950007") ||
		!strings.Contains(fragments[0].Text, "SecRuleRemoveById 950008") {
		t.Errorf("rule removal: got %q", fragments[0].Text)
	}
	if !strings.Contains(fragments[1].Text, "SecRuleEngine Off") {
		t.Errorf("engine disable: got %q", fragments[1].Text)
	}
	site.Directives = []model.SiteDirective{{Name: "sec-rule-remove", Value: "not-a-number"}}
	if _, err := securityFragments(site); err == nil {
		t.Error("non-numeric rule id must fail")
	}
}

func TestSaaSDelegation(t *testing.T) {
	cfg := testConfig()
	cfg.Web.SaaSDirectives = map[string]panelopscfg.SaaSDirective{
		"webalizer-saas": {Name: "static", Args: []string{"/var/www/webalizer"}},
	}
	st := testState(cfg)
	st.Site.Directives = []model.SiteDirective{{Name: "webalizer-saas", Value: "/stats"}}
	doc, err := NewRenderer(cfg).Document(st)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "Alias /stats /var/www/webalizer") {
		t.Errorf("delegated saas fragment missing:\n%s", doc)
	}

	st.Site.Directives = []model.SiteDirective{{Name: "unknown-saas", Value: "/x"}}
	if _, err := NewRenderer(cfg).Document(st); !errors.Is(err, model.ErrUnknownDirective) {
		t.Errorf("unconfigured saas directive: got %v, want ErrUnknownDirective", err)
	}
}

func TestDocumentProtocols(t *testing.T) {
	cfg := testConfig()
	cfg.Web.SSLCert = "/etc/ssl/default.crt"
	cfg.Web.SSLKey = "/etc/ssl/default.key"
	st := testState(cfg)

	st.Site.Protocol = model.ProtocolHTTPAndHTTPS
	doc, err := NewRenderer(cfg).Document(st)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "<VirtualHost 10.0.0.1:80>") ||
		!strings.Contains(doc, "<VirtualHost 10.0.0.1:443>") {
		t.Errorf("http+https must render both ports:\n%s", doc)
	}
	if strings.Contains(strings.SplitN(doc, ":443", 2)[0], "SSLEngine on") {
		t.Error("SSL block leaked into the plain HTTP virtual host")
	}

	st.Site.Protocol = model.ProtocolHTTPSOnly
	doc, err = NewRenderer(cfg).Document(st)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "RewriteRule (.*) https://%{HTTP_HOST}%{REQUEST_URI} [R=301,L]") {
		t.Errorf("https-only must render the redirect block:\n%s", doc)
	}
	if !strings.Contains(doc, "<VirtualHost 10.0.0.1:443>") {
		t.Errorf("https-only must still render the SSL virtual host:\n%s", doc)
	}
}

func TestServerNamesWildcardNeverCanonical(t *testing.T) {
	name, aliases := serverNames([]*model.Domain{
		{Name: "*.example.com"},
		{Name: "www.example.com"},
		{Name: "example.com"},
	})
	if name != "example.com" {
		t.Errorf("ServerName: got %q, want example.com", name)
	}
	if len(aliases) != 2 || aliases[0] != "*.example.com" || aliases[1] != "www.example.com" {
		t.Errorf("ServerAlias: got %v", aliases)
	}
}

func TestSaveSiteScript(t *testing.T) {
	cfg := testConfig()
	be := New(cfg)
	st := testState(cfg)
	b := script.New()
	if err := be.Prepare(b); err != nil {
		t.Fatal(err)
	}
	if err := be.SaveSite(b, st); err != nil {
		t.Fatal(err)
	}
	if err := be.Commit(b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "diff -N -I'^\\s*#' /etc/apache2/sites-available/alice-blog.conf -") {
		t.Errorf("missing diff guard:\n%s", out)
	}
	if !strings.Contains(out, "a2ensite alice-blog.conf") {
		t.Errorf("missing enable statement:\n%s", out)
	}
	if !strings.Contains(out, `echo "UPDATED=${UPDATED_APACHE:-0}"`) {
		t.Errorf("missing updated report:\n%s", out)
	}

	st.Site.Active = false
	b = script.New()
	if err := be.SaveSite(b, st); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "a2dissite alice-blog.conf") {
		t.Errorf("inactive site must be disabled:\n%s", b.String())
	}
}

func TestSaveSiteWithoutDomainsOnlyDisables(t *testing.T) {
	cfg := testConfig()
	be := New(cfg)
	st := testState(cfg)
	st.Domains = nil
	b := script.New()
	if err := be.SaveSite(b, st); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if strings.Contains(out, "sites-available") {
		t.Errorf("domainless site must not be written:\n%s", out)
	}
	if !strings.Contains(out, "a2dissite alice-blog.conf") {
		t.Errorf("domainless site must be disabled:\n%s", out)
	}
}

func TestDeleteSiteScript(t *testing.T) {
	cfg := testConfig()
	be := New(cfg)
	st := testState(cfg)
	b := script.New()
	if err := be.DeleteSite(b, st); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "a2dissite alice-blog.conf") ||
		!strings.Contains(out, "rm -f /etc/apache2/sites-available/alice-blog.conf") {
		t.Errorf("delete script incomplete:\n%s", out)
	}
}
