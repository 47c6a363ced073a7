package phpfpm

import (
	"strings"
	"testing"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/script"
)

func testState() *backenddrv.SiteState {
	app := &model.WebApp{
		ID:        "webapp-1",
		Name:      "Blog",
		AccountID: "alice",
		Directive: model.Directive{Name: "fpm", Args: []string{"/run/php/alice.sock", "/srv/blog"}},
		DataDir:   "/home/alice/webapps/blog",
	}
	return &backenddrv.SiteState{
		Site: &model.Site{
			Name:      "Blog",
			AccountID: "alice",
			Contents: []model.Content{
				{Path: "/", WebAppID: "webapp-1"},
				{Path: "/blog", WebAppID: "webapp-1"},
			},
		},
		Apps: map[string]*model.WebApp{"webapp-1": app},
	}
}

func TestPoolConfigUnixSocket(t *testing.T) {
	st := testState()
	conf := poolConfig(st.Apps["webapp-1"], "/run/php/alice.sock")
	for _, want := range []string{
		"[alice-blog]",
		"user = alice",
		"listen = /run/php/alice.sock",
		"listen.owner = alice",
		"chdir = /home/alice/webapps/blog",
	} {
		if !strings.Contains(conf, want) {
			t.Errorf("pool config missing %q:\n%s", want, conf)
		}
	}
}

func TestPoolConfigTCPSocketSkipsSocketOwnership(t *testing.T) {
	st := testState()
	conf := poolConfig(st.Apps["webapp-1"], "127.0.0.1:9000")
	if strings.Contains(conf, "listen.owner") {
		t.Errorf("tcp pool must not set socket ownership:\n%s", conf)
	}
}

func TestSaveSiteWritesEachAppOnce(t *testing.T) {
	cfg := panelopscfg.Default()
	be := New(cfg)
	b := script.New()
	if err := be.SaveSite(b, testState()); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if n := strings.Count(out, "/etc/php/7.4/fpm/pool.d/alice-blog.conf"); n != 2 {
		// the path appears twice in one WriteChanged statement
		t.Errorf("pool path occurrences: got %d, want 2:\n%s", n, out)
	}
	if !strings.Contains(out, "diff -N -I'^\\s*#'") {
		t.Errorf("pool write must be diff-guarded:\n%s", out)
	}
}

func TestCommitReloadsOnChange(t *testing.T) {
	be := New(panelopscfg.Default())
	b := script.New()
	if err := be.Commit(b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "service php-fpm reload") {
		t.Errorf("missing inline reload:\n%s", out)
	}
	if !strings.Contains(out, `echo "UPDATED=${UPDATED_FPM:-0}"`) {
		t.Errorf("missing updated report:\n%s", out)
	}
}

func TestDeleteSiteRemovesPools(t *testing.T) {
	be := New(panelopscfg.Default())
	b := script.New()
	if err := be.DeleteSite(b, testState()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "rm -f /etc/php/7.4/fpm/pool.d/alice-blog.conf") {
		t.Errorf("pool not removed:\n%s", b.String())
	}
}

func TestSharedDaemon(t *testing.T) {
	be := New(panelopscfg.Default())
	if be.Daemon() != "apache2" {
		t.Errorf("Daemon: got %q, want apache2", be.Daemon())
	}
}
