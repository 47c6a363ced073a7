package bind9

import (
	"strings"
	"testing"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/script"
)

func testConfig() *panelopscfg.Root {
	cfg := panelopscfg.Default()
	cfg.DNS.NameServers = []string{"ns1.example.net.", "ns2.example.net."}
	cfg.DNS.PrimaryNameServer = "ns1.example.net"
	cfg.DNS.Hostmaster = "hostmaster@example.net"
	return cfg
}

func testZone() *backenddrv.ZoneState {
	return &backenddrv.ZoneState{
		Domain: &model.Domain{ID: "domain-1", Name: "example.com", Serial: 2026083001},
		Subdomains: []backenddrv.SubdomainState{
			{
				Domain: &model.Domain{ID: "domain-2", Name: "www.example.com", TopID: "domain-1"},
				Records: []*model.Record{
					{Type: model.RecordTypeCNAME, Value: "example.com."},
				},
			},
		},
	}
}

func TestSaveZoneScript(t *testing.T) {
	be := New(testConfig())
	b := script.New()
	if err := be.Prepare(b); err != nil {
		t.Fatal(err)
	}
	if err := be.SaveZone(b, testZone()); err != nil {
		t.Fatal(err)
	}
	if err := be.Commit(b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "diff -N -I'^\\s*#' /etc/bind/zones/example.com.db -") {
		t.Errorf("zone write must be diff-guarded:\n%s", out)
	}
	if !strings.Contains(out, "ns1.example.net. hostmaster.example.net. 2026083001") {
		t.Errorf("composed SOA missing from zone body:\n%s", out)
	}
	if !strings.Contains(out, "www.example.com.") {
		t.Errorf("subdomain records missing from zone body:\n%s", out)
	}
	if !strings.Contains(out, `zone "example.com" {`) ||
		!strings.Contains(out, `file "/etc/bind/zones/example.com.db";`) {
		t.Errorf("zone stanza missing:\n%s", out)
	}
	if !strings.Contains(out, "rndc reload example.com") {
		t.Errorf("per-zone reload missing:\n%s", out)
	}
	if !strings.Contains(out, `echo "UPDATED=${UPDATED_NAMED:-0}"`) {
		t.Errorf("missing updated report:\n%s", out)
	}
}

func TestSaveZonePerZoneVariablesAreUnique(t *testing.T) {
	be := New(testConfig())
	b := script.New()
	if err := be.SaveZone(b, testZone()); err != nil {
		t.Fatal(err)
	}
	other := testZone()
	other.Domain.Name = "example.org"
	if err := be.SaveZone(b, other); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "UPDATED_ZONE_1=0") || !strings.Contains(out, "UPDATED_ZONE_2=0") {
		t.Errorf("zone variables must not collide:\n%s", out)
	}
}

func TestDeleteZoneScript(t *testing.T) {
	be := New(testConfig())
	b := script.New()
	if err := be.DeleteZone(b, testZone()); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "rm -f /etc/bind/zones/conf/example.com.conf") ||
		!strings.Contains(out, "rm -f /etc/bind/zones/example.com.db") {
		t.Errorf("delete script incomplete:\n%s", out)
	}
	if !strings.Contains(out, "UPDATED_NAMED=1") {
		t.Errorf("stanza removal must raise the updated flag:\n%s", out)
	}
}
