package zonefile

import (
	"strings"
	"testing"

	"github.com/panelops/panelops/domain/model"
)

func testDefaults() Defaults {
	return Defaults{
		TTL:               "1h",
		NameServers:       []string{"ns1.panel.example.", "ns2.panel.example."},
		PrimaryNameServer: "ns1.panel.example",
		Hostmaster:        "hostmaster@panel.example",
		MX:                []string{"10 mail.panel.example.", "20 mail2.panel.example."},
		A:                 "203.0.113.10",
		AAAA:              "2001:db8::10",
		Refresh:           "1d",
		Retry:             "2h",
		Expire:            "4w",
		MinTTL:            "1h",
	}
}

func typesOf(records []RR) []model.RecordType {
	out := make([]model.RecordType, 0, len(records))
	for _, rr := range records {
		out = append(out, rr.Type)
	}
	return out
}

func TestComposeTopDomainDefaults(t *testing.T) {
	d := &model.Domain{Name: "example.com", Serial: 2026083000}
	records := Compose(d, nil, testDefaults())
	want := []model.RecordType{
		model.RecordTypeSOA,
		model.RecordTypeNS, model.RecordTypeNS,
		model.RecordTypeMX, model.RecordTypeMX,
		model.RecordTypeA, model.RecordTypeAAAA,
	}
	got := typesOf(records)
	if len(got) != len(want) {
		t.Fatalf("got %d records %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d: got %s, want %s (%v)", i, got[i], want[i], got)
		}
	}
	soa := records[0]
	wantSOA := "ns1.panel.example. hostmaster.panel.example. 2026083000 1d 2h 4w 1h"
	if soa.Value != wantSOA {
		t.Fatalf("SOA value:\n got %q\nwant %q", soa.Value, wantSOA)
	}
	if records[1].Value != "ns1.panel.example." || records[2].Value != "ns2.panel.example." {
		t.Fatalf("NS defaults out of configured order: %q, %q", records[1].Value, records[2].Value)
	}
}

func TestComposeDomainTimersOverrideDefaults(t *testing.T) {
	d := &model.Domain{Name: "example.com", Serial: 1, Refresh: "3h", MinTTL: "30m"}
	records := Compose(d, nil, testDefaults())
	fields := strings.Fields(records[0].Value)
	if fields[3] != "3h" || fields[4] != "2h" || fields[6] != "30m" {
		t.Fatalf("SOA timers: %v", fields)
	}
}

func TestComposeDeclaredSOARewrittenAndFirst(t *testing.T) {
	d := &model.Domain{Name: "example.com", Serial: 2026083005}
	declared := []*model.Record{
		{Type: model.RecordTypeA, Value: "203.0.113.99"},
		{Type: model.RecordTypeSOA, Value: "ns1.other.example. root.other.example. 11 1d 2h 4w 1h"},
	}
	records := Compose(d, declared, testDefaults())
	if records[0].Type != model.RecordTypeSOA {
		t.Fatalf("SOA not first: %v", typesOf(records))
	}
	if !strings.Contains(records[0].Value, " 2026083005 ") {
		t.Fatalf("SOA serial not rewritten: %q", records[0].Value)
	}
}

func TestComposeHostRuleExplicitAddress(t *testing.T) {
	// A subdomain with an explicit A record is a host: default MX is
	// injected, default A/AAAA are not.
	d := &model.Domain{Name: "www.example.com", TopID: "dom-1"}
	declared := []*model.Record{{Type: model.RecordTypeA, Value: "203.0.113.20"}}
	records := Compose(d, declared, testDefaults())
	var mx, a, aaaa int
	for _, rr := range records {
		switch rr.Type {
		case model.RecordTypeMX:
			mx++
		case model.RecordTypeA:
			a++
		case model.RecordTypeAAAA:
			aaaa++
		}
	}
	if mx != 2 {
		t.Fatalf("default MX not injected for host: %v", typesOf(records))
	}
	if a != 1 || aaaa != 0 {
		t.Fatalf("default address injected despite explicit A: %v", typesOf(records))
	}
}

func TestComposeNonHostSubdomain(t *testing.T) {
	// A subdomain with only a CNAME is not a host: no MX, no addresses.
	d := &model.Domain{Name: "alias.example.com", TopID: "dom-1"}
	declared := []*model.Record{{Type: model.RecordTypeCNAME, Value: "example.com."}}
	records := Compose(d, declared, testDefaults())
	if len(records) != 1 || records[0].Type != model.RecordTypeCNAME {
		t.Fatalf("unexpected defaults for non-host subdomain: %v", typesOf(records))
	}
}

func TestComposeEmptySubdomainIsHost(t *testing.T) {
	d := &model.Domain{Name: "bare.example.com", TopID: "dom-1"}
	records := Compose(d, nil, testDefaults())
	got := typesOf(records)
	want := []model.RecordType{
		model.RecordTypeMX, model.RecordTypeMX,
		model.RecordTypeA, model.RecordTypeAAAA,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFormatHostmaster(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hostmaster@example.com", "hostmaster.example.com."},
		{"host.master@example.com", `host\.master.example.com.`},
		{"hostmaster.example.com", "hostmaster.example.com."},
	}
	for _, tt := range tests {
		if got := FormatHostmaster(tt.in); got != tt.want {
			t.Errorf("FormatHostmaster(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
