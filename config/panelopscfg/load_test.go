package panelopscfg

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
version: v1
coorddir: /dev/shm
hosts: [web1.panel.example]
web:
  ips: [203.0.113.10]
  conf_dir: /etc/apache2
  log_dir: /var/log/apache2/virtual
  ssl_cert: /etc/ssl/certs/default.crt
  ssl_key: /etc/ssl/private/default.key
  saas_directives:
    wordpress-saas:
      name: fpm
      args: ["/run/php/wordpress.sock", "/var/www/wordpress"]
dns:
  zone_dir: /etc/bind/zones
  ttl: 1h
  name_servers: [ns1.panel.example., ns2.panel.example.]
  primary_name_server: ns1.panel.example
  hostmaster: hostmaster@panel.example
  mx: ["10 mail.panel.example."]
  a: 203.0.113.10
  refresh: 1d
  retry: 2h
  expire: 4w
  min_ttl: 1h
traffic:
  ignore_hosts: [127.0.0.1]
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panelops.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Web.IPs) != 1 || cfg.Web.IPs[0] != "203.0.113.10" {
		t.Fatalf("web.ips = %v", cfg.Web.IPs)
	}
	if cfg.DNS.PrimaryNameServer != "ns1.panel.example" {
		t.Fatalf("dns.primary_name_server = %q", cfg.DNS.PrimaryNameServer)
	}
	saas, ok := cfg.Web.SaaSDirectives["wordpress-saas"]
	if !ok || saas.Name != "fpm" || len(saas.Args) != 2 {
		t.Fatalf("saas_directives = %+v", cfg.Web.SaaSDirectives)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRejectsMissingIPs(t *testing.T) {
	cfg, err := Load(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Web.IPs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("config without web.ips must not validate")
	}
}

func TestValidateRejectsHalfSSLPair(t *testing.T) {
	cfg, err := Load(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Web.SSLKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("ssl_cert without ssl_key must not validate")
	}
}

func TestValidateRejectsBadZoneTimer(t *testing.T) {
	cfg, err := Load(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	cfg.DNS.Refresh = "soon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("bad zone timer must not validate")
	}
}
