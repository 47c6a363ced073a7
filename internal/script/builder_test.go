package script

import (
	"strings"
	"testing"
)

func TestWriteChangedGuardsOverwrite(t *testing.T) {
	b := New()
	b.WriteChanged("Generate site config", "/etc/httpd/sites-available/s1.conf",
		"ServerName example.com\n", "UPDATED_HTTPD")
	out := b.String()
	if !strings.Contains(out, `diff -N -I'^\s*#' /etc/httpd/sites-available/s1.conf -`) {
		t.Fatalf("missing diff guard:\n%s", out)
	}
	if !strings.Contains(out, "UPDATED_HTTPD=1") {
		t.Fatalf("missing updated flag:\n%s", out)
	}
	// The updated flag must only appear in the difference branch.
	if strings.Index(out, "UPDATED_HTTPD=1") < strings.Index(out, "diff") {
		t.Fatalf("updated flag set before diff check:\n%s", out)
	}
}

func TestBuilderDeterministic(t *testing.T) {
	build := func() string {
		b := New()
		b.WriteChanged("Generate config", "/etc/x.conf", "content", "UPDATED")
		b.RunIfMissing("Enable", "/etc/enabled/x.conf", "ln -s /etc/x.conf /etc/enabled/x.conf", "UPDATED")
		return b.String()
	}
	if build() != build() {
		t.Fatal("same state must build the same script")
	}
}

func TestEnableDisableGuards(t *testing.T) {
	b := New()
	b.RunIfMissing("Enable site", "/enabled/s.conf", "enable s", "UPDATED")
	b.RunIfPresent("Disable site", "/enabled/s.conf", "disable s", "UPDATED")
	out := b.String()
	if !strings.Contains(out, "if [[ ! -f /enabled/s.conf ]]; then") {
		t.Fatalf("enable not guarded on missing state:\n%s", out)
	}
	if !strings.Contains(out, "if [[ -f /enabled/s.conf ]]; then") {
		t.Fatalf("disable not guarded on present state:\n%s", out)
	}
}

func TestMarkReset(t *testing.T) {
	b := New()
	b.Append("echo one")
	mark := b.Mark()
	b.Append("echo partial")
	b.Append("echo more")
	b.Reset(mark)
	if got := b.String(); got != "echo one" {
		t.Fatalf("reset left partial contribution: %q", got)
	}
	b.Append("echo two")
	if got := b.String(); got != "echo one\necho two" {
		t.Fatalf("append after reset: %q", got)
	}
}
