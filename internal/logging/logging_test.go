package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New("xml", slog.LevelInfo); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter("json", slog.LevelInfo, &buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Info(context.Background(), "deployed", "site", "s1")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "deployed" || entry["site"] != "s1" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestContextCarry(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter("text", slog.LevelInfo, &buf)
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithLogger(context.Background(), l.With("backend", "httpd"))
	FromContext(ctx).Warn(ctx, "reload deferred")
	if !strings.Contains(buf.String(), "backend=httpd") {
		t.Fatalf("context logger not used: %q", buf.String())
	}
}

func TestNewWriter(t *testing.T) {
	if w := NewWriter(&FileConfig{Path: "none"}); w != io.Discard {
		t.Fatal("none must discard output")
	}
	if w := NewWriter(&FileConfig{Path: "-"}); w != os.Stderr {
		t.Fatal("- must write to stderr")
	}
	if w := NewWriter(&FileConfig{Path: "/tmp/panelops.log"}); w == io.Discard || w == os.Stderr {
		t.Fatal("path must produce a file writer")
	}
}
