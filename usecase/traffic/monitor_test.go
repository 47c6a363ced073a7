package traffic

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/panelops/panelops/adapters/store/memory"
	"github.com/panelops/panelops/domain/model"
)

func writeLog(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMonitorSumsAndAdvancesPoll(t *testing.T) {
	dir := t.TempDir()
	u := &UseCase{
		Repos: &Repos{
			Site:        memory.NewInMemorySiteRepository(),
			TrafficPoll: memory.NewInMemoryTrafficPollRepository(),
		},
		LogDir: dir,
		Now:    func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
	}
	ctx := context.Background()
	s := &model.Site{Name: "blog", AccountID: "alice", Protocol: model.ProtocolHTTP}
	if err := u.Repos.Site.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	writeLog(t, dir, "alice-blog.log",
		`192.0.2.1 - - [30/Aug/2026:10:00:00 +0000] "GET / HTTP/1.1" 200 100`+"\n"+
			`192.0.2.1 - - [30/Aug/2026:11:00:00 +0000] "GET /a HTTP/1.1" 200 50`+"\n"+
			`192.0.2.1 - - [30/Aug/2026:13:00:00 +0000] "GET /b HTTP/1.1" 200 999`+"\n")

	out, err := u.Monitor(ctx, &MonitorInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Usages) != 1 {
		t.Fatalf("usages: got %d, want 1", len(out.Usages))
	}
	// the 13:00 line is outside the window ending at 12:00
	if out.Usages[0].Bytes != 150 {
		t.Errorf("bytes: got %d, want 150", out.Usages[0].Bytes)
	}

	poll, err := u.Repos.TrafficPoll.Get(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !poll.LastPolledAt.Equal(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("poll timestamp not advanced: %v", poll.LastPolledAt)
	}

	// A second pass over the same log counts nothing twice.
	u.Now = func() time.Time { return time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC) }
	out, err = u.Monitor(ctx, &MonitorInput{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Usages[0].Bytes != 999 {
		t.Errorf("second pass bytes: got %d, want 999", out.Usages[0].Bytes)
	}
}

func TestMonitorMissingLogYieldsZero(t *testing.T) {
	u := &UseCase{
		Repos: &Repos{
			Site:        memory.NewInMemorySiteRepository(),
			TrafficPoll: memory.NewInMemoryTrafficPollRepository(),
		},
		LogDir: t.TempDir(),
	}
	ctx := context.Background()
	s := &model.Site{Name: "empty", AccountID: "bob", Protocol: model.ProtocolHTTP}
	if err := u.Repos.Site.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	out, err := u.Monitor(ctx, &MonitorInput{SiteIDs: []string{s.ID}})
	if err != nil {
		t.Fatal(err)
	}
	if out.Usages[0].Bytes != 0 {
		t.Errorf("bytes: got %d, want 0", out.Usages[0].Bytes)
	}
}
