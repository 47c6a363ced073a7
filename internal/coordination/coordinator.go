// Package coordination implements the cross-backend restart protocol.
//
// Several backends running in the same deployment window may independently
// decide that a shared daemon needs reloading. Each participant registers
// itself in a shared per-daemon state record before doing any work and
// checks out at commit time. The participant that checks out last (the last
// finisher) is the only one allowed to trigger the restart, and it does so
// exactly once if any participant flagged a restart.
//
// The state record is a plain line-oriented file mutated only inside a
// critical section entered by atomically renaming the file to a locked
// name. At most one of the two names exists at any time, so acquisition
// either succeeds atomically or observes the lock held elsewhere.
package coordination

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/panelops/panelops/domain/model"
)

const restartMark = " RESTART"

// Coordinator coordinates restarts of shared daemons across backends.
// The zero retry settings fall back to defaults.
type Coordinator struct {
	Dir           string        // directory holding per-daemon state files
	RetryInterval time.Duration // delay between lock attempts (default 200ms)
	MaxRetries    int           // attempts before giving up (default 25)
}

// New returns a Coordinator storing state records under dir.
func New(dir string) *Coordinator {
	return &Coordinator{Dir: dir, RetryInterval: 200 * time.Millisecond, MaxRetries: 25}
}

func (c *Coordinator) statePath(daemon string) string {
	return c.Dir + "/restart." + daemon
}

func (c *Coordinator) lockedPath(daemon string) string {
	return c.statePath(daemon) + ".locked"
}

// Register records the backend's participation in the daemon's deployment
// window. Registering twice is a no-op.
func (c *Coordinator) Register(ctx context.Context, daemon, backend string) error {
	entries, err := c.acquire(ctx, daemon)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if entryName(e) == backend {
			return c.releaseState(daemon, entries)
		}
	}
	return c.releaseState(daemon, append(entries, backend))
}

// Finish checks the backend out of the daemon's deployment window and
// returns whether this backend must perform the restart now.
//
// Only the last finisher ever gets true, and only when any participant
// (including this one) flagged needsRestart. A non-last finisher with
// needsRestart set defers the decision by re-recording itself with a
// restart mark.
func (c *Coordinator) Finish(ctx context.Context, daemon, backend string, needsRestart bool) (bool, error) {
	entries, err := c.acquire(ctx, daemon)
	if err != nil {
		return false, err
	}
	flagged := needsRestart
	remaining := entries[:0:0]
	for _, e := range entries {
		if entryName(e) == backend {
			if strings.HasSuffix(e, restartMark) {
				flagged = true
			}
			continue
		}
		remaining = append(remaining, e)
	}
	// Entries carrying the restart mark are deferred decisions of already
	// finished participants, not pending ones. This backend is the last
	// finisher when nothing unmarked remains.
	last := true
	for _, e := range remaining {
		if !strings.HasSuffix(e, restartMark) {
			last = false
			break
		}
	}
	if last {
		anyFlagged := flagged
		for _, e := range remaining {
			if strings.HasSuffix(e, restartMark) {
				anyFlagged = true
			}
		}
		if err := c.destroy(daemon); err != nil {
			return false, err
		}
		return anyFlagged, nil
	}
	if flagged {
		remaining = append(remaining, backend+restartMark)
	}
	return false, c.releaseState(daemon, remaining)
}

// acquire enters the critical section and returns the current entries. On
// success the caller owns the locked file and must call releaseState or
// destroy on every path.
func (c *Coordinator) acquire(ctx context.Context, daemon string) ([]string, error) {
	state := c.statePath(daemon)
	locked := c.lockedPath(daemon)
	interval := c.RetryInterval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	retries := c.MaxRetries
	if retries <= 0 {
		retries = 25
	}
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		}
		err := os.Rename(state, locked)
		if err == nil {
			return c.readEntries(locked)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("locking restart state for %s: %w", daemon, err)
		}
		// No state file: either never created or currently locked
		// elsewhere. Try to create the locked file directly; losing the
		// creation race means the lock is held, so back off.
		f, err := os.OpenFile(locked, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			f.Close()
			return nil, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("creating restart state for %s: %w", daemon, err)
		}
	}
	return nil, fmt.Errorf("restart state for %s held elsewhere after %d attempts: %w",
		daemon, retries, model.ErrLockNotAcquired)
}

// releaseState writes the entries and atomically hands the record back.
func (c *Coordinator) releaseState(daemon string, entries []string) error {
	locked := c.lockedPath(daemon)
	content := ""
	if len(entries) > 0 {
		content = strings.Join(entries, "\n") + "\n"
	}
	if err := os.WriteFile(locked, []byte(content), 0o644); err != nil {
		// Do not leave the record locked.
		os.Rename(locked, c.statePath(daemon))
		return fmt.Errorf("writing restart state for %s: %w", daemon, err)
	}
	if err := os.Rename(locked, c.statePath(daemon)); err != nil {
		return fmt.Errorf("releasing restart state for %s: %w", daemon, err)
	}
	return nil
}

// destroy removes the locked record, ending the deployment window.
func (c *Coordinator) destroy(daemon string) error {
	if err := os.Remove(c.lockedPath(daemon)); err != nil {
		return fmt.Errorf("removing restart state for %s: %w", daemon, err)
	}
	return nil
}

func (c *Coordinator) readEntries(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading restart state: %w", err)
	}
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

func entryName(entry string) string {
	return strings.TrimSuffix(entry, restartMark)
}
