package traffic

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleLog = `203.0.113.5 - - [30/Aug/2026:10:00:00 +0000] "GET / HTTP/1.1" 200 100
203.0.113.5 - - [30/Aug/2026:10:00:05 +0000] "GET /a HTTP/1.1" 200 50
`

func window(t *testing.T, start, end string) Window {
	t.Helper()
	s, err := time.Parse("2006-01-02 15:04:05", start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := time.Parse("2006-01-02 15:04:05", end)
	if err != nil {
		t.Fatal(err)
	}
	return NewWindow(s, e)
}

func TestSumWindowBoundaries(t *testing.T) {
	// Inclusive start, exclusive end: the line on the lower bound counts,
	// the line on the upper bound does not.
	m := &Monitor{}
	w := window(t, "2026-08-30 10:00:00", "2026-08-30 10:00:05")
	sum, err := m.Sum(strings.NewReader(sampleLog), w)
	if err != nil {
		t.Fatal(err)
	}
	if sum != 100 {
		t.Fatalf("sum = %d, want 100", sum)
	}
}

func TestSumNoMatchesIsZero(t *testing.T) {
	m := &Monitor{}
	w := window(t, "2026-08-29 00:00:00", "2026-08-29 01:00:00")
	sum, err := m.Sum(strings.NewReader(sampleLog), w)
	if err != nil {
		t.Fatal(err)
	}
	if sum != 0 {
		t.Fatalf("sum = %d, want 0", sum)
	}
}

func TestSumIgnoresConfiguredHosts(t *testing.T) {
	log := `10.0.0.1 - - [30/Aug/2026:10:00:01 +0000] "GET / HTTP/1.1" 200 999
203.0.113.5 - - [30/Aug/2026:10:00:02 +0000] "GET / HTTP/1.1" 200 10
`
	m := &Monitor{IgnoreHosts: []string{"10.0.0.1"}}
	w := window(t, "2026-08-30 10:00:00", "2026-08-30 11:00:00")
	sum, err := m.Sum(strings.NewReader(log), w)
	if err != nil {
		t.Fatal(err)
	}
	if sum != 10 {
		t.Fatalf("sum = %d, want 10", sum)
	}
}

func TestSumSkipsMalformedLines(t *testing.T) {
	log := "garbage\n" +
		`203.0.113.5 - - [30/Aug/2026:10:00:01 +0000] "GET / HTTP/1.1" 200 -` + "\n" +
		`203.0.113.5 - - [30/Aug/2026:10:00:02 +0000] "GET / HTTP/1.1" 200 7` + "\n"
	m := &Monitor{}
	w := window(t, "2026-08-30 10:00:00", "2026-08-30 11:00:00")
	sum, err := m.Sum(strings.NewReader(log), w)
	if err != nil {
		t.Fatal(err)
	}
	if sum != 7 {
		t.Fatalf("sum = %d, want 7", sum)
	}
}

func TestSumFilesIncludesRotatedAndSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "access.log")
	rotated := filepath.Join(dir, "access.log.1")
	if err := os.WriteFile(current, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rotated, []byte(
		`203.0.113.5 - - [30/Aug/2026:09:59:59 +0000] "GET / HTTP/1.1" 200 5`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := &Monitor{}
	w := window(t, "2026-08-30 09:00:00", "2026-08-30 11:00:00")
	sum, err := m.SumFiles(w, current, rotated, filepath.Join(dir, "missing.log"))
	if err != nil {
		t.Fatal(err)
	}
	if sum != 155 {
		t.Fatalf("sum = %d, want 155", sum)
	}
}
