// Package traffic computes incremental usage from web server access logs.
//
// A scan covers the window between the previous poll and now. Timestamps
// are compared in a fixed-width numeric encoding (YYYYMMDDHHMMSS) so the
// comparison is a plain string compare, independent of locale and timezone
// names embedded in the log.
package traffic

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
)

var months = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

// Window is a half-open scan interval [Start, End) in encoded form.
type Window struct {
	Start string
	End   string
}

// NewWindow encodes the half-open interval [start, end).
func NewWindow(start, end time.Time) Window {
	return Window{Start: encode(start), End: encode(end)}
}

func encode(t time.Time) string {
	return t.Format("20060102150405")
}

// Contains reports whether the encoded timestamp falls inside the window:
// inclusive start, exclusive end.
func (w Window) Contains(ts string) bool {
	return ts >= w.Start && ts < w.End
}

// Monitor scans access logs and sums the size field of matching lines.
type Monitor struct {
	// IgnoreHosts drops lines containing any of these substrings, used to
	// exclude monitoring probes and internal hosts from usage accounting.
	IgnoreHosts []string
}

// Sum reads log lines and returns the total of the trailing numeric field
// for every line whose timestamp falls inside the window. Lines without a
// parsable timestamp or size are skipped. No matching lines is not an
// error; the sum is simply zero.
func (m *Monitor) Sum(r io.Reader, w Window) (int64, error) {
	var sum int64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m.ignored(line) {
			continue
		}
		ts, ok := lineTimestamp(line)
		if !ok || !w.Contains(ts) {
			continue
		}
		fields := strings.Fields(line)
		size, err := strconv.ParseInt(fields[len(fields)-1], 10, 64)
		if err != nil {
			continue
		}
		sum += size
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return sum, nil
}

// SumFiles scans the given log files (current plus rotated) and returns the
// combined sum. Missing files are skipped: a freshly created site has no
// log yet.
func (m *Monitor) SumFiles(w Window, paths ...string) (int64, error) {
	var sum int64
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return 0, err
		}
		n, err := m.Sum(f, w)
		f.Close()
		if err != nil {
			return 0, err
		}
		sum += n
	}
	return sum, nil
}

func (m *Monitor) ignored(line string) bool {
	for _, h := range m.IgnoreHosts {
		if h != "" && strings.Contains(line, h) {
			return true
		}
	}
	return false
}

// lineTimestamp extracts the encoded timestamp from the fixed log-line
// position: the fourth whitespace field, "[DD/Mon/YYYY:HH:MM:SS".
func lineTimestamp(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return "", false
	}
	date := fields[3]
	if len(date) < 21 || date[0] != '[' {
		return "", false
	}
	date = date[1:]
	month, ok := months[date[3:6]]
	if !ok {
		return "", false
	}
	return date[7:11] + month + date[0:2] + date[12:14] + date[15:17] + date[18:20], true
}
