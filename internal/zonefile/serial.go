package zonefile

import (
	"time"

	"github.com/panelops/panelops/domain/model"
)

// GenerateSerial returns a fresh date-based zone serial for the given
// moment: YYYYMMDD followed by a two-digit revision starting at 00.
func GenerateSerial(now time.Time) int {
	y, m, d := now.Date()
	return (y*10000+int(m)*100+d)*100
}

// NextSerial returns the serial to store after a zone change. When the
// date-based serial would not exceed the current one (same calendar day),
// the two-digit revision is incremented instead. The revision space is
// exhausted at 99; that surfaces as model.ErrSerialExhausted rather than
// wrapping, since a wrapped serial would stop secondaries from noticing
// zone changes.
func NextSerial(current int, now time.Time) (int, error) {
	serial := GenerateSerial(now)
	if serial <= current {
		rev := current%100 + 1
		if rev >= 99 {
			return 0, model.ErrSerialExhausted
		}
		serial = current - current%100 + rev
	}
	return serial, nil
}
