package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// RecordType enumerates the supported DNS record types.
type RecordType string

const (
	RecordTypeMX    RecordType = "MX"
	RecordTypeNS    RecordType = "NS"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeSRV   RecordType = "SRV"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeSOA   RecordType = "SOA"
)

// RecordTypes lists all supported record types.
var RecordTypes = []RecordType{
	RecordTypeMX, RecordTypeNS, RecordTypeCNAME, RecordTypeA,
	RecordTypeAAAA, RecordTypeSRV, RecordTypeTXT, RecordTypeSOA,
}

// Record represents a single declared resource record of a domain.
type Record struct {
	ID       string
	DomainID string
	Type     RecordType
	TTL      string // empty means the configured default TTL
	Value    string
	Order    int64 // persisted declaration order within the domain

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize canonicalizes the record value. Everything except TXT data is
// case-insensitive in a zone, so non-TXT values are lower-cased and trimmed.
func (r *Record) Normalize() {
	if r.Type != RecordTypeTXT {
		r.Value = strings.ToLower(strings.TrimSpace(r.Value))
	}
}

// Validate checks the record value against its type by parsing it in zone
// presentation format. TXT values are quoted before parsing so that plain
// text round-trips.
func (r *Record) Validate() error {
	known := false
	for _, t := range RecordTypes {
		if r.Type == t {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unsupported record type %q", r.Type)
	}
	value := r.Value
	if r.Type == RecordTypeTXT {
		value = fmt.Sprintf("%q", value)
	}
	rr := fmt.Sprintf("placeholder.example. 3600 IN %s %s", r.Type, value)
	if _, err := dns.NewRR(rr); err != nil {
		return fmt.Errorf("invalid %s record value %q: %w", r.Type, r.Value, err)
	}
	return nil
}
