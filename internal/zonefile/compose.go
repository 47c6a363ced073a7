// Package zonefile composes and renders DNS zone data for registered
// domains. Composition resolves the effective record set of one domain
// (declared records plus injected defaults); rendering produces the
// fixed-format zone file text consumed by the name server.
package zonefile

import (
	"strconv"
	"strings"

	"github.com/panelops/panelops/domain/model"
)

// Defaults carries the configured zone composition defaults.
type Defaults struct {
	TTL               string
	NameServers       []string // default NS record values
	PrimaryNameServer string   // SOA primary name server (no trailing dot)
	Hostmaster        string   // SOA hostmaster address (user@host)
	MX                []string // default MX record values
	A                 string   // default A value, empty to skip
	AAAA              string   // default AAAA value, empty to skip
	Refresh           string
	Retry             string
	Expire            string
	MinTTL            string
}

// RR is one effective resource record of a composed zone.
type RR struct {
	Type  model.RecordType
	TTL   string
	Value string
}

// Compose resolves the effective record set of a single domain: declared
// records in persisted order, with a declared SOA rewritten to the current
// serial and moved first, plus defaults injected for absent types.
//
// NS and SOA defaults are injected only for a top domain. MX and A/AAAA
// defaults follow the host rule: a domain is a host if it is top, has no
// records at all, or already declares an A or AAAA record.
func Compose(d *model.Domain, declared []*model.Record, defaults Defaults) []RR {
	types := map[model.RecordType]bool{}
	var records []RR
	for _, rec := range declared {
		types[rec.Type] = true
		if rec.Type == model.RecordTypeSOA {
			// Rewrite the serial field and keep the SOA first.
			value := strings.Fields(rec.Value)
			if len(value) > 2 {
				value[2] = strconv.Itoa(d.Serial)
			}
			records = insertFirst(records, RR{
				Type:  model.RecordTypeSOA,
				TTL:   ttlOrDefault(rec.TTL, defaults.TTL),
				Value: strings.Join(value, " "),
			})
		} else {
			records = append(records, RR{
				Type:  rec.Type,
				TTL:   ttlOrDefault(rec.TTL, defaults.TTL),
				Value: rec.Value,
			})
		}
	}
	if d.IsTop() {
		if !types[model.RecordTypeNS] {
			for _, ns := range defaults.NameServers {
				records = append(records, RR{Type: model.RecordTypeNS, TTL: defaults.TTL, Value: ns})
			}
		}
		if !types[model.RecordTypeSOA] {
			soa := []string{
				defaults.PrimaryNameServer + ".",
				FormatHostmaster(defaults.Hostmaster),
				strconv.Itoa(d.Serial),
				orDefault(d.Refresh, defaults.Refresh),
				orDefault(d.Retry, defaults.Retry),
				orDefault(d.Expire, defaults.Expire),
				orDefault(d.MinTTL, defaults.MinTTL),
			}
			records = insertFirst(records, RR{
				Type:  model.RecordTypeSOA,
				TTL:   defaults.TTL,
				Value: strings.Join(soa, " "),
			})
		}
	}
	hasA := types[model.RecordTypeA]
	hasAAAA := types[model.RecordTypeAAAA]
	isHost := d.IsTop() || len(types) == 0 || hasA || hasAAAA
	if isHost {
		if !types[model.RecordTypeMX] {
			for _, mx := range defaults.MX {
				records = append(records, RR{Type: model.RecordTypeMX, TTL: defaults.TTL, Value: mx})
			}
		}
		// A and AAAA point at the same default host.
		if !hasA && !hasAAAA {
			if defaults.A != "" {
				records = append(records, RR{Type: model.RecordTypeA, TTL: defaults.TTL, Value: defaults.A})
			}
			if defaults.AAAA != "" {
				records = append(records, RR{Type: model.RecordTypeAAAA, TTL: defaults.TTL, Value: defaults.AAAA})
			}
		}
	}
	return records
}

// FormatHostmaster converts a hostmaster mail address to SOA RNAME form:
// dots in the local part are escaped, the @ becomes a dot, and a trailing
// dot is appended.
func FormatHostmaster(addr string) string {
	local, host, found := strings.Cut(addr, "@")
	if !found {
		return strings.TrimSuffix(addr, ".") + "."
	}
	local = strings.ReplaceAll(local, ".", `\.`)
	return local + "." + strings.TrimSuffix(host, ".") + "."
}

func ttlOrDefault(ttl, def string) string {
	if ttl != "" {
		return ttl
	}
	return def
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func insertFirst(records []RR, rr RR) []RR {
	return append([]RR{rr}, records...)
}
