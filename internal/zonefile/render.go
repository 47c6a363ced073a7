package zonefile

import (
	"sort"
	"strings"

	"github.com/panelops/panelops/domain/model"
)

// Column widths of the rendered zone file. Downstream parsers do not need
// the alignment, but operators diff the generated files, so the format is
// part of the observable contract.
const (
	nameColumn = 37
	ttlColumn  = 7
	typeColumn = 7
)

// DomainRecords pairs a domain with its composed effective record set.
type DomainRecords struct {
	Domain  *model.Domain
	Records []RR
}

// Render renders a complete zone: the top domain's records first, then each
// subdomain in name order, with wildcard subdomains last, longest name
// first, so a broad wildcard cannot shadow a more specific sibling in
// first-match resolvers.
func Render(top DomainRecords, subdomains []DomainRecords) string {
	var b strings.Builder
	renderRecords(&b, top)
	var tail []DomainRecords
	plain := make([]DomainRecords, 0, len(subdomains))
	for _, sub := range subdomains {
		if sub.Domain.IsWildcard() {
			tail = append(tail, sub)
		} else {
			plain = append(plain, sub)
		}
	}
	sort.SliceStable(plain, func(i, j int) bool {
		return plain[i].Domain.Name < plain[j].Domain.Name
	})
	sort.SliceStable(tail, func(i, j int) bool {
		return len(tail[i].Domain.Name) > len(tail[j].Domain.Name)
	})
	for _, sub := range plain {
		renderRecords(&b, sub)
	}
	for _, sub := range tail {
		renderRecords(&b, sub)
	}
	return strings.TrimSpace(b.String())
}

func renderRecords(b *strings.Builder, dr DomainRecords) {
	for _, rr := range dr.Records {
		b.WriteString(padRight(dr.Domain.Name+".", nameColumn+1))
		b.WriteString(" ")
		b.WriteString(padLeft(rr.TTL, ttlColumn))
		b.WriteString(" IN ")
		b.WriteString(padRight(string(rr.Type), typeColumn+1))
		b.WriteString(" ")
		b.WriteString(rr.Value)
		b.WriteString("\n")
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
