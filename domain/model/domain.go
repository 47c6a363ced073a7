package model

import (
	"strings"
	"time"
)

// Domain represents a registered DNS domain or subdomain.
//
// TopID references the closest registered ancestor domain. A domain with no
// registered ancestor is a top domain: it owns its zone, and every domain
// whose name is a label-suffix extension of its name belongs to that zone.
type Domain struct {
	ID        string
	Name      string // lowercase, globally unique
	AccountID string
	TopID     string // empty for a top domain
	Serial    int

	// Zone timers in presentation format (e.g. "1d", "2h"). Empty values
	// fall back to the configured zone defaults at composition time.
	Refresh string
	Retry   string
	Expire  string
	MinTTL  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTop reports whether the domain has no registered ancestor and therefore
// owns its own zone.
func (d *Domain) IsTop() bool { return d.TopID == "" }

// ParentCandidates returns the names of all possible ancestor domains of
// name, closest first. The final single label (TLD) is never a candidate.
// For "www.blog.example.com" it returns ["blog.example.com", "example.com"].
func ParentCandidates(name string) []string {
	labels := strings.Split(name, ".")
	var out []string
	for i := 1; i < len(labels)-1; i++ {
		out = append(out, strings.Join(labels[i:], "."))
	}
	return out
}

// IsWildcard reports whether the domain name starts with a wildcard label.
func (d *Domain) IsWildcard() bool { return strings.HasPrefix(d.Name, "*") }
