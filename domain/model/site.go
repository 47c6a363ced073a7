package model

import (
	"strings"
	"time"
)

// Protocol selects which virtual-host documents are rendered for a site.
type Protocol string

const (
	ProtocolHTTP         Protocol = "http"
	ProtocolHTTPS        Protocol = "https"
	ProtocolHTTPAndHTTPS Protocol = "http+https"
	ProtocolHTTPSOnly    Protocol = "https-only"
)

// HasHTTP reports whether a plain HTTP virtual host is rendered.
func (p Protocol) HasHTTP() bool {
	return p == ProtocolHTTP || p == ProtocolHTTPAndHTTPS
}

// HasHTTPS reports whether an SSL virtual host is rendered.
func (p Protocol) HasHTTPS() bool {
	return p == ProtocolHTTPS || p == ProtocolHTTPAndHTTPS || p == ProtocolHTTPSOnly
}

// Site represents one web site: a set of domains served under a common
// virtual host with an ordered list of content mappings.
type Site struct {
	ID        string
	Name      string
	AccountID string
	Protocol  Protocol
	Active    bool

	// Contents maps URL path prefixes to web applications, in declaration
	// order.
	Contents []Content

	// Directives holds site-level directive values (ssl-cert, redirect,
	// proxy, sec-rule-remove, ...). A name may repeat.
	Directives []SiteDirective

	// DomainIDs references the domains served by this site.
	DomainIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Content maps a URL path prefix to a web application.
type Content struct {
	Path     string
	WebAppID string
}

// SiteDirective is one site-level directive value.
type SiteDirective struct {
	Name  string
	Value string
}

// Directive value accessors.

// DirectiveValues returns all values declared for name, in order.
func (s *Site) DirectiveValues(name string) []string {
	var out []string
	for _, d := range s.Directives {
		if d.Name == name {
			out = append(out, d.Value)
		}
	}
	return out
}

// DirectiveValue returns the first value declared for name, or "".
func (s *Site) DirectiveValue(name string) string {
	for _, d := range s.Directives {
		if d.Name == name {
			return d.Value
		}
	}
	return ""
}

// UniqueName returns the site name qualified by its account, used to name
// deployed configuration artifacts.
func (s *Site) UniqueName() string {
	return s.AccountID + "-" + strings.ToLower(s.Name)
}
