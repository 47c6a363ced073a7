// Package naming provides centralized normalization and validation of the
// names this layer embeds in generated configuration: URL path prefixes and
// domain names. Keeping the logic here allows format changes without
// touching call sites.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// NormalizeURLPath canonicalizes a URL path prefix for use as a location:
// a single leading slash, no trailing slash, "" for the root.
func NormalizeURLPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return ""
	}
	return "/" + path
}

var domainNameRe = regexp.MustCompile(`^(\*\.)?([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)

// ValidateDomainName checks a registered domain or subdomain name. Names
// are compared lower-cased; a single leading wildcard label is allowed.
func ValidateDomainName(name string) error {
	if name == "" {
		return fmt.Errorf("domain name must not be empty")
	}
	if len(name) > 253 {
		return fmt.Errorf("domain name exceeds 253 characters")
	}
	if !domainNameRe.MatchString(strings.ToLower(name)) {
		return fmt.Errorf("invalid domain name %q", name)
	}
	return nil
}

// ValidateZoneInterval checks a zone timer value: seconds, or a number
// suffixed with s/m/h/d/w.
func ValidateZoneInterval(value string) error {
	if value == "" {
		return nil
	}
	if !regexp.MustCompile(`^[0-9]+[smhdw]?$`).MatchString(value) {
		return fmt.Errorf("invalid zone interval %q", value)
	}
	return nil
}
