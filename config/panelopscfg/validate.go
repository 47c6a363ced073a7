package panelopscfg

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/panelops/panelops/internal/naming"
)

// Validate performs semantic validation on the configuration tree using
// the struct tags plus a few cross-field rules the tags cannot express.
func (r *Root) Validate() error {
	v := validator.New()
	if err := v.Struct(r); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if (r.Web.SSLCert == "") != (r.Web.SSLKey == "") {
		return fmt.Errorf("config: web.ssl_cert and web.ssl_key must be set together")
	}
	for name, d := range r.Web.SaaSDirectives {
		if d.Name == name {
			return fmt.Errorf("config: saas directive %q delegates to itself", name)
		}
	}
	for _, tm := range []struct{ field, value string }{
		{"dns.refresh", r.DNS.Refresh},
		{"dns.retry", r.DNS.Retry},
		{"dns.expire", r.DNS.Expire},
		{"dns.min_ttl", r.DNS.MinTTL},
		{"dns.ttl", r.DNS.TTL},
	} {
		if err := naming.ValidateZoneInterval(tm.value); err != nil {
			return fmt.Errorf("config: %s: %w", tm.field, err)
		}
	}
	return nil
}
