// Package panelopscfg defines the configuration schema (structs) for
// panelops.yml: the opaque constants consumed by the rendering, zone
// composition and monitoring layers. This package is intended for
// YAML -> struct deserialization; loading and validation helpers live in
// separate files.
package panelopscfg

// Root is the root structure of panelops.yml.
type Root struct {
	Version  string   `yaml:"version"`
	Web      Web      `yaml:"web"`
	DNS      DNS      `yaml:"dns"`
	Traffic  Traffic  `yaml:"traffic"`
	Coorddir string   `yaml:"coorddir" validate:"required"` // shared restart state directory
	Hosts    []string `yaml:"hosts"`                        // target deployment hosts
}

// Web holds web server rendering settings.
type Web struct {
	// IPs are the listen addresses of every rendered virtual host. At
	// least one is required to render anything.
	IPs []string `yaml:"ips" validate:"required,min=1,dive,ip"`

	// Default SSL certificate triple used when a site declares none.
	SSLCert string `yaml:"ssl_cert"`
	SSLKey  string `yaml:"ssl_key"`
	SSLCA   string `yaml:"ssl_ca"`

	// ConfDir is the web server configuration root holding the
	// sites-available and sites-enabled directories.
	ConfDir string `yaml:"conf_dir" validate:"required"`

	// LogDir holds per-site access logs.
	LogDir string `yaml:"log_dir" validate:"required"`

	// FPMPoolDir holds generated PHP-FPM pool definitions.
	FPMPoolDir string `yaml:"fpm_pool_dir"`

	// SaaSDirectives maps "<service>-saas" directive names to the
	// directive they delegate to.
	SaaSDirectives map[string]SaaSDirective `yaml:"saas_directives"`

	// ExtraDirectives are appended to every rendered virtual host.
	ExtraDirectives []ExtraDirective `yaml:"extra_directives"`
}

// SaaSDirective is the delegation target of a SaaS-contributed directive.
type SaaSDirective struct {
	Name string   `yaml:"name" validate:"required"`
	Args []string `yaml:"args"`
}

// ExtraDirective is a literal (location, text) fragment added to every
// virtual host.
type ExtraDirective struct {
	Location string `yaml:"location"`
	Text     string `yaml:"text" validate:"required"`
}

// DNS holds zone composition defaults.
type DNS struct {
	ZoneDir           string   `yaml:"zone_dir" validate:"required"`
	TTL               string   `yaml:"ttl" validate:"required"`
	NameServers       []string `yaml:"name_servers" validate:"required,min=1,dive,fqdn|endswith=."`
	PrimaryNameServer string   `yaml:"primary_name_server" validate:"required"`
	Hostmaster        string   `yaml:"hostmaster" validate:"required"`
	MX                []string `yaml:"mx"`
	A                 string   `yaml:"a" validate:"omitempty,ipv4"`
	AAAA              string   `yaml:"aaaa" validate:"omitempty,ipv6"`
	Refresh           string   `yaml:"refresh" validate:"required"`
	Retry             string   `yaml:"retry" validate:"required"`
	Expire            string   `yaml:"expire" validate:"required"`
	MinTTL            string   `yaml:"min_ttl" validate:"required"`
}

// Traffic holds usage monitoring settings.
type Traffic struct {
	// IgnoreHosts excludes lines containing these hosts from usage sums.
	IgnoreHosts []string `yaml:"ignore_hosts"`
}
