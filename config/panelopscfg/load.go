package panelopscfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a deserialized
// Root. It performs no validation beyond YAML decoding; validation is
// handled elsewhere.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration pre-filled with the conventional Debian
// paths and zone timers. Callers still need to fill in the web IPs and DNS
// server names before the tree validates.
func Default() *Root {
	return &Root{
		Version:  "v1",
		Coorddir: "/dev/shm",
		Web: Web{
			ConfDir:    "/etc/apache2",
			LogDir:     "/var/log/apache2/virtual",
			FPMPoolDir: "/etc/php/7.4/fpm/pool.d",
		},
		DNS: DNS{
			ZoneDir: "/etc/bind/zones",
			TTL:     "1h",
			Refresh: "1d",
			Retry:   "2h",
			Expire:  "4w",
			MinTTL:  "1h",
		},
	}
}
