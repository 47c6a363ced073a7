package main

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/adapters/store/memory"
	"github.com/panelops/panelops/adapters/store/rdb"
	"github.com/panelops/panelops/config/panelopscfg"
	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/coordination"
	"github.com/panelops/panelops/internal/zonefile"
	"github.com/panelops/panelops/usecase/deploy"
	"github.com/panelops/panelops/usecase/dns"
	"github.com/panelops/panelops/usecase/site"
	"github.com/panelops/panelops/usecase/traffic"
	"github.com/panelops/panelops/usecase/webapp"
)

// reposCache ensures command trees built in one process share the same
// store, which matters for the memory: scheme.
var (
	reposCache   = map[string]*domain.Repositories{}
	reposCacheMu sync.Mutex
)

// findFlag walks up the command hierarchy looking for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getDBURL extracts the db-url flag value from command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	f := findFlag(cmd, "db-url")
	if f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "sqlite:panelops.db"
}

// loadConfig loads the configuration file named by --config; a missing
// file yields the built-in defaults.
func loadConfig(cmd *cobra.Command) (*panelopscfg.Root, error) {
	path := "panelops.yml"
	if f := findFlag(cmd, "config"); f != nil && f.Value.String() != "" {
		path = f.Value.String()
	}
	cfg, err := panelopscfg.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return panelopscfg.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// buildRepos creates repositories based on db-url.
func buildRepos(cmd *cobra.Command) (*domain.Repositories, error) {
	dbURL := getDBURL(cmd)
	reposCacheMu.Lock()
	defer reposCacheMu.Unlock()
	if cached, ok := reposCache[dbURL]; ok {
		return cached, nil
	}
	var repos *domain.Repositories
	switch {
	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		repos = &domain.Repositories{
			Site:        rdb.NewSiteRepository(db),
			WebApp:      rdb.NewWebAppRepository(db),
			Domain:      rdb.NewDomainRepository(db),
			Record:      rdb.NewRecordRepository(db),
			TrafficPoll: rdb.NewTrafficPollRepository(db),
		}
	case dbURL == "memory:":
		repos = &domain.Repositories{
			Site:        memory.NewInMemorySiteRepository(),
			WebApp:      memory.NewInMemoryWebAppRepository(),
			Domain:      memory.NewInMemoryDomainRepository(),
			Record:      memory.NewInMemoryRecordRepository(),
			TrafficPoll: memory.NewInMemoryTrafficPollRepository(),
		}
	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
	reposCache[dbURL] = repos
	return repos, nil
}

// zoneDefaults maps the DNS configuration onto composition defaults.
func zoneDefaults(cfg *panelopscfg.Root) zonefile.Defaults {
	return zonefile.Defaults{
		TTL:               cfg.DNS.TTL,
		NameServers:       cfg.DNS.NameServers,
		PrimaryNameServer: cfg.DNS.PrimaryNameServer,
		Hostmaster:        cfg.DNS.Hostmaster,
		MX:                cfg.DNS.MX,
		A:                 cfg.DNS.A,
		AAAA:              cfg.DNS.AAAA,
		Refresh:           cfg.DNS.Refresh,
		Retry:             cfg.DNS.Retry,
		Expire:            cfg.DNS.Expire,
		MinTTL:            cfg.DNS.MinTTL,
	}
}

func buildDNSUseCase(cmd *cobra.Command) (*dns.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return &dns.UseCase{
		Repos:    &dns.Repos{Domain: repos.Domain, Record: repos.Record},
		Defaults: zoneDefaults(cfg),
	}, nil
}

func buildSiteUseCase(cmd *cobra.Command) (*site.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &site.UseCase{Repos: &site.Repos{
		Site:   repos.Site,
		WebApp: repos.WebApp,
		Domain: repos.Domain,
	}}, nil
}

func buildWebAppUseCase(cmd *cobra.Command) (*webapp.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &webapp.UseCase{Repos: &webapp.Repos{WebApp: repos.WebApp}}, nil
}

func buildDeployUseCase(cmd *cobra.Command, executor model.Executor) (*deploy.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	names := backenddrv.Names()
	sort.Strings(names)
	backends := make([]backenddrv.Backend, 0, len(names))
	for _, name := range names {
		factory, ok := backenddrv.GetBackendFactory(name)
		if !ok {
			continue
		}
		backend, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", name, err)
		}
		backends = append(backends, backend)
	}
	return &deploy.UseCase{
		Repos: &deploy.Repos{
			Site:   repos.Site,
			WebApp: repos.WebApp,
			Domain: repos.Domain,
			Record: repos.Record,
		},
		Backends:    backends,
		Executor:    executor,
		Coordinator: coordination.New(cfg.Coorddir),
		Hosts:       cfg.Hosts,
	}, nil
}

func buildTrafficUseCase(cmd *cobra.Command) (*traffic.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return &traffic.UseCase{
		Repos: &traffic.Repos{
			Site:        repos.Site,
			TrafficPoll: repos.TrafficPoll,
		},
		LogDir:      cfg.Web.LogDir,
		IgnoreHosts: cfg.Traffic.IgnoreHosts,
	}, nil
}
