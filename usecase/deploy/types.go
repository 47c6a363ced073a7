// Package deploy orchestrates configuration synthesis and application: it
// resolves resource state, drives each backend to build its script, runs
// the scripts on the target hosts and coordinates daemon restarts.
package deploy

import (
	backenddrv "github.com/panelops/panelops/adapters/drivers/backend"
	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/internal/coordination"
)

// Repos holds repositories needed for deploy use cases.
type Repos struct {
	Site   domain.SiteRepository
	WebApp domain.WebAppRepository
	Domain domain.DomainRepository
	Record domain.RecordRepository
}

// UseCase wires repositories, backends and transports for deployment.
type UseCase struct {
	Repos       *Repos
	Backends    []backenddrv.Backend
	Executor    model.Executor
	Coordinator *coordination.Coordinator

	// Hosts are the deployment targets; empty means localhost only.
	Hosts []string
}
