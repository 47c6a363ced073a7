// Package site implements site management use cases.
package site

import (
	"github.com/panelops/panelops/domain"
)

// Repos holds repositories needed for site use cases.
type Repos struct {
	Site   domain.SiteRepository
	WebApp domain.WebAppRepository
	Domain domain.DomainRepository
}

// UseCase wires repositories needed for site use cases.
type UseCase struct {
	Repos *Repos
}
