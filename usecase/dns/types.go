// Package dns implements domain registration, record management and zone
// composition use cases.
package dns

import (
	"github.com/panelops/panelops/domain"
	"github.com/panelops/panelops/internal/zonefile"
)

// Repos holds repositories needed for dns use cases.
type Repos struct {
	Domain domain.DomainRepository
	Record domain.RecordRepository
}

// UseCase wires repositories and the configured zone defaults.
type UseCase struct {
	Repos    *Repos
	Defaults zonefile.Defaults
}
