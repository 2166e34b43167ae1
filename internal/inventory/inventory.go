// Package inventory moves state between the template hierarchy
// (venue, layout, area, seat) and the live one (event, event area, event
// seat). The Materializer copies a layout into an event; the Cascader removes
// subtrees once no occupied event seat hangs below them.
package inventory

import (
	"ticketeer/internal/areas"
	"ticketeer/internal/eventareas"
	"ticketeer/internal/events"
	"ticketeer/internal/shared/database"
	"ticketeer/internal/venues"
	"ticketeer/pkg/logger"
)

// Repositories bundles the stores both halves of the inventory work on.
type Repositories struct {
	Venues     venues.Repository
	Areas      areas.Repository
	Events     events.Repository
	EventAreas eventareas.Repository
}

// Manager serves every catalog service that needs to materialize or cascade.
type Manager struct {
	*Cascader
	*Materializer
}

func NewManager(tx database.Transactor, repos Repositories) *Manager {
	log := logger.GetDefault()
	c := &Cascader{tx: tx, repos: repos, log: log}
	return &Manager{
		Cascader:     c,
		Materializer: &Materializer{tx: tx, repos: repos, cascader: c},
	}
}
