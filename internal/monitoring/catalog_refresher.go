package monitoring

import (
	"fmt"
	"sync"

	"github.com/isdelr/agrasia-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Refresher is anything that can reload itself from its source.
type Refresher interface {
	Refresh() error
}

// CatalogRefresher periodically reloads the farm catalog on a cron schedule.
type CatalogRefresher struct {
	catalog  Refresher
	eventSvc services.EventServiceProvider
	cron     *cron.Cron

	mu         sync.Mutex
	lastFailed bool
}

// NewCatalogRefresher creates a refresher for the given standard 5-field cron
// expression. eventSvc may be nil.
func NewCatalogRefresher(schedule string, catalog Refresher, eventSvc services.EventServiceProvider) (*CatalogRefresher, error) {
	cr := &CatalogRefresher{
		catalog:  catalog,
		eventSvc: eventSvc,
		cron:     cron.New(),
	}
	if _, err := cr.cron.AddFunc(schedule, cr.refresh); err != nil {
		return nil, fmt.Errorf("invalid catalog refresh schedule %q: %w", schedule, err)
	}
	return cr, nil
}

// Run starts the cron scheduler in its own goroutine and returns immediately.
func (cr *CatalogRefresher) Run() {
	log.Info().Msg("Starting catalog refresher...")
	cr.cron.Start()
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (cr *CatalogRefresher) Stop() {
	<-cr.cron.Stop().Done()
	log.Info().Msg("Stopped catalog refresher.")
}

// refresh reloads the catalog. Only the first failure of a streak and the
// recovery after it are written to the event log.
func (cr *CatalogRefresher) refresh() {
	err := cr.catalog.Refresh()

	cr.mu.Lock()
	wasFailing := cr.lastFailed
	cr.lastFailed = err != nil
	cr.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("Catalog refresh failed, keeping previous snapshot")
		if !wasFailing {
			cr.record("catalog.refresh.fail", "error", fmt.Sprintf("Farm catalog refresh failed: %v", err))
		}
		return
	}

	log.Debug().Msg("Farm catalog refreshed")
	if wasFailing {
		cr.record("catalog.refresh.recovered", "info", "Farm catalog refresh succeeded again.")
	}
}

func (cr *CatalogRefresher) record(eventType, level, message string) {
	if cr.eventSvc == nil {
		return
	}
	if err := cr.eventSvc.CreateEvent(eventType, level, message, nil); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("Failed to record event")
	}
}
