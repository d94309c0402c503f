package farmdata

import (
	"sync"
	"time"

	"github.com/isdelr/agrasia-be/internal/models"
)

// Catalog caches the farm list so every dashboard load does not re-read
// farms.json. Refresh swaps in a new snapshot; a failed refresh keeps the old.
type Catalog struct {
	provider Provider

	mu        sync.RWMutex
	farms     []models.FarmSummary
	loaded    bool
	refreshed time.Time
}

// NewCatalog creates an empty catalog over provider.
func NewCatalog(provider Provider) *Catalog {
	return &Catalog{provider: provider}
}

// Farms returns the cached farm list, loading it on first use.
func (c *Catalog) Farms() ([]models.FarmSummary, error) {
	c.mu.RLock()
	if c.loaded {
		farms := c.farms
		c.mu.RUnlock()
		return farms, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.farms, nil
}

// Refresh reloads the farm list from the provider.
func (c *Catalog) Refresh() error {
	farms, err := c.provider.ListFarms()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.farms = farms
	c.loaded = true
	c.refreshed = time.Now()
	c.mu.Unlock()
	return nil
}

// RefreshedAt returns when the snapshot was last loaded; zero if never.
func (c *Catalog) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshed
}
