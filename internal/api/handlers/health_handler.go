package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// CatalogStatus reports when the farm catalog was last loaded.
type CatalogStatus interface {
	RefreshedAt() time.Time
}

// HealthHandler reports process and host liveness.
type HealthHandler struct {
	started time.Time
	catalog CatalogStatus
}

// NewHealthHandler creates a new HealthHandler. catalog may be nil.
func NewHealthHandler(catalog CatalogStatus) *HealthHandler {
	return &HealthHandler{started: time.Now(), catalog: catalog}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status             string     `json:"status"`
	UptimeSeconds      int64      `json:"uptimeSeconds"`
	HostUptimeSeconds  uint64     `json:"hostUptimeSeconds,omitempty"`
	MemoryUsedPercent  float64    `json:"memoryUsedPercent"`
	CatalogRefreshedAt *time.Time `json:"catalogRefreshedAt,omitempty"`
}

// Get answers 200 as long as the process can serve requests. Host stats are
// best effort.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}

	if vm, err := mem.VirtualMemoryWithContext(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Failed to read memory stats")
	} else {
		resp.MemoryUsedPercent = vm.UsedPercent
	}
	if up, err := host.UptimeWithContext(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Failed to read host uptime")
	} else {
		resp.HostUptimeSeconds = up
	}

	if h.catalog != nil {
		if at := h.catalog.RefreshedAt(); !at.IsZero() {
			resp.CatalogRefreshedAt = &at
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
