package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/agrasia-be/internal/farmdata"
	"github.com/isdelr/agrasia-be/internal/services"
	"github.com/rs/zerolog/log"
)

// FarmHandler handles HTTP requests for farm data.
type FarmHandler struct {
	service services.FarmServiceProvider
}

// NewFarmHandler creates a new FarmHandler.
func NewFarmHandler(service services.FarmServiceProvider) *FarmHandler {
	return &FarmHandler{service: service}
}

// ValidateFarmID rejects any request under /farms/{farmId} whose id is not
// [a-z0-9_]+, before a handler can touch the filesystem.
func ValidateFarmID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !farmdata.ValidID(chi.URLParam(r, "farmId")) {
			respondError(w, http.StatusBadRequest, "Invalid farm ID format")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetAll handles the request to list all farms.
func (h *FarmHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	farms, err := h.service.ListFarms()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve farm list")
		respondError(w, http.StatusInternalServerError, "Error fetching farm list")
		return
	}
	respondJSON(w, http.StatusOK, farms)
}

// Get handles the request for a single farm's detail document.
func (h *FarmHandler) Get(w http.ResponseWriter, r *http.Request) {
	farmID := chi.URLParam(r, "farmId")
	detail, err := h.service.GetFarm(farmID)
	if err != nil {
		h.writeDocumentError(w, err, farmID, "Data for farm '%s' not found.")
		return
	}
	respondRaw(w, http.StatusOK, detail)
}

// GetDashboard handles the request for a farm's dashboard view model.
func (h *FarmHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	farmID := chi.URLParam(r, "farmId")
	dashboard, err := h.service.GetDashboard(farmID)
	if err != nil {
		h.writeError(w, err, farmID, "Data for farm '%s' not found.")
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// GetSpatial handles the request for a farm's NDVI vigor GeoJSON.
func (h *FarmHandler) GetSpatial(w http.ResponseWriter, r *http.Request) {
	farmID := chi.URLParam(r, "farmId")
	geojson, err := h.service.GetSpatial(farmID)
	if err != nil {
		h.writeDocumentError(w, err, farmID, "Spatial data for farm '%s' not found.")
		return
	}
	respondRaw(w, http.StatusOK, geojson)
}

// GetSeries handles the request for one CSV-backed time series.
func (h *FarmHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	farmID := chi.URLParam(r, "farmId")
	kind := chi.URLParam(r, "kind")
	if !farmdata.ValidID(kind) {
		respondError(w, http.StatusBadRequest, "Invalid series kind format")
		return
	}

	series, err := h.service.GetSeries(farmID, kind)
	if err != nil {
		h.writeError(w, err, farmID, "Series '"+kind+"' for farm '%s' not found.")
		return
	}
	respondJSON(w, http.StatusOK, series)
}

// GetLegend handles the request for the NDVI legend bands.
func (h *FarmHandler) GetLegend(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Legend())
}

// writeDocumentError serves the verbatim document routes, where any file that
// cannot be read or is not valid JSON counts as not found.
func (h *FarmHandler) writeDocumentError(w http.ResponseWriter, err error, farmID, notFoundFormat string) {
	if errors.Is(err, farmdata.ErrInvalidID) {
		respondError(w, http.StatusBadRequest, "Invalid farm ID format")
		return
	}
	if !errors.Is(err, farmdata.ErrNotFound) {
		log.Warn().Err(err).Str("farm_id", farmID).Msg("Unreadable farm document")
	}
	respondError(w, http.StatusNotFound, fmt.Sprintf(notFoundFormat, farmID))
}

func (h *FarmHandler) writeError(w http.ResponseWriter, err error, farmID, notFoundFormat string) {
	switch {
	case errors.Is(err, farmdata.ErrInvalidID):
		respondError(w, http.StatusBadRequest, "Invalid farm ID format")
	case errors.Is(err, farmdata.ErrNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf(notFoundFormat, farmID))
	default:
		log.Error().Err(err).Str("farm_id", farmID).Msg("Failed to read farm data")
		respondError(w, http.StatusInternalServerError, "Error reading farm data")
	}
}
