// Package farmdata reads farm catalog, detail, spatial and time-series files
// from a data directory. It never writes.
package farmdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/isdelr/agrasia-be/internal/models"
)

var (
	// ErrInvalidID is returned for farm ids or series kinds outside [a-z0-9_]+.
	ErrInvalidID = errors.New("invalid id format")
	// ErrNotFound is returned when the requested file does not exist.
	ErrNotFound = errors.New("not found")
)

var idPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidID reports whether id is safe to use as part of a file name.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Provider is the read-only data access interface for farm content.
type Provider interface {
	ListFarms() ([]models.FarmSummary, error)
	GetFarmRaw(farmID string) (json.RawMessage, error)
	GetFarm(farmID string) (models.FarmDetail, error)
	GetSpatial(farmID string) (json.RawMessage, error)
	GetSeries(farmID, kind string) (models.Series, error)
}

// FileProvider serves farm content from a directory laid out as:
//
//	farms.json
//	<farmId>.json
//	spatial/<farmId>_spatial.json
//	series/<farmId>_<kind>.csv
type FileProvider struct {
	dir string
}

// NewFileProvider creates a FileProvider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// ListFarms returns the farm catalog.
func (p *FileProvider) ListFarms() ([]models.FarmSummary, error) {
	data, err := p.read("farms.json")
	if err != nil {
		return nil, err
	}
	var farms []models.FarmSummary
	if err := json.Unmarshal(data, &farms); err != nil {
		return nil, fmt.Errorf("decode farms.json: %w", err)
	}
	if farms == nil {
		farms = []models.FarmSummary{}
	}
	return farms, nil
}

// GetFarmRaw returns the farm's detail file exactly as stored.
func (p *FileProvider) GetFarmRaw(farmID string) (json.RawMessage, error) {
	if !ValidID(farmID) {
		return nil, ErrInvalidID
	}
	data, err := p.read(farmID + ".json")
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("farm %s: malformed JSON", farmID)
	}
	return json.RawMessage(data), nil
}

// GetFarm returns the farm's detail file decoded.
func (p *FileProvider) GetFarm(farmID string) (models.FarmDetail, error) {
	raw, err := p.GetFarmRaw(farmID)
	if err != nil {
		return models.FarmDetail{}, err
	}
	var detail models.FarmDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return models.FarmDetail{}, fmt.Errorf("decode farm %s: %w", farmID, err)
	}
	return detail, nil
}

// GetSpatial returns the farm's NDVI vigor GeoJSON verbatim.
func (p *FileProvider) GetSpatial(farmID string) (json.RawMessage, error) {
	if !ValidID(farmID) {
		return nil, ErrInvalidID
	}
	data, err := p.read(filepath.Join("spatial", farmID+"_spatial.json"))
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("spatial %s: malformed JSON", farmID)
	}
	return json.RawMessage(data), nil
}

// GetSeries parses series/<farmID>_<kind>.csv.
func (p *FileProvider) GetSeries(farmID, kind string) (models.Series, error) {
	if !ValidID(farmID) || !ValidID(kind) {
		return models.Series{}, ErrInvalidID
	}
	f, err := os.Open(filepath.Join(p.dir, "series", farmID+"_"+kind+".csv"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Series{}, ErrNotFound
		}
		return models.Series{}, err
	}
	defer f.Close()

	series, err := ParseSeriesCSV(f)
	if err != nil {
		return models.Series{}, fmt.Errorf("series %s/%s: %w", farmID, kind, err)
	}
	return series, nil
}

func (p *FileProvider) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}
