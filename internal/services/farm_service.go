package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/isdelr/agrasia-be/internal/farmdata"
	"github.com/isdelr/agrasia-be/internal/models"
)

// FarmServiceProvider defines the interface for farm data services.
type FarmServiceProvider interface {
	ListFarms() ([]models.FarmSummary, error)
	GetFarm(farmID string) (json.RawMessage, error)
	GetDashboard(farmID string) (models.Dashboard, error)
	GetSpatial(farmID string) (json.RawMessage, error)
	GetSeries(farmID, kind string) (models.Series, error)
	Legend() []models.LegendBand
}

type lineStyle struct {
	key   string
	label string
	color string
}

var (
	indicesLines = []lineStyle{
		{key: "ndvi", label: "NDVI", color: "#16a34a"},
		{key: "ndmi", label: "NDMI", color: "#2563eb"},
	}
	soilLines = []lineStyle{
		{key: "moisture", label: "Soil Moisture (%)", color: "#f97316"},
	}
)

// FarmService serves read-only farm data and builds dashboard view models.
type FarmService struct {
	provider farmdata.Provider
	catalog  *farmdata.Catalog
}

// NewFarmService creates a new FarmService.
func NewFarmService(provider farmdata.Provider, catalog *farmdata.Catalog) *FarmService {
	return &FarmService{provider: provider, catalog: catalog}
}

// ListFarms returns the cached farm catalog.
func (s *FarmService) ListFarms() ([]models.FarmSummary, error) {
	return s.catalog.Farms()
}

// GetFarm returns the farm's detail document verbatim.
func (s *FarmService) GetFarm(farmID string) (json.RawMessage, error) {
	return s.provider.GetFarmRaw(farmID)
}

// GetSpatial returns the farm's NDVI GeoJSON verbatim.
func (s *FarmService) GetSpatial(farmID string) (json.RawMessage, error) {
	return s.provider.GetSpatial(farmID)
}

// GetSeries returns one CSV time series for the farm.
func (s *FarmService) GetSeries(farmID, kind string) (models.Series, error) {
	return s.provider.GetSeries(farmID, kind)
}

// Legend returns the NDVI vigor legend.
func (s *FarmService) Legend() []models.LegendBand {
	return farmdata.Legend()
}

// GetDashboard assembles every card for the farm. CSV series, when present,
// take precedence over the series embedded in the detail file.
func (s *FarmService) GetDashboard(farmID string) (models.Dashboard, error) {
	detail, err := s.provider.GetFarm(farmID)
	if err != nil {
		return models.Dashboard{}, err
	}

	indices, err := s.chart(farmID, "indices", detail.IndicesData, indicesLines)
	if err != nil {
		return models.Dashboard{}, err
	}
	soil, err := s.chart(farmID, "soil", detail.SoilData, soilLines)
	if err != nil {
		return models.Dashboard{}, err
	}

	alerts := make([]models.AlertItem, 0, len(detail.Alerts))
	for _, a := range detail.Alerts {
		alerts = append(alerts, models.AlertItem{FarmAlert: a, Class: "alert-" + a.Type})
	}

	return models.Dashboard{
		FarmID: farmID,
		Weather: models.WeatherCard{
			LastUpdate: detail.LastUpdate,
			Forecast:   nonNil(detail.WeatherForecast),
		},
		Indices: models.IndicesCard{
			NDVI:      detail.CurrentNDVI,
			NDVIColor: ndviColor(detail.CurrentNDVI),
			NDMI:      detail.CurrentNDMI,
			EVI:       detail.CurrentEVI,
			Chart:     indices,
		},
		SoilWater: models.SoilWaterCard{
			WaterStress: detail.WaterStressStatus,
			SoilPH:      detail.SoilPH,
			Last24hRain: detail.Last24hRain,
			Chart:       soil,
		},
		Irrigation: models.IrrigationCard{Title: "Irrigation & DSS", Status: detail.Irrigation},
		Yield:      models.YieldCard{Title: "Yield & Quality Est.", Estimate: detail.Yield},
		Tasks:      listCard(detail.Tasks, "No pending tasks."),
		Alerts:     listCard(alerts, "No active alerts."),
		Scouting:   listCard(detail.Scouting, "No recent reports."),
	}, nil
}

func (s *FarmService) chart(farmID, kind string, embedded models.Series, styles []lineStyle) (models.Chart, error) {
	series, err := s.provider.GetSeries(farmID, kind)
	source := "csv"
	switch {
	case errors.Is(err, farmdata.ErrNotFound):
		series, source = embedded, "embedded"
	case err != nil:
		return models.Chart{}, fmt.Errorf("load %s series: %w", kind, err)
	case series.Empty():
		// A header-only export has no points yet.
		series, source = embedded, "embedded"
	}

	chart := models.Chart{
		Source: source,
		Labels: nonNil(series.Labels),
		Lines:  []models.ChartLine{},
	}
	for _, st := range styles {
		data, ok := series.Datasets[st.key]
		if !ok {
			continue
		}
		chart.Lines = append(chart.Lines, models.ChartLine{Label: st.label, Data: data, BorderColor: st.color})
	}
	return chart, nil
}

// ndviColor classifies the current NDVI reading; blank when it is not numeric.
func ndviColor(r models.Reading) string {
	v, ok := r.Float()
	if !ok {
		return ""
	}
	return farmdata.Color(v)
}

func listCard[T any](items []T, emptyText string) models.ListCard[T] {
	if len(items) == 0 {
		return models.ListCard[T]{Items: []T{}, EmptyText: emptyText}
	}
	return models.ListCard[T]{Items: items}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
