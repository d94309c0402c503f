package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FarmSummary is one entry of the farm catalog (farms.json).
type FarmSummary struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	GeoJSON json.RawMessage `json:"geojson,omitempty"` // Boundary, passed through untouched
}

// Reading is a display value that the data files store either as a JSON
// string ("0.72", "12 mm") or as a bare number.
type Reading string

// UnmarshalJSON accepts strings, numbers and null.
func (r *Reading) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Reading(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = Reading(n.String())
	return nil
}

// Float returns the numeric value of the reading, if it has one.
func (r Reading) Float() (float64, bool) {
	f, err := strconv.ParseFloat(string(r), 64)
	return f, err == nil
}

// Series is a labelled set of numeric datasets, e.g. NDVI and NDMI by date.
type Series struct {
	Labels   []string             `json:"labels"`
	Datasets map[string][]float64 `json:"datasets"`
}

// Empty reports whether the series has no points.
func (s Series) Empty() bool {
	return len(s.Labels) == 0
}

// WeatherForecast is a single day of the forecast strip.
type WeatherForecast struct {
	Date string  `json:"date"`
	Icon string  `json:"icon"`
	Temp Reading `json:"temp"`
	Desc string  `json:"desc"`
}

// IrrigationStatus holds the irrigation decision support and solar pump state.
type IrrigationStatus struct {
	IrrigationNeeds   string  `json:"irrigationNeeds"`
	RecommendedAction string  `json:"recommendedAction"`
	SolarPanelStatus  string  `json:"solarPanelStatus"`
	BatteryLevel      Reading `json:"batteryLevel"`
	PumpStatus        string  `json:"pumpStatus"`
	WaterFlow         Reading `json:"waterFlow"`
}

// YieldEstimate holds crop quality and quantity estimates.
type YieldEstimate struct {
	CropType string `json:"cropType"`
	Quality  struct {
		GrainFillingRate Reading `json:"grainFillingRate"`
		MillingRendement Reading `json:"millingRendement"`
	} `json:"quality"`
	Quantity struct {
		Tillers Reading `json:"tillers"`
		Yield   Reading `json:"yield"`
	} `json:"quantity"`
}

// FarmTask is a pending field operation.
type FarmTask struct {
	Name     string  `json:"name"`
	Operator string  `json:"operator"`
	Cost     Reading `json:"cost"`
}

// FarmAlert is an active alert; Type is e.g. "warning" or "danger".
type FarmAlert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ScoutingReport is a dated field observation.
type ScoutingReport struct {
	Date   string `json:"date"`
	Report string `json:"report"`
}

// FarmDetail is the per-farm data file (<farmId>.json).
type FarmDetail struct {
	LastUpdate        string            `json:"lastUpdate"`
	WeatherForecast   []WeatherForecast `json:"weatherForecast"`
	CurrentNDVI       Reading           `json:"currentNdvi"`
	CurrentNDMI       Reading           `json:"currentNdmi"`
	CurrentEVI        Reading           `json:"currentEvi"`
	IndicesData       Series            `json:"indicesData"`
	WaterStressStatus string            `json:"waterStressStatus"`
	SoilPH            Reading           `json:"soilPh"`
	Last24hRain       Reading           `json:"last24hRain"`
	SoilData          Series            `json:"soilData"`
	Irrigation        IrrigationStatus  `json:"irrigation"`
	Yield             YieldEstimate     `json:"yield"`
	Tasks             []FarmTask        `json:"tasks"`
	Alerts            []FarmAlert       `json:"alerts"`
	Scouting          []ScoutingReport  `json:"scouting"`
}
