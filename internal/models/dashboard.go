package models

// Dashboard is the card-by-card view model for a selected farm.
type Dashboard struct {
	FarmID     string                   `json:"farmId"`
	Weather    WeatherCard              `json:"weather"`
	Indices    IndicesCard              `json:"indices"`
	SoilWater  SoilWaterCard            `json:"soilWater"`
	Irrigation IrrigationCard           `json:"irrigation"`
	Yield      YieldCard                `json:"yield"`
	Tasks      ListCard[FarmTask]       `json:"tasks"`
	Alerts     ListCard[AlertItem]      `json:"alerts"`
	Scouting   ListCard[ScoutingReport] `json:"scouting"`
}

type WeatherCard struct {
	LastUpdate string            `json:"lastUpdate"`
	Forecast   []WeatherForecast `json:"forecast"`
}

type IndicesCard struct {
	NDVI      Reading `json:"ndvi"`
	NDVIColor string  `json:"ndviColor,omitempty"`
	NDMI      Reading `json:"ndmi"`
	EVI       Reading `json:"evi"`
	Chart     Chart   `json:"chart"`
}

type SoilWaterCard struct {
	WaterStress string  `json:"waterStress"`
	SoilPH      Reading `json:"soilPh"`
	Last24hRain Reading `json:"last24hRain"`
	Chart       Chart   `json:"chart"`
}

type IrrigationCard struct {
	Title  string           `json:"title"`
	Status IrrigationStatus `json:"status"`
}

type YieldCard struct {
	Title    string        `json:"title"`
	Estimate YieldEstimate `json:"estimate"`
}

// Chart is a line chart: shared labels plus one styled line per dataset.
type Chart struct {
	Source string      `json:"source"` // "csv" or "embedded"
	Labels []string    `json:"labels"`
	Lines  []ChartLine `json:"lines"`
}

type ChartLine struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderColor string    `json:"borderColor"`
}

// ListCard carries a list and the placeholder shown when it is empty.
type ListCard[T any] struct {
	Items     []T    `json:"items"`
	EmptyText string `json:"emptyText,omitempty"`
}

// AlertItem is a FarmAlert with its display class.
type AlertItem struct {
	FarmAlert
	Class string `json:"class"`
}

// LegendBand is one colour band of the NDVI vigor legend.
type LegendBand struct {
	From  float64  `json:"from"`
	To    *float64 `json:"to,omitempty"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}
