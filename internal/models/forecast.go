package models

import "time"

// ForecastMetric selects which portfolio series a forecast is built over.
type ForecastMetric string

const (
	MetricRent      ForecastMetric = "RENT"
	MetricValue     ForecastMetric = "VALUE"
	MetricOccupancy ForecastMetric = "OCCUPANCY"
	MetricEsg       ForecastMetric = "ESG"
)

// Timeframe is the bucket cadence for trend and forecast series.
type Timeframe string

const (
	Monthly   Timeframe = "MONTHLY"
	Quarterly Timeframe = "QUARTERLY"
	Yearly    Timeframe = "YEARLY"
)

// TrendDirection is the sign of the fitted slope.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "INCREASING"
	TrendDecreasing TrendDirection = "DECREASING"
	TrendStable     TrendDirection = "STABLE"
)

// ForecastPoint is a single dated value, historical or projected.
type ForecastPoint struct {
	Date     time.Time `json:"date"`
	Label    string    `json:"label"`
	Value    float64   `json:"value"`
	IsActual bool      `json:"is_actual"`
}

// ConfidenceInterval bounds one forecasted point at a stated confidence level.
type ConfidenceInterval struct {
	Date            time.Time `json:"date"`
	LowerBound      float64   `json:"lower_bound"`
	UpperBound      float64   `json:"upper_bound"`
	ConfidenceLevel float64   `json:"confidence_level"`
}

// ForecastResult is the full output of one forecast request.
type ForecastResult struct {
	Metric    ForecastMetric `json:"metric"`
	Timeframe Timeframe      `json:"timeframe"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`

	HistoricalData      []ForecastPoint      `json:"historical_data"`
	ForecastedData      []ForecastPoint      `json:"forecasted_data"`
	ConfidenceIntervals []ConfidenceInterval `json:"confidence_intervals"`

	ForecastModel  string         `json:"forecast_model"`
	Accuracy       float64        `json:"accuracy"`
	TrendDirection TrendDirection `json:"trend_direction"`
	TrendStrength  float64        `json:"trend_strength"`
	Seasonality    string         `json:"seasonality"`
}
