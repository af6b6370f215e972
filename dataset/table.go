package dataset

import "time"

// Column names expected in uploaded tables. These follow the Water Quality
// Portal export convention.
const (
	ColLatitude       = "LatitudeMeasure"
	ColLongitude      = "LongitudeMeasure"
	ColStationID      = "MonitoringLocationIdentifier"
	ColStationName    = "MonitoringLocationName"
	ColDate           = "ActivityStartDate"
	ColCharacteristic = "CharacteristicName"
	ColValue          = "ResultMeasureValue"
)

// StationRecord is one monitoring location with usable coordinates.
type StationRecord struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ResultRecord is one water-quality measurement event. Value and Date are
// nil when the raw cell was empty or failed coercion; such rows survive
// loading and are excluded by the filter step.
type ResultRecord struct {
	StationID      string     `json:"station_id"`
	Characteristic string     `json:"characteristic"`
	Value          *float64   `json:"value,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
}

// TrendPoint is one station's mean measurement for one calendar month.
type TrendPoint struct {
	StationID string    `json:"station_id"`
	Month     time.Time `json:"month"`
	Mean      float64   `json:"mean"`
}

// StationSeries groups a station's trend points into one plottable line.
type StationSeries struct {
	StationID string       `json:"station_id"`
	Points    []TrendPoint `json:"points"`
}

// MonthOf truncates a timestamp to the first of its calendar month in UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
