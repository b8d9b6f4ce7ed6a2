package domain

import (
	"strings"
	"time"
)

// StationID identifies a sensor station across both feeds. Feed payloads are
// joined on this type, never on raw strings — see NormalizeStationID.
type StationID string

// NormalizeStationID canonicalizes a feed-supplied station identifier so the
// same station matches across both feeds regardless of casing or padding.
func NormalizeStationID(raw string) StationID {
	return StationID(strings.ToUpper(strings.TrimSpace(raw)))
}

// StationReading is one sensor's instantaneous reading of a single
// measurement kind. Immutable once constructed; discarded each cycle.
type StationReading struct {
	StationID  StationID
	Value      float64
	MeasuredAt time.Time
}

// PairedSample is a (temperature, humidity) pair for one station whose two
// readings passed the skew, staleness, and physical-range checks.
// Temperature is °C, Humidity is percent in [0,100].
type PairedSample struct {
	StationID   StationID
	Temperature float64
	Humidity    float64
	MeasuredAt  time.Time
}

// StationEstimate is the derived wet-bulb temperature for one paired sample.
type StationEstimate struct {
	StationID StationID
	WetBulb   float64
}

// AreaMeans holds the unweighted arithmetic means across all valid stations.
// Every station counts equally; there is no geographic weighting.
type AreaMeans struct {
	MeanTemperature float64
	MeanHumidity    float64
	MeanWetBulb     float64
	StationCount    int
}

// AreaSnapshot is the single externally visible artifact of a refresh cycle.
// It is immutable and replaced wholesale — readers never observe a partial
// update.
type AreaSnapshot struct {
	Timestamp       time.Time `json:"timestamp"`
	MeanTemperature float64   `json:"mean_temperature"`
	MeanHumidity    float64   `json:"mean_humidity"`
	MeanWetBulb     float64   `json:"mean_wet_bulb"`
	Advisory        Advisory  `json:"advisory"`
	StationCount    int       `json:"station_count"`
}
