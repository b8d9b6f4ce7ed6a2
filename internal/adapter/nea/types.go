package nea

import "time"

// data.gov.sg realtime environment API response types. Both the
// air-temperature and relative-humidity endpoints share this envelope: station
// metadata, one or more timestamped items, and an API health indicator.

type envelope struct {
	Metadata metadata  `json:"metadata"`
	Items    []item    `json:"items"`
	APIInfo  apiHealth `json:"api_info"`
}

type metadata struct {
	Stations    []stationMeta `json:"stations"`
	ReadingType string        `json:"reading_type"`
	ReadingUnit string        `json:"reading_unit"`
}

type stationMeta struct {
	ID       string `json:"id"`
	DeviceID string `json:"device_id"`
	Name     string `json:"name"`
}

// item is one snapshot: a shared observation timestamp and a reading per
// station that reported in that interval.
type item struct {
	Timestamp time.Time `json:"timestamp"`
	Readings  []reading `json:"readings"`
}

type reading struct {
	StationID string  `json:"station_id"`
	Value     float64 `json:"value"`
}

type apiHealth struct {
	Status string `json:"status"`
}
