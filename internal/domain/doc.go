// Package domain models Singapore realtime weather-station data and the
// wet-bulb advisory derivation built on top of it.
//
// # Data Source
//
// Readings come from the data.gov.sg realtime environment API operated by the
// National Environment Agency (NEA):
//
//	GET /v1/environment/air-temperature     (°C, one-minute dry-bulb)
//	GET /v1/environment/relative-humidity   (%, one-minute relative humidity)
//
// Each endpoint returns a station-keyed snapshot: station metadata plus one
// "item" holding a shared observation timestamp and a reading per station.
// The two endpoints are independent feeds backed by partially overlapping
// station networks — a station may report temperature but not humidity and
// vice versa, and the two feeds refresh on their own cadences. Partial
// coverage is expected and normal.
//
// # Reconciliation
//
// Wet-bulb temperature needs a (temperature, humidity) pair measured at the
// same place and roughly the same time. [Reconcile] joins the two feeds on a
// normalized station identifier, keeping only stations present in both, whose
// reading timestamps agree within a skew tolerance, whose readings are fresh,
// and whose values sit inside plausible physical ranges for Singapore
// (−10°C to 60°C, 0–100% RH). Everything else is dropped and counted, never
// errored: losing a station degrades coverage, not correctness.
//
// # Wet-Bulb Derivation
//
// [WetBulbStull] implements the Stull (2011) empirical fit of wet-bulb
// temperature from dry-bulb temperature and relative humidity, valid at
// standard sea-level pressure for RH between roughly 5% and 99%. Singapore
// conditions sit comfortably inside that envelope. Accuracy against Stull's
// reference tables is within about ±0.3°C over the valid range.
//
// # Advisory Tiers
//
// The area-mean wet-bulb temperature maps onto four contiguous heat-stress
// bands (low, moderate, high, extreme) with inclusive lower bounds. The
// thresholds follow common occupational heat-stress guidance: sustained
// wet-bulb readings above 31°C make evaporative cooling largely ineffective.
// [Classify] is total — any real input lands in exactly one band.
package domain
