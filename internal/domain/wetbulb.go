package domain

import "math"

// WetBulbStull computes wet-bulb temperature (°C) from dry-bulb temperature
// (°C) and relative humidity (%) using the Stull (2011) empirical fit:
//
//	Tw = T·atan(0.151977·√(RH + 8.313659))
//	   + atan(T + RH) − atan(RH − 1.676331)
//	   + 0.00391838·RH^1.5·atan(0.023101·RH)
//	   − 4.686035
//
// Valid at standard sea-level pressure for RH in roughly [5,99]%. Inputs
// outside the documented validity range still produce a numeric result;
// range validation belongs upstream in Reconcile.
//
// Reference: Stull, R. (2011), "Wet-Bulb Temperature from Relative Humidity
// and Air Temperature", J. Appl. Meteor. Climatol. 50, 2267–2269.
func WetBulbStull(tempC, rhPct float64) float64 {
	return tempC*math.Atan(0.151977*math.Sqrt(rhPct+8.313659)) +
		math.Atan(tempC+rhPct) -
		math.Atan(rhPct-1.676331) +
		0.00391838*math.Pow(rhPct, 1.5)*math.Atan(0.023101*rhPct) -
		4.686035
}

// EstimateWetBulb derives a StationEstimate from a paired sample.
func EstimateWetBulb(sample PairedSample) StationEstimate {
	return StationEstimate{
		StationID: sample.StationID,
		WetBulb:   WetBulbStull(sample.Temperature, sample.Humidity),
	}
}
