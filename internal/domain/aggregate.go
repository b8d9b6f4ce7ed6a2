package domain

// Aggregate reduces per-station estimates and their source samples to
// unweighted arithmetic means. Returns ErrInsufficientData when there are no
// stations — a zero-station aggregate must never reach the classifier as NaN.
func Aggregate(estimates []StationEstimate, samples []PairedSample) (AreaMeans, error) {
	if len(estimates) == 0 || len(samples) == 0 {
		return AreaMeans{}, ErrInsufficientData
	}

	var sumWetBulb float64
	for _, e := range estimates {
		sumWetBulb += e.WetBulb
	}

	var sumTemp, sumHumidity float64
	for _, s := range samples {
		sumTemp += s.Temperature
		sumHumidity += s.Humidity
	}

	return AreaMeans{
		MeanTemperature: sumTemp / float64(len(samples)),
		MeanHumidity:    sumHumidity / float64(len(samples)),
		MeanWetBulb:     sumWetBulb / float64(len(estimates)),
		StationCount:    len(estimates),
	}, nil
}
