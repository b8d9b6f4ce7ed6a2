package domain

// AdvisoryTier is the discrete heat-risk category derived from the area-mean
// wet-bulb temperature.
type AdvisoryTier string

const (
	TierLow      AdvisoryTier = "low"
	TierModerate AdvisoryTier = "moderate"
	TierHigh     AdvisoryTier = "high"
	TierExtreme  AdvisoryTier = "extreme"
)

// Tier thresholds in °C wet-bulb. Each band is inclusive on its lower bound:
// a reading of exactly 28.0 classifies as high, not moderate.
const (
	ModerateThreshold = 25.0
	HighThreshold     = 28.0
	ExtremeThreshold  = 31.0
)

// Advisory pairs a tier with its fixed guidance text.
type Advisory struct {
	Tier     AdvisoryTier `json:"tier"`
	Guidance string       `json:"guidance"`
}

var guidance = map[AdvisoryTier]string{
	TierLow:      "Heat stress risk is low. Normal outdoor activity is fine.",
	TierModerate: "Moderate heat stress. Hydrate regularly and take breaks during prolonged outdoor activity.",
	TierHigh:     "High heat stress. Limit strenuous outdoor activity and rest in shade frequently.",
	TierExtreme:  "Extreme heat stress. Avoid outdoor exertion; evaporative cooling is largely ineffective.",
}

// Classify maps a wet-bulb temperature to an advisory. Total over all real
// inputs: values below the lowest threshold fall into the low band and values
// above the highest into the extreme band. Stateless; no memory between
// calls.
func Classify(wetBulb float64) Advisory {
	var tier AdvisoryTier
	switch {
	case wetBulb < ModerateThreshold:
		tier = TierLow
	case wetBulb < HighThreshold:
		tier = TierModerate
	case wetBulb < ExtremeThreshold:
		tier = TierHigh
	default:
		tier = TierExtreme
	}
	return Advisory{Tier: tier, Guidance: guidance[tier]}
}
