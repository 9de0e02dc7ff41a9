package domain

// CalorieStats is the read-only nutrition snapshot rendered by the tracking
// screen. Refreshed per visit; never mutated client-side.
type CalorieStats struct {
	CaloriesConsumedPerDay float64 `json:"calories_consumed_per_day"`
	RequiredCalories       float64 `json:"required_calories"`
	ConsumedFats           float64 `json:"consumed_fats"`
	RequiredFats           float64 `json:"required_fats"`
	ConsumedCarbs          float64 `json:"consumed_carbs"`
	RequiredCarbs          float64 `json:"required_carbs"`
	ConsumedProteins       float64 `json:"consumed_proteins"`
	RequiredProteins       float64 `json:"required_proteins"`
	BMI                    float64 `json:"bmi"`
}

// ProgressRatio returns consumed/required clamped to [0, 1], the fill level
// of a progress bar. A zero requirement reports zero progress.
func ProgressRatio(consumed, required float64) float64 {
	if required <= 0 {
		return 0
	}
	ratio := consumed / required
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// CalorieProgress returns the calorie bar fill level.
func (s CalorieStats) CalorieProgress() float64 {
	return ProgressRatio(s.CaloriesConsumedPerDay, s.RequiredCalories)
}

// BMIBand classifies a BMI value into the display band.
func BMIBand(bmi float64) string {
	switch {
	case bmi <= 0:
		return "UNKNOWN"
	case bmi < 18.5:
		return "UNDERWEIGHT"
	case bmi < 25:
		return "NORMAL"
	case bmi < 30:
		return "OVERWEIGHT"
	default:
		return "OBESE"
	}
}
