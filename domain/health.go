package domain

// Activity levels accepted by the health profile.
const (
	ActivitySedentary  = "SEDENTARY"
	ActivityLight      = "LIGHT"
	ActivityModerate   = "MODERATE"
	ActivityActive     = "ACTIVE"
	ActivityVeryActive = "VERY_ACTIVE"
)

// HealthProfile is the user's health questionnaire. Built up field by field
// by the collection flow, then submitted as one create or update call.
type HealthProfile struct {
	Gender        string   `json:"gender"`
	Age           int      `json:"age"`
	Weight        float64  `json:"weight"`
	Height        float64  `json:"height"`
	ActivityLevel string   `json:"activity_level"`
	Diseases      []string `json:"diseases"`
}

// ToggleDisease returns the disease list with name added, or removed when
// already present. The list never holds duplicates.
func ToggleDisease(diseases []string, name string) []string {
	for i, d := range diseases {
		if d == name {
			return append(append([]string{}, diseases[:i]...), diseases[i+1:]...)
		}
	}
	out := make([]string, 0, len(diseases)+1)
	out = append(out, diseases...)
	return append(out, name)
}
