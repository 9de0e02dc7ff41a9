package domain

// MealType is a recommendation category.
type MealType string

const (
	MealBreakfast       MealType = "BREAKFAST"
	MealLunch           MealType = "LUNCH"
	MealDinner          MealType = "DINNER"
	MealDiseaseSpecific MealType = "DISEASE_SPECIFIC"
)

// MealTypes lists every category in display order.
func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner, MealDiseaseSpecific}
}

// RecommendationSet maps each meal category to its recommended recipes.
type RecommendationSet map[MealType][]Recipe

// EmptyRecommendationSet returns a set with every category present and
// empty, the shape the carousel expects before the first load.
func EmptyRecommendationSet() RecommendationSet {
	set := make(RecommendationSet, 4)
	for _, mt := range MealTypes() {
		set[mt] = []Recipe{}
	}
	return set
}

// MealSelection is one entry in the selected-meals submission.
type MealSelection struct {
	RecipeID int    `json:"recipeId"`
	MealType string `json:"mealType"`
}

// Selections flattens the set into the submission payload, in category
// display order.
func (s RecommendationSet) Selections() []MealSelection {
	var out []MealSelection
	for _, mt := range MealTypes() {
		for _, recipe := range s[mt] {
			out = append(out, MealSelection{RecipeID: recipe.ID, MealType: string(mt)})
		}
	}
	return out
}
