package domain

// Preference is the user's like/dislike verdict on a recipe.
type Preference string

const (
	PreferenceLike    Preference = "LIKE"
	PreferenceDislike Preference = "DISLIKE"
	// PreferenceRemove is only ever sent over the wire; locally a removed
	// preference is a nil pointer.
	PreferenceRemove Preference = "REMOVE"
)

// Recipe as served by the recipe endpoints. Preference is the only
// client-mutable field; everything else is a server snapshot.
type Recipe struct {
	ID                 int                `json:"id"`
	Name               string             `json:"name"`
	Ingredients        map[string]float64 `json:"ingredients"`
	Directions         string             `json:"directions"`
	Category           string             `json:"category"`
	IngredientType     string             `json:"ingredientType"`
	FoodType           string             `json:"foodType"`
	CaloriesPerServing float64            `json:"caloriesPerServing"`
	Carbohydrates      float64            `json:"carbohydrates"`
	Proteins           float64            `json:"proteins"`
	Fats               float64            `json:"fats"`
	Picture            string             `json:"picture"`
	Disease            string             `json:"disease"`
	Preference         *Preference        `json:"preference,omitempty"`
}

// ScaledIngredients returns the ingredient quantities multiplied for the
// given serving count. Servings below one clamp to one.
func (r Recipe) ScaledIngredients(servings int) map[string]float64 {
	if servings < 1 {
		servings = 1
	}
	scaled := make(map[string]float64, len(r.Ingredients))
	for name, quantity := range r.Ingredients {
		scaled[name] = quantity * float64(servings)
	}
	return scaled
}

// Nutrition is the per-serving macro summary scaled for display.
type Nutrition struct {
	Calories      float64
	Carbohydrates float64
	Proteins      float64
	Fats          float64
}

// ScaledNutrition returns the nutrition facts multiplied for the given
// serving count. Servings below one clamp to one.
func (r Recipe) ScaledNutrition(servings int) Nutrition {
	if servings < 1 {
		servings = 1
	}
	f := float64(servings)
	return Nutrition{
		Calories:      r.CaloriesPerServing * f,
		Carbohydrates: r.Carbohydrates * f,
		Proteins:      r.Proteins * f,
		Fats:          r.Fats * f,
	}
}

// RecipeFilters narrows the paginated recipe list. The zero value means no
// filtering.
type RecipeFilters struct {
	Category       string
	IngredientType string
	Disease        string
}
