package domain

// GroceryItem is one line in the generated grocery list.
type GroceryItem struct {
	Brand          string  `json:"Brand"`
	Quantity       string  `json:"Quantity"`
	EstimatedPrice float64 `json:"Estimated Price (PKR)"`
}

// GroceryList is the generated shopping list: items grouped by category,
// keyed by item name. Replaced wholesale on every generate or fetch.
type GroceryList struct {
	Budget      float64                           `json:"budget"`
	GroceryList map[string]map[string]GroceryItem `json:"grocery_list"`
}

// BudgetRequest is the grocery-generation input. The budget is in PKR.
type BudgetRequest struct {
	Budget float64 `json:"budget" validate:"required,gte=20000,lte=100000"`
}
