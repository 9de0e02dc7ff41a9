package domain

// FamilyMember is one member in the family-details snapshot.
type FamilyMember struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	IsOwner            bool   `json:"is_owner"`
	IsGroceryGenerator bool   `json:"is_grocery_generator"`
	IsRecipeSelector   bool   `json:"is_recipe_selector"`
}

// FamilyDetails is the read-only family snapshot. It is replaced wholesale
// from the server; the client never mutates individual members.
type FamilyDetails struct {
	MemberCount int            `json:"member_count"`
	IsComplete  bool           `json:"is_complete"`
	Members     []FamilyMember `json:"members"`
}

// JoinCode is the input for joining an existing family.
type JoinCode struct {
	Code string `json:"code" validate:"required"`
}

// RoleAssignment assigns one of the two assignable roles to a member by
// name. Ownership is not assignable; it belongs to the family creator.
type RoleAssignment struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=grocery_generator recipe_selector"`
}
