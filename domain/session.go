// Package domain defines the entities exchanged with the GrociDish API and
// the client-side validation rules applied before any network call.
package domain

// Role describes what a family member is allowed to do.
type Role struct {
	IsRecipeSelector   bool `json:"is_recipe_selector"`
	IsGroceryGenerator bool `json:"is_grocery_generator"`
	IsOwner            bool `json:"is_owner"`
}

// User is the server's user object. The client treats it as opaque apart
// from the identifying fields.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Credentials is the login input.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the signup input. The password rule matches the mobile
// app: at least 8 characters with lower, upper, digit, and symbol.
type Registration struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
}

// Verification carries the emailed signup code back to the server.
type Verification struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// PasswordUpdate changes the password of the logged-in user.
type PasswordUpdate struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strongpassword"`
}
