// Package navigation resolves the post-login landing route from the
// session's onboarding flags. The decision tree is fixed: no family means
// family selection, a family without a health profile means the profile
// collection flow, and a fully onboarded user lands home whatever their
// role is.
package navigation

// Route is a named screen destination.
type Route string

const (
	RouteFamilySelection Route = "FamilySelection"
	RouteGenderScreen    Route = "GenderScreen"
	RouteHome            Route = "Home"
)

// ResolveLanding returns the screen a fresh login should land on.
func ResolveLanding(hasFamily, hasHealthProfile bool) Route {
	if !hasFamily {
		return RouteFamilySelection
	}
	if !hasHealthProfile {
		return RouteGenderScreen
	}
	return RouteHome
}
