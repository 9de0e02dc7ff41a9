package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanding(t *testing.T) {
	tests := []struct {
		name             string
		hasFamily        bool
		hasHealthProfile bool
		want             Route
	}{
		{"no family", false, false, RouteFamilySelection},
		{"no family even with profile", false, true, RouteFamilySelection},
		{"family without profile", true, false, RouteGenderScreen},
		{"fully onboarded", true, true, RouteHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLanding(tt.hasFamily, tt.hasHealthProfile))
		})
	}
}
