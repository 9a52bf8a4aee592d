package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinator_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultRoute, c.Location())
	assert.Equal(t, DefaultRoute, c.PreviousLocation())
	assert.False(t, c.PromptVisible())
	assert.Equal(t, DefaultRoute, c.ResolveAfterLogin())
}

func TestCoordinator_ResolveAfterLogin(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "car detail with query", location: "/car-details/42?from=home", want: "/car-details/42?from=home"},
		{name: "owner page", location: "/owner/add-car", want: "/owner/add-car"},
		{name: "login route", location: LoginRoute, want: DefaultRoute},
		{name: "home", location: DefaultRoute, want: DefaultRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Navigate(tt.location)
			c.CaptureAndPrompt()
			assert.True(t, c.PromptVisible())
			assert.Equal(t, tt.location, c.PreviousLocation())

			assert.Equal(t, tt.want, c.ResolveAfterLogin())
			assert.Equal(t, DefaultRoute, c.PreviousLocation())
			assert.False(t, c.PromptVisible())
			assert.Equal(t, DefaultRoute, c.ResolveAfterLogin())
		})
	}
}

func TestCoordinator_NavigateAfterLogin(t *testing.T) {
	c := New()
	c.Navigate("/cars")
	c.CaptureAndPrompt()
	c.Navigate(LoginRoute)

	assert.Equal(t, "/cars", c.NavigateAfterLogin())
	assert.Equal(t, "/cars", c.Location())
	assert.Equal(t, DefaultRoute, c.PreviousLocation())
}

func TestCoordinator_NavigateEmptyMeansDefault(t *testing.T) {
	c := New()
	c.Navigate("/cars")
	c.Navigate("")
	assert.Equal(t, DefaultRoute, c.Location())
}

func TestCoordinator_DismissPromptKeepsMemory(t *testing.T) {
	c := New()
	c.Navigate("/my-bookings")
	c.CaptureAndPrompt()
	c.DismissPrompt()

	assert.False(t, c.PromptVisible())
	assert.Equal(t, "/my-bookings", c.PreviousLocation())
}
