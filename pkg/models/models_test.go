package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarrelTypeTitle(t *testing.T) {
	tests := []struct {
		barrelType BarrelType
		title      string
		valid      bool
	}{
		{BarrelTypeProject, "Project", true},
		{BarrelTypeStyleguide, "Styleguide", true},
		{BarrelType("board"), "Board", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.barrelType), func(t *testing.T) {
			assert.Equal(t, tt.title, tt.barrelType.Title())
			assert.Equal(t, tt.valid, tt.barrelType.Valid())
		})
	}
}

func TestAllComponentsOrder(t *testing.T) {
	details := BarrelDetails{
		Barrel:     Barrel{ID: "b1", Type: BarrelTypeStyleguide},
		Components: []Component{{ID: "loose"}},
		Sections: []ComponentSection{
			{
				ID:         "secA",
				Components: []Component{{ID: "a1"}},
				Sections: []ComponentSection{
					{ID: "secB", Components: []Component{{ID: "b1"}}},
				},
			},
		},
	}

	var ids []string
	for _, c := range details.AllComponents() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"b1", "a1", "loose"}, ids)
}

func TestJumpable(t *testing.T) {
	screen := ScreenJumpable(Screen{ID: "s1", Name: "Home"})
	assert.Equal(t, JumpableScreen, screen.Kind)
	assert.Equal(t, "s1", screen.ID())
	assert.Equal(t, "Home", screen.Name())
	assert.Nil(t, screen.Component)

	component := ComponentJumpable(Component{ID: "c1", Name: "Button", SectionIDs: []string{}})
	assert.Equal(t, JumpableComponent, component.Kind)
	assert.Equal(t, "c1", component.ID())
	assert.Equal(t, "Button", component.Name())
	assert.Nil(t, component.Screen)
	assert.Equal(t, "Component", component.Kind.String())
}

func TestParseApplicationType(t *testing.T) {
	app, err := ParseApplicationType("app")
	require.NoError(t, err)
	assert.Equal(t, ApplicationTypeApp, app)

	_, err = ParseApplicationType("desktop")
	assert.Error(t, err)
}
