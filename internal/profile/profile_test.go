package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stobind/internal/keybind"
)

func TestNew(t *testing.T) {
	p := New("Alpha")

	assert.NotEmpty(t, p.GUID)
	assert.Equal(t, "Alpha", p.Name)
	assert.NotNil(t, p.Bindings(EnvSpace))
	assert.NotNil(t, p.Bindings(EnvGround))
	assert.Empty(t, p.Aliases)
}

func TestSetStabilization(t *testing.T) {
	p := New("Alpha")
	p.Bindings(EnvSpace)["F1"] = keybind.Binding{Key: "F1", Commands: []keybind.CommandEntry{
		keybind.NewCommandEntry("A"), keybind.NewCommandEntry("B"),
	}}
	p.Bindings(EnvSpace)["F2"] = keybind.Binding{Key: "F2", Commands: []keybind.CommandEntry{
		keybind.NewCommandEntry("Solo"),
	}}

	require.NoError(t, p.SetStabilization(EnvSpace, "F1", true))
	assert.True(t, p.StabilizationFlags(EnvSpace)["F1"])

	// A single-command binding can never be stabilized.
	err := p.SetStabilization(EnvSpace, "F2", true)
	assert.Error(t, err)

	// Unknown keys are rejected.
	err = p.SetStabilization(EnvSpace, "F9", true)
	assert.Error(t, err)

	// Clearing is always allowed for bound keys.
	require.NoError(t, p.SetStabilization(EnvSpace, "F1", false))
	assert.Empty(t, p.StabilizationFlags(EnvSpace))
}

func TestValidEnvironment(t *testing.T) {
	assert.True(t, ValidEnvironment(EnvSpace))
	assert.True(t, ValidEnvironment(EnvGround))
	assert.False(t, ValidEnvironment(Environment("orbit")))
}
