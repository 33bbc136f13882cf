package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/profile"
)

// ProfileBuilder accumulates bindings, aliases and flags for a test
// profile and assembles them with a fluent API.
type ProfileBuilder struct {
	t    *testing.T
	prof *profile.Profile
	env  profile.Environment
}

// NewProfile creates a builder for a fresh profile. Bindings are added
// to the space environment until InEnvironment changes the target.
func NewProfile(t *testing.T, name string) *ProfileBuilder {
	t.Helper()
	return &ProfileBuilder{
		t:    t,
		prof: profile.New(name),
		env:  profile.EnvSpace,
	}
}

// InEnvironment switches the environment subsequent bindings go to.
func (b *ProfileBuilder) InEnvironment(env profile.Environment) *ProfileBuilder {
	b.env = env
	return b
}

// WithBinding adds a binding for key with the given command chain.
func (b *ProfileBuilder) WithBinding(key string, commands ...string) *ProfileBuilder {
	entries := make([]keybind.CommandEntry, 0, len(commands))
	for _, cmd := range commands {
		entries = append(entries, keybind.NewCommandEntry(cmd))
	}
	b.prof.Bindings(b.env)[key] = keybind.Binding{Key: key, Commands: entries}
	return b
}

// WithStabilized adds a multi-command binding and flags it for
// execution-order stabilization.
func (b *ProfileBuilder) WithStabilized(key string, commands ...string) *ProfileBuilder {
	b.t.Helper()
	b.WithBinding(key, commands...)
	require.NoError(b.t, b.prof.SetStabilization(b.env, key, true))
	return b
}

// WithAlias adds a named alias with the given command chain.
func (b *ProfileBuilder) WithAlias(name string, commands ...string) *ProfileBuilder {
	b.prof.Aliases[name] = keybind.Alias{Name: name, Commands: keybind.JoinCommandChain(commands)}
	return b
}

// Build returns the assembled profile.
func (b *ProfileBuilder) Build() *profile.Profile {
	return b.prof
}

// BuildAndSave assembles the profile and persists it to repo.
func (b *ProfileBuilder) BuildAndSave(repo profile.Repository) *profile.Profile {
	b.t.Helper()
	require.NoError(b.t, repo.Save(b.prof))
	return b.prof
}
