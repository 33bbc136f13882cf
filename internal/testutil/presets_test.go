package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stobind/internal/keybind"
)

func TestSampleKeybindFile_ParsesClean(t *testing.T) {
	result := keybind.ParseFile(SampleKeybindFile)

	require.Empty(t, result.Errors)
	assert.Len(t, result.Bindings, 5)
	assert.Len(t, result.Comments, 1)
	assert.Contains(t, result.Bindings, "G", "/bind directive key")
}

func TestSampleAliasFile_ParsesClean(t *testing.T) {
	result := keybind.ParseFile(SampleAliasFile)

	require.Empty(t, result.Errors)
	assert.Len(t, result.Aliases, 2)
	assert.Contains(t, result.Aliases, "heal_self")
}
