package keybind

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportBindings_Format(t *testing.T) {
	bindings := map[string]Binding{
		"F1":    bindingOf("F1", "FireAll"),
		"Space": bindingOf("Space", "GenSendMessage HUD_Root FireAll", "+power_exec Distribute_Shields"),
	}
	aliases := map[string]Alias{
		"AttackRun": {Name: "AttackRun", Commands: "FireAll $$ FirePhasers"},
	}

	out := ExportBindings(bindings, nil, aliases, []string{"Profile: Alpha", "Environment: space"})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "# Profile: Alpha", lines[0])
	assert.Equal(t, "# Environment: space", lines[1])
	assert.Contains(t, out, "alias AttackRun \"FireAll $$ FirePhasers\"\n")
	assert.Contains(t, out, "F1 \"FireAll\" \"\"\n")
	assert.Contains(t, out, "Space \"GenSendMessage HUD_Root FireAll $$ +power_exec Distribute_Shields\" \"\"\n")

	// Space sorts before F1 in the canonical order.
	spaceIdx := strings.Index(out, "\nSpace ")
	f1Idx := strings.Index(out, "\nF1 ")
	assert.Less(t, spaceIdx, f1Idx)
	// Aliases come before the keybind block.
	assert.Less(t, strings.Index(out, "alias "), spaceIdx)
}

func TestExportBindings_EmptyBindingStillEmitted(t *testing.T) {
	bindings := map[string]Binding{"F7": {Key: "F7"}}

	out := ExportBindings(bindings, nil, nil, nil)

	assert.Equal(t, "F7 \"\" \"\"\n", out)
}

func TestExportBindings_StabilizationGating(t *testing.T) {
	tests := []struct {
		name     string
		binding  Binding
		flag     bool
		wantLine string
	}{
		{
			"flag set with multiple commands mirrors",
			bindingOf("F1", "A", "B", "C"),
			true,
			"F1 \"A $$ B $$ C $$ B $$ A\" \"\"",
		},
		{
			"flag set with single command never mirrors",
			bindingOf("F1", "A"),
			true,
			"F1 \"A\" \"\"",
		},
		{
			"flag unset joins plainly",
			bindingOf("F1", "A", "B"),
			false,
			"F1 \"A $$ B\" \"\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := StabilizationFlags{"F1": tt.flag}
			out := ExportBindings(map[string]Binding{"F1": tt.binding}, flags, nil, nil)
			assert.Equal(t, tt.wantLine+"\n", out)
		})
	}
}

// Exported text must parse back to the same bindings, and stabilized
// chains must unmirror to the original in-memory command list.
func TestExportBindings_RoundTripThroughParser(t *testing.T) {
	bindings := map[string]Binding{
		"F1":     bindingOf("F1", "FireAll"),
		"F2":     bindingOf("F2", "A", "B", "C"),
		"Ctrl+X": bindingOf("Ctrl+X", "target_nearest_enemy"),
	}
	flags := StabilizationFlags{"F2": true}

	out := ExportBindings(bindings, flags, nil, []string{"round trip"})
	parsed := ParseFile(out)

	require.Empty(t, parsed.Errors)
	require.Len(t, parsed.Bindings, len(bindings))

	for key, want := range bindings {
		got, ok := parsed.Bindings[key]
		require.True(t, ok, "missing %q after round trip", key)

		commands, mirrored := DetectAndUnmirror(got.Raw)
		assert.Equal(t, flags[key] && len(want.Commands) > 1, mirrored, "key %q", key)
		assert.Equal(t, commandsOf(want), commands, "key %q", key)
	}
}
