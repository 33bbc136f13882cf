package keybind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCommandType(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"+STOTrayExecByTray 0 0", "tray"},
		{"stotrayexecbytray 1 2", "tray"},
		{`say "hello"`, "communication"},
		{`team "inc spheres"`, "communication"},
		{"target_nearest_enemy", "targeting"},
		{"+power_exec Distribute_Shields", "power"},
		{"GenSendMessage HUD_Root FireAll", "power"},
		{"FireAll", "combat"},
		{"+forward", "movement"},
		{"SomethingUnknown", "custom"},
		{"", "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCommandType(tt.command))
		})
	}
}

func TestCommandDisplayText(t *testing.T) {
	// Tray indices display 1-indexed.
	entry := NewCommandEntry("+STOTrayExecByTray 0 3")
	assert.Equal(t, "Execute Tray 1 Slot 4", entry.Text)

	msg := NewCommandEntry(`say "Set phasers to fun"`)
	assert.Equal(t, "Set phasers to fun", msg.Text)

	raw := NewCommandEntry("SomeUnknownCommand arg")
	assert.Equal(t, "SomeUnknownCommand arg", raw.Text)
}

func TestNewCommandEntry_UnknownDegradesGracefully(t *testing.T) {
	entry := NewCommandEntry("TotallyCustom 1 2 3")
	assert.Equal(t, "custom", entry.Type)
	assert.NotEmpty(t, entry.Icon)
	assert.Equal(t, "TotallyCustom 1 2 3", entry.Text)
	assert.Nil(t, entry.Parameters)
}
