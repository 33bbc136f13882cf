package keybind

import (
	"fmt"
	"strings"
)

// Command metadata enrichment. Classification is best-effort cosmetic
// data for display; an unrecognized command degrades to the "custom"
// type with its raw text and never fails a parse.

var commandTypePrefixes = []struct {
	prefix string
	typ    string
}{
	{"+stotrayexecbytray", "tray"},
	{"stotrayexecbytray", "tray"},
	{"+trayexecbytray", "tray"},
	{"say", "communication"},
	{"team", "communication"},
	{"zone", "communication"},
	{"tell", "communication"},
	{"target", "targeting"},
	{"+power_exec", "power"},
	{"gensendmessage", "power"},
	{"fire", "combat"},
	{"+attack", "combat"},
	{"throttle", "movement"},
	{"+up", "movement"},
	{"+down", "movement"},
	{"+left", "movement"},
	{"+right", "movement"},
	{"+forward", "movement"},
	{"+backward", "movement"},
}

var commandTypeIcons = map[string]string{
	"tray":          "⚡",
	"communication": "💬",
	"targeting":     "🎯",
	"power":         "🔋",
	"combat":        "🔥",
	"movement":      "🚀",
	"custom":        "⚙",
}

// DetectCommandType classifies a raw command token by prefix,
// case-insensitively. Unknown commands are "custom".
func DetectCommandType(commandText string) string {
	lower := strings.ToLower(strings.TrimSpace(commandText))
	for _, p := range commandTypePrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.typ
		}
	}
	return "custom"
}

// CommandIcon returns the display glyph for a command type.
func CommandIcon(commandType string) string {
	if icon, ok := commandTypeIcons[commandType]; ok {
		return icon
	}
	return commandTypeIcons["custom"]
}

// CommandDisplayText renders a short human-readable label for a command.
// Tray indices are displayed 1-indexed even though the file stores them
// 0-indexed.
func CommandDisplayText(commandText string, params map[string]any) string {
	if params != nil {
		if tray, ok := params["tray"].(int); ok {
			if slot, ok := params["slot"].(int); ok {
				return fmt.Sprintf("Execute Tray %d Slot %d", tray+1, slot+1)
			}
		}
		if msg, ok := params["message"].(string); ok {
			return msg
		}
	}
	return commandText
}

// NewCommandEntry builds a fully enriched CommandEntry from a raw
// command token.
func NewCommandEntry(commandText string) CommandEntry {
	params := ParseParameters(commandText)
	typ := DetectCommandType(commandText)
	return CommandEntry{
		Command:    commandText,
		Type:       typ,
		Icon:       CommandIcon(typ),
		Text:       CommandDisplayText(commandText, params),
		Parameters: params,
	}
}
