package keybind

import (
	"regexp"
	"strconv"
	"strings"
)

// ChainSeparator joins commands inside one binding's command string.
const ChainSeparator = "$$"

var (
	trayExecRe      = regexp.MustCompile(`(?i)^\+?STOTrayExecByTray\s+(\d+)\s+(\d+)$`)
	quotedMessageRe = regexp.MustCompile(`^(\S+)\s+"([^"]*)"$`)
)

// SplitCommandChain splits a command string on the `$$` separator and
// trims each token. Empty tokens are preserved as empty strings; an empty
// command is a valid placeholder in this format. A blank chain yields an
// empty slice.
func SplitCommandChain(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	parts := strings.Split(text, ChainSeparator)
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = strings.TrimSpace(p)
	}
	return tokens
}

// JoinCommandChain is the inverse of SplitCommandChain:
// Split(Join(tokens)) == tokens for any trim-normalized token list.
func JoinCommandChain(tokens []string) string {
	return strings.Join(tokens, " "+ChainSeparator+" ")
}

// ParseParameters extracts structured parameters from a single command
// token. It recognizes the tray-execution form `+STOTrayExecByTray <tray>
// <slot>` (integers, stored 0-indexed as written in the file) and the
// quoted single-argument form `verb "message"`. A nil result means no
// known pattern matched, which is not an error.
func ParseParameters(commandText string) map[string]any {
	commandText = strings.TrimSpace(commandText)
	if commandText == "" {
		return nil
	}
	if m := trayExecRe.FindStringSubmatch(commandText); m != nil {
		tray, err1 := strconv.Atoi(m[1])
		slot, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			return map[string]any{"tray": tray, "slot": slot}
		}
	}
	if m := quotedMessageRe.FindStringSubmatch(commandText); m != nil {
		return map[string]any{"verb": m[1], "message": m[2]}
	}
	return nil
}
