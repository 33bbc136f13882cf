package keybind

import (
	"slices"
	"strings"
)

// ExportBindings renders a binding map back to keybind file text. The
// caller supplies the header lines (profile name, timestamp); each is
// emitted as a `# ` comment. Aliases come first, sorted by name, then one
// line per key in CompareKeys order.
//
// Keybind lines keep the `KeyName "<chain>" ""` form the game expects,
// including the trailing empty-quoted parameter and even when the binding
// has zero commands. A key's chain is mirrored only when its
// stabilization flag is set and it has more than one command; a
// single-command binding never mirrors regardless of the flag.
func ExportBindings(bindings map[string]Binding, flags StabilizationFlags, aliases map[string]Alias, headerLines []string) string {
	var b strings.Builder

	for _, line := range headerLines {
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(headerLines) > 0 {
		b.WriteString("\n")
	}

	if len(aliases) > 0 {
		names := make([]string, 0, len(aliases))
		for name := range aliases {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			b.WriteString("alias ")
			b.WriteString(name)
			b.WriteString(" \"")
			b.WriteString(aliases[name].Commands)
			b.WriteString("\"\n")
		}
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(bindings))
	for key := range bindings {
		keys = append(keys, key)
	}
	SortKeys(keys)

	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(" \"")
		b.WriteString(chainTextFor(bindings[key], flags[key]))
		b.WriteString("\" \"\"\n")
	}

	return b.String()
}

func chainTextFor(binding Binding, stabilize bool) string {
	commands := make([]string, len(binding.Commands))
	for i, entry := range binding.Commands {
		commands[i] = entry.Command
	}
	if stabilize && len(commands) > 1 {
		return Mirror(commands)
	}
	return JoinCommandChain(commands)
}
