// Package keybind implements the Star Trek Online keybind file format:
// parsing, command-chain encoding, import merging, execution-order
// stabilization and export. All functions are pure text transformations;
// persistence and UI live elsewhere.
package keybind

// CommandEntry is a single command inside a binding's ordered chain.
type CommandEntry struct {
	Command    string         // raw command text, e.g. "+STOTrayExecByTray 0 1"
	Type       string         // detected category, "custom" when unknown
	Icon       string         // display glyph for the detected type
	Text       string         // human-readable display text
	Parameters map[string]any // structured parameters, nil when none recognized
}

// Binding maps one key to an ordered command chain. Order is execution order.
type Binding struct {
	Key      string
	Commands []CommandEntry
	Line     int    // 1-based source line, 0 when not parsed from a file
	Raw      string // unmodified command-body text for diagnostics
}

// Alias is a named command chain declared with an `alias` line.
type Alias struct {
	Name        string
	Commands    string // command-chain string, "$$"-separated
	Description string
	Line        int
}

// Comment is a passthrough comment line from a parsed file.
type Comment struct {
	Line int
	Text string
}

// ParseError records one malformed line. Parsing never aborts; errors
// accumulate while the rest of the file is processed.
type ParseError struct {
	Line    int
	Content string
	Reason  string
}

// ParseResult is the value produced by ParseFile. It is never mutated
// after being returned.
type ParseResult struct {
	Bindings map[string]Binding
	Aliases  map[string]Alias
	Comments []Comment
	Errors   []ParseError
}

// MergeStrategy governs how an incoming parsed map combines with an
// existing persisted map.
type MergeStrategy int

const (
	// MergeKeep inserts only entries whose key is not already present.
	MergeKeep MergeStrategy = iota
	// MergeOverwrite inserts every incoming entry, replacing collisions.
	MergeOverwrite
	// OverwriteAll clears the target scope, then inserts every incoming entry.
	OverwriteAll
)

func (s MergeStrategy) String() string {
	switch s {
	case MergeKeep:
		return "keep"
	case MergeOverwrite:
		return "overwrite"
	case OverwriteAll:
		return "clear"
	default:
		return "unknown"
	}
}

// ParseMergeStrategy converts a CLI flag value into a MergeStrategy.
func ParseMergeStrategy(s string) (MergeStrategy, bool) {
	switch s {
	case "keep", "merge-keep":
		return MergeKeep, true
	case "overwrite", "merge-overwrite":
		return MergeOverwrite, true
	case "clear", "overwrite-all":
		return OverwriteAll, true
	default:
		return MergeKeep, false
	}
}

// MergeStatistics reports what a merge did. All counts are non-negative;
// Imported equals the number of entries actually written into the result.
type MergeStatistics struct {
	Imported    int
	Skipped     int
	Overwritten int
	Cleared     int
}

// MergeError records an entry rejected during merge validation.
type MergeError struct {
	Name   string
	Reason string
}

// StabilizationFlags maps key name to its stabilize-execution-order flag
// for one environment. The flag is only meaningful for bindings with more
// than one command; single-command bindings are never mirrored.
type StabilizationFlags map[string]bool
