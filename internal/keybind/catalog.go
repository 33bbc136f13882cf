package keybind

import (
	"regexp"
	"slices"
	"strings"
	"sync"
)

// specialKeys is the fixed list of named non-alphanumeric base keys the
// game client accepts.
var specialKeys = []string{
	"Space", "Tab", "Enter", "Escape", "Backspace", "Delete", "Insert",
	"Home", "End", "PageUp", "PageDown",
	"Up", "Down", "Left", "Right",
	"Numpad0", "Numpad1", "Numpad2", "Numpad3", "Numpad4",
	"Numpad5", "Numpad6", "Numpad7", "Numpad8", "Numpad9",
	"Decimal", "Divide", "Multiply", "Subtract", "Add",
	"Lbutton", "Rbutton", "Mbutton", "Middleclick",
	"Wheelplus", "Wheelminus",
	"Button4", "Button5", "Button6", "Button7", "Button8",
	"Comma", "Period", "Slash", "Semicolon", "Quote", "Tilde",
	"Minus", "Equals", "Backslash",
	"[", "]",
}

// modifierPrefixes are applied to every base key. Singles first, then the
// accepted double combinations.
var modifierPrefixes = []string{
	"Ctrl", "Alt", "Shift", "Control",
	"Ctrl+Alt", "Ctrl+Shift", "Alt+Shift", "Control+Alt", "Control+Shift",
}

var aliasNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var (
	catalogOnce sync.Once
	// catalog maps the lower-cased key name to its canonical spelling.
	catalog map[string]string
)

func buildCatalog() {
	base := make([]string, 0, 128)
	for i := 1; i <= 12; i++ {
		base = append(base, "F"+itoa(i))
	}
	for d := '0'; d <= '9'; d++ {
		base = append(base, string(d))
	}
	for l := 'A'; l <= 'Z'; l++ {
		base = append(base, string(l))
	}
	base = append(base, specialKeys...)

	catalog = make(map[string]string, len(base)*(len(modifierPrefixes)+1))
	for _, k := range base {
		catalog[strings.ToLower(k)] = k
		for _, mod := range modifierPrefixes {
			combo := mod + "+" + k
			catalog[strings.ToLower(combo)] = combo
		}
	}
}

func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

// AllKeyNames returns every legal key name and modifier combination in
// canonical spelling, sorted by CompareKeys. The catalog is derived data
// built once on first use.
func AllKeyNames() []string {
	catalogOnce.Do(buildCatalog)
	names := make([]string, 0, len(catalog))
	for _, canonical := range catalog {
		names = append(names, canonical)
	}
	SortKeys(names)
	return names
}

// IsValidKeyName reports whether name is a legal key name or modifier
// combination. Matching is case-insensitive; empty and blank names are
// invalid.
func IsValidKeyName(name string) bool {
	catalogOnce.Do(buildCatalog)
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	_, ok := catalog[strings.ToLower(name)]
	return ok
}

// CanonicalKeyName returns the catalog spelling for name, or name
// unchanged when it is not in the catalog.
func CanonicalKeyName(name string) string {
	catalogOnce.Do(buildCatalog)
	if canonical, ok := catalog[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return name
}

// IsValidAliasName reports whether name is a legal alias identifier.
func IsValidAliasName(name string) bool {
	return aliasNameRe.MatchString(name)
}

// Key classes for ordering, highest priority first.
const (
	classPriority = iota // Space, Tab, Enter, Escape
	classFunction
	classDigit
	classLetter
	classOther
)

// priorityKeys orders the named special keys that sort before everything
// else.
var priorityKeys = map[string]int{
	"space":  0,
	"tab":    1,
	"enter":  2,
	"escape": 3,
}

func keyClass(name string) int {
	lower := strings.ToLower(name)
	if _, ok := priorityKeys[lower]; ok {
		return classPriority
	}
	if len(name) >= 2 && (name[0] == 'F' || name[0] == 'f') && isDigits(name[1:]) {
		return classFunction
	}
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		return classDigit
	}
	if len(name) == 1 && isLetterByte(name[0]) {
		return classLetter
	}
	return classOther
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isLetterByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// CompareKeys is the canonical total order used for export and display:
// the Space/Tab/Enter/Escape priority group first, then function keys,
// digits, single letters, and finally everything else by plain string
// comparison. Function keys compare lexicographically, so F10 sorts
// before F2; this matches the game client's own file ordering.
func CompareKeys(a, b string) int {
	ca, cb := keyClass(a), keyClass(b)
	if ca != cb {
		if ca < cb {
			return -1
		}
		return 1
	}
	switch ca {
	case classPriority:
		pa := priorityKeys[strings.ToLower(a)]
		pb := priorityKeys[strings.ToLower(b)]
		if pa != pb {
			if pa < pb {
				return -1
			}
			return 1
		}
	case classLetter:
		la, lb := strings.ToUpper(a), strings.ToUpper(b)
		if la != lb {
			return strings.Compare(la, lb)
		}
	}
	// Same class: fall back to case-insensitive string order, with the
	// exact spelling as the final tiebreak so the order stays total.
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// SortKeys sorts names in place using CompareKeys.
func SortKeys(names []string) {
	slices.SortFunc(names, CompareKeys)
}
